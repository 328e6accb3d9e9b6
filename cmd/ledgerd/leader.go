package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rustkas/mini-ledger-go/httpapi"
	"github.com/rustkas/mini-ledger-go/internal/config"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/node"
)

var commandLeader = &cli.Command{
	Name:  "leader",
	Usage: "drive the PoH clock, admit transfers, and serve the HTTP API",
	Flags: []cli.Flag{
		configFlag,
		listenFlag,
		verboseFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if ctx.Bool(verboseFlag.Name) {
			tlog.SetLevel(tlog.LvlDebug)
		}

		l := node.NewLeader(node.LeaderConfig{
			TicksPerSlot:         cfg.TicksPerSlot,
			HashesPerTick:        cfg.HashesPerTick,
			RecentHashWindowSize: cfg.RecentHashWindow,
			TickInterval:         10 * time.Millisecond,
		})
		l.Start()
		defer l.Stop()

		srv := &http.Server{Addr: cfg.ListenAddr, Handler: httpapi.NewLeaderHandler(l)}
		return runHTTPUntilSignal(srv)
	},
}

func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if addr := ctx.String(listenFlag.Name); addr != "" {
		cfg.ListenAddr = addr
	}
	return cfg, nil
}

// runHTTPUntilSignal serves srv until SIGINT/SIGTERM, then shuts it down
// with a bounded grace period for in-flight requests.
func runHTTPUntilSignal(srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		tlog.Info("ledgerd: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("ledgerd: server: %w", err)
	case sig := <-sigCh:
		tlog.Info("ledgerd: shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
