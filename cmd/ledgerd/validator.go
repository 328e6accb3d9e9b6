package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rustkas/mini-ledger-go/httpapi"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/node"
)

var leaderURLFlag = &cli.StringFlag{
	Name:  "leader",
	Usage: "leader HTTP base URL to poll for sealed slots, overrides the config file",
}

var commandValidator = &cli.Command{
	Name:  "validator",
	Usage: "ingest and replay slots from a leader, and serve the HTTP API",
	Flags: []cli.Flag{
		configFlag,
		listenFlag,
		leaderURLFlag,
		verboseFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if url := ctx.String(leaderURLFlag.Name); url != "" {
			cfg.LeaderURL = url
		}
		if cfg.LeaderURL == "" {
			return fmt.Errorf("ledgerd: validator: --leader or leader_url in config is required")
		}
		if ctx.Bool(verboseFlag.Name) {
			tlog.SetLevel(tlog.LvlDebug)
		}

		v := node.NewValidator(node.ValidatorConfig{RecentHashWindowSize: cfg.RecentHashWindow})
		client := httpapi.NewClient(cfg.LeaderURL)
		syncer := node.NewSync(v, client, 200*time.Millisecond)
		syncer.Start()
		defer syncer.Stop()

		srv := &http.Server{Addr: cfg.ListenAddr, Handler: httpapi.NewValidatorHandler(v)}
		return runHTTPUntilSignal(srv)
	},
}
