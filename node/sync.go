package node

import (
	"context"
	"time"

	"github.com/rustkas/mini-ledger-go/entry"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
)

// SlotFetcher is how a Sync loop discovers new slots. httpapi's client
// implements it against a leader's /slots/{n} endpoint; tests can supply an
// in-memory fake so Ingest's properties are testable without a live leader.
type SlotFetcher interface {
	// FetchSlot returns the slot numbered n, or found == false if the
	// leader has not sealed it yet.
	FetchSlot(ctx context.Context, n uint64) (slot *entry.Slot, found bool, err error)
}

// Sync polls a SlotFetcher for the next slot a Validator expects and feeds
// it to Ingest. The spec defines the ingest operation but not how a
// validator process discovers new slots; this is the glue that does.
type Sync struct {
	v        *Validator
	fetcher  SlotFetcher
	interval time.Duration

	quit chan struct{}
	done chan struct{}
}

// NewSync returns a poller that drives v from fetcher every interval.
func NewSync(v *Validator, fetcher SlotFetcher, interval time.Duration) *Sync {
	return &Sync{
		v:        v,
		fetcher:  fetcher,
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (s *Sync) Start() {
	go s.loop()
}

// Stop signals the poller to exit and waits for it to do so.
func (s *Sync) Stop() {
	close(s.quit)
	<-s.done
}

func (s *Sync) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.pollOnce()
		case <-s.quit:
			close(s.done)
			return
		}
	}
}

func (s *Sync) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	for {
		next := s.v.NextSlot()
		slot, found, err := s.fetcher.FetchSlot(ctx, next)
		if err != nil {
			tlog.Warn("validator sync: fetch failed", "slot", next, "err", err)
			return
		}
		if !found {
			return
		}
		if _, err := s.v.Ingest([]*entry.Slot{slot}); err != nil {
			tlog.Warn("validator sync: ingest mismatch", "slot", next, "err", err)
			return
		}
	}
}
