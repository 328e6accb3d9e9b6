// Package node implements the two runtime roles that share the ledger's
// data structures: Leader drives PoH and admits transfers; Validator
// ingests slots and replays them to converge.
package node

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/bank"
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/entry"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/poh"
	"github.com/rustkas/mini-ledger-go/tx"
)

// LeaderConfig holds the policy knobs a leader and its validators must
// agree on to converge.
type LeaderConfig struct {
	TicksPerSlot         uint64
	HashesPerTick        uint64
	RecentHashWindowSize int
	TickInterval         time.Duration
}

// DefaultLeaderConfig returns the documented defaults: 64 ticks/slot, 64
// hashes/tick, a 150-hash recent-hash window.
func DefaultLeaderConfig() LeaderConfig {
	return LeaderConfig{
		TicksPerSlot:         entry.DefaultTicksPerSlot,
		HashesPerTick:        entry.DefaultHashesPerTick,
		RecentHashWindowSize: 150,
		TickInterval:         10 * time.Millisecond,
	}
}

// Leader owns the PoH clock, bank, entry builder, recent-hash window, and
// signature set as a single consistency domain: every mutation to any of
// them happens under one exclusive lock, so transfer admission, bank
// update, signature-set insertion, and PoH mixin form one atomic
// transition, per the single-writer discipline the design calls for.
type Leader struct {
	cfg LeaderConfig

	mu        sync.Mutex
	clock     *poh.Clock
	bank      *bank.Bank
	builder   *entry.Builder
	window    *tx.RecentHashWindow
	seen      *tx.SeenSignatures
	validator *tx.Validator
	ledger    *entry.Ledger
	pending   []*tx.Transfer

	quit chan struct{}
	done chan struct{}
}

// NewLeader constructs a Leader and seals an empty genesis slot 0 so
// parent_hash chaining has a concrete base case before Start is called.
func NewLeader(cfg LeaderConfig) *Leader {
	l := &Leader{
		cfg:       cfg,
		clock:     poh.New(common.GenesisHash),
		bank:      bank.New(),
		builder:   entry.NewBuilder(common.GenesisHash, cfg.TicksPerSlot),
		window:    tx.NewRecentHashWindow(cfg.RecentHashWindowSize),
		seen:      tx.NewSeenSignatures(),
		validator: tx.New(),
		ledger:    entry.NewLedger(),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for l.builder.NextSlotNumber() == 0 {
		l.advanceTickBoundaryLocked()
	}
	return l
}

// Start begins driving the PoH clock on a background goroutine.
func (l *Leader) Start() {
	go l.loop()
}

// Stop shuts the ticker goroutine down and waits for it to exit.
func (l *Leader) Stop() {
	close(l.quit)
	<-l.done
}

func (l *Leader) loop() {
	ticker := time.NewTicker(l.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			l.advanceTickBoundaryLocked()
			l.mu.Unlock()
		case <-l.quit:
			close(l.done)
			return
		}
	}
}

// advanceTickBoundaryLocked drives hashesPerTick raw hash steps and closes
// out one entry. Callers must hold l.mu.
func (l *Leader) advanceTickBoundaryLocked() {
	hashesPerTick := l.cfg.HashesPerTick
	if hashesPerTick == 0 {
		hashesPerTick = entry.DefaultHashesPerTick
	}
	for i := uint64(0); i < hashesPerTick; i++ {
		l.clock.Tick()
	}

	pending := l.pending
	l.pending = nil

	emitted, sealed, ok := l.builder.OnTickBoundary(l.clock, pending)
	l.feedWindowLocked(emitted.Hash)

	if ok {
		l.ledger.Append(sealed)
		tlog.Debug("leader: sealed slot", "slot", sealed.SlotNumber, "entries", len(sealed.Entries))
	}
}

func (l *Leader) feedWindowLocked(h common.Hash) {
	seq, evicted := l.window.Push(h)
	if evicted {
		l.seen.EvictSeq(seq)
	}
}

// AdvanceTickBoundary drives one tick boundary synchronously, under the
// same lock Start's background loop uses. It exists so callers that want
// deterministic slot timing (tests, a driver that ticks on its own clock)
// can do so without racing the background ticker.
func (l *Leader) AdvanceTickBoundary() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advanceTickBoundaryLocked()
}

// Airdrop credits pubkey from the mint and queues the synthesized transfer
// for inclusion in the next mixin entry, so validators replaying the ledger
// see it too.
func (l *Leader) Airdrop(pubkey common.PublicKey, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.bank.ApplyTransfer(bank.MintPublicKey, pubkey, amount); err != nil {
		return err
	}
	l.pending = append(l.pending, &tx.Transfer{
		From:       bank.MintPublicKey,
		To:         pubkey,
		Amount:     amount,
		RecentHash: l.clock.Snapshot(),
	})
	return nil
}

// Transfer runs the five admission checks against t and, on success, queues
// it for the next mixin entry.
func (l *Leader) Transfer(t *tx.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validator.Admit(l.bank, l.window, l.seen, t); err != nil {
		return err
	}
	l.pending = append(l.pending, t)
	return nil
}

// PoH returns the current PoH hash, for clients to use as recent_hash on
// their next transfer.
func (l *Leader) PoH() common.Hash {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clock.Snapshot()
}

// Bank returns a point-in-time snapshot of account balances.
func (l *Leader) Bank() map[common.PublicKey]*uint256.Int {
	return l.bank.Snapshot()
}

// Ledger returns every sealed slot.
func (l *Leader) Ledger() []*entry.Slot {
	return l.ledger.All()
}

// Slot returns the sealed slot at number n, or nil if it is not yet sealed.
func (l *Leader) Slot(n uint64) *entry.Slot {
	return l.ledger.Get(n)
}
