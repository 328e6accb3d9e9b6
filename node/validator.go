package node

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/bank"
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/entry"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/poh"
	"github.com/rustkas/mini-ledger-go/tx"
)

// ValidatorConfig holds the policy knobs a validator must share with its
// leader to converge.
type ValidatorConfig struct {
	RecentHashWindowSize int
}

// DefaultValidatorConfig mirrors DefaultLeaderConfig's recent-hash window.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{RecentHashWindowSize: 150}
}

// Validator ingests slot batches, re-derives PoH, re-verifies signatures,
// and re-applies transfers to its own bank. Ingest is fully serial: there
// is exactly one in-flight call at a time, enforced by the caller owning a
// single Validator instance per process.
type Validator struct {
	cfg       ValidatorConfig
	bank      *bank.Bank
	window    *tx.RecentHashWindow
	seen      *tx.SeenSignatures
	validator *tx.Validator
	ledger    *entry.Ledger
	lastHash  common.Hash
	nextSlot  uint64
}

// NewValidator returns a Validator with an empty bank, awaiting slot 0.
func NewValidator(cfg ValidatorConfig) *Validator {
	return &Validator{
		cfg:       cfg,
		bank:      bank.New(),
		window:    tx.NewRecentHashWindow(cfg.RecentHashWindowSize),
		seen:      tx.NewSeenSignatures(),
		validator: tx.New(),
		ledger:    entry.NewLedger(),
		lastHash:  common.GenesisHash,
	}
}

// Ingest replays an ordered batch of slots. It returns the number of slots
// committed before the first failure (if any); on IngestMismatch the
// offending slot and every slot after it in the batch are rejected, and the
// validator's state is exactly as if the batch had stopped one slot short.
func (v *Validator) Ingest(slots []*entry.Slot) (accepted int, err error) {
	for _, s := range slots {
		if err := v.ingestSlot(s); err != nil {
			return accepted, err
		}
		accepted++
	}
	return accepted, nil
}

func (v *Validator) ingestSlot(s *entry.Slot) error {
	if s.SlotNumber != v.nextSlot {
		return &IngestMismatch{Slot: s.SlotNumber, Field: "slot_gap"}
	}
	if s.ParentHash != v.lastHash {
		return &IngestMismatch{Slot: s.SlotNumber, Field: "parent_hash"}
	}

	var allTransfers []*tx.Transfer
	for _, e := range s.Entries {
		allTransfers = append(allTransfers, e.Transactions...)
	}
	preVerifySignatures(v.validator, allTransfers)

	trialBank := v.bank.Clone()
	trialWindow := v.window.Clone()
	trialSeen := v.seen.Clone()

	h := s.ParentHash
	for _, e := range s.Entries {
		if e.IsTick() {
			h = poh.Replay(h, e.NumHashes)
		} else {
			if e.NumHashes == 0 {
				return &IngestMismatch{Slot: s.SlotNumber, Field: "entry_hash"}
			}
			batchHash := tx.BatchHash(e.Transactions)
			h = poh.ReplayMixin(h, e.NumHashes, batchHash)
		}
		if h != e.Hash {
			return &IngestMismatch{Slot: s.SlotNumber, Field: "entry_hash"}
		}

		for _, t := range e.Transactions {
			if err := admitReplayed(v.validator, trialBank, trialWindow, trialSeen, t); err != nil {
				return &IngestMismatch{Slot: s.SlotNumber, Field: "transaction", Err: err}
			}
		}

		seq, evicted := trialWindow.Push(e.Hash)
		if evicted {
			trialSeen.EvictSeq(seq)
		}
	}
	if h != s.LastHash {
		return &IngestMismatch{Slot: s.SlotNumber, Field: "last_hash"}
	}

	v.ledger.Append(s)
	v.bank = trialBank
	v.window = trialWindow
	v.seen = trialSeen
	v.lastHash = s.LastHash
	v.nextSlot++
	tlog.Debug("validator: ingested slot", "slot", s.SlotNumber, "entries", len(s.Entries))
	return nil
}

// admitReplayed applies a mint transfer directly (it carries no checkable
// signature) or otherwise re-runs the same five admission checks the
// leader ran, against the validator's own trial state.
func admitReplayed(v *tx.Validator, b *bank.Bank, window *tx.RecentHashWindow, seen *tx.SeenSignatures, t *tx.Transfer) error {
	if t.From == bank.MintPublicKey {
		return b.ApplyTransfer(bank.MintPublicKey, t.To, t.Amount)
	}
	return v.Admit(b, window, seen, t)
}

// preVerifySignatures runs Ed25519 verification for every non-mint transfer
// in a slot concurrently, ahead of the serial commit pass. Errors never
// escape: PreVerify's result is read again, from cache, during the serial
// Admit call that follows.
func preVerifySignatures(v *tx.Validator, transfers []*tx.Transfer) {
	g, _ := errgroup.WithContext(context.Background())
	for _, t := range transfers {
		t := t
		if t.From == bank.MintPublicKey {
			continue
		}
		g.Go(func() error {
			v.PreVerify(t)
			return nil
		})
	}
	_ = g.Wait()
}

// Bank returns a point-in-time snapshot of account balances.
func (v *Validator) Bank() map[common.PublicKey]*uint256.Int {
	return v.bank.Snapshot()
}

// Ledger returns every slot committed so far.
func (v *Validator) Ledger() []*entry.Slot {
	return v.ledger.All()
}

// NextSlot reports the slot number the validator expects to ingest next.
func (v *Validator) NextSlot() uint64 {
	return v.nextSlot
}
