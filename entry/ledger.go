package entry

import (
	"fmt"
	"sync"

	"github.com/rustkas/mini-ledger-go/common"
)

// Ledger is an append-only, ordered sequence of sealed slots. Append is
// expected to be called from a single writer (the leader's coordinator or
// the validator's serial ingest); Get/All/Len may be called concurrently
// from read-side HTTP handlers, hence the mutex.
type Ledger struct {
	mu    sync.RWMutex
	slots []*Slot
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds slot to the ledger. It panics on a non-contiguous slot number
// or a parent-hash mismatch: a caller this invariant fires against has a
// bug upstream (the builder or the replay path), not a user-facing error.
func (l *Ledger) Append(slot *Slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	want := uint64(len(l.slots))
	if slot.SlotNumber != want {
		panic(fmt.Sprintf("entry: ledger append out of order: want slot %d, got %d", want, slot.SlotNumber))
	}
	if want > 0 && slot.ParentHash != l.slots[want-1].LastHash {
		panic(fmt.Sprintf("entry: ledger append parent-hash mismatch at slot %d", slot.SlotNumber))
	}
	l.slots = append(l.slots, slot)
}

// Len returns the number of sealed slots.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.slots)
}

// Get returns the slot at the given number, or nil if not yet sealed.
func (l *Ledger) Get(n uint64) *Slot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n >= uint64(len(l.slots)) {
		return nil
	}
	return l.slots[n]
}

// LastHash returns the last_hash of the most recently sealed slot, or
// genesis if the ledger is empty.
func (l *Ledger) LastHash(genesis common.Hash) common.Hash {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.slots) == 0 {
		return genesis
	}
	return l.slots[len(l.slots)-1].LastHash
}

// All returns every sealed slot in order.
func (l *Ledger) All() []*Slot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Slot, len(l.slots))
	copy(out, l.slots)
	return out
}
