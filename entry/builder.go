package entry

import (
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/poh"
	"github.com/rustkas/mini-ledger-go/tx"
)

// DefaultTicksPerSlot and DefaultHashesPerTick are policy knobs, not
// invariants: any leader/validator pair that agrees on them converges.
const (
	DefaultTicksPerSlot  = 64
	DefaultHashesPerTick = 64
)

// Builder accumulates entries for the slot currently being packaged and
// seals it once ticksPerSlot tick boundaries have elapsed.
type Builder struct {
	ticksPerSlot uint64
	nextSlot     uint64
	parentHash   common.Hash
	entries      []Entry
	ticksInSlot  uint64
}

// NewBuilder starts a builder at slot 0 chained from genesisParent, sealing
// every ticksPerSlot tick boundaries.
func NewBuilder(genesisParent common.Hash, ticksPerSlot uint64) *Builder {
	if ticksPerSlot == 0 {
		ticksPerSlot = DefaultTicksPerSlot
	}
	return &Builder{
		ticksPerSlot: ticksPerSlot,
		parentHash:   genesisParent,
	}
}

// NextSlotNumber reports the slot number the next seal will use.
func (b *Builder) NextSlotNumber() uint64 {
	return b.nextSlot
}

// PendingEntries reports how many entries have been emitted into the slot
// under construction.
func (b *Builder) PendingEntries() int {
	return len(b.entries)
}

// OnTickBoundary is invoked once per tick boundary — after hashesPerTick
// plain Clock.Tick() calls have accumulated. If pending is empty it closes
// out a tick entry; otherwise it drains pending into a single mixin entry,
// per the leader's admit-between-ticks policy. It returns the entry just
// emitted (so the caller can feed its hash to the recent-hash window) and,
// once ticksPerSlot boundaries have elapsed since the last seal, the sealed
// slot.
func (b *Builder) OnTickBoundary(clock *poh.Clock, pending []*tx.Transfer) (emitted Entry, sealed *Slot, ok bool) {
	if len(pending) == 0 {
		numHashes, hash := clock.TickEntry()
		emitted = Entry{NumHashes: numHashes, Hash: hash}
	} else {
		batchHash := tx.BatchHash(pending)
		numHashes, hash := clock.Mixin(batchHash)
		emitted = Entry{NumHashes: numHashes, Hash: hash, Transactions: pending}
	}
	b.entries = append(b.entries, emitted)
	b.ticksInSlot++

	if b.ticksInSlot < b.ticksPerSlot {
		return emitted, nil, false
	}
	return emitted, b.sealSlot(), true
}

func (b *Builder) sealSlot() *Slot {
	lastHash := b.entries[len(b.entries)-1].Hash
	s := &Slot{
		SlotNumber: b.nextSlot,
		ParentHash: b.parentHash,
		Entries:    b.entries,
		LastHash:   lastHash,
	}
	b.nextSlot++
	b.parentHash = lastHash
	b.entries = nil
	b.ticksInSlot = 0
	return s
}
