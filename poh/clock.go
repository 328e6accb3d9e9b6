// Package poh implements the Proof-of-History clock: a monotonic hash chain
// advanced by ticks and by transaction-batch mixins.
//
// Clock has no internal locking. A single-writer discipline — only the
// leader's ticker/mixin path writes current_hash, and the validator's
// ingest path recomputes its own chain serially — is enforced by the caller
// (node.Leader owns exactly one Clock; node.Validator owns none and
// recomputes the chain with the pure Replay/ReplayMixin functions).
package poh

import "github.com/rustkas/mini-ledger-go/common"

// Clock is the PoH hash chain. Zero value is not usable; construct with New.
type Clock struct {
	current          common.Hash
	hashesSinceEntry uint64
}

// New starts a clock at the given genesis hash. Leader and validator must
// use an identical genesis hash or their chains diverge immediately.
func New(genesis common.Hash) *Clock {
	return &Clock{current: genesis}
}

// Tick advances the chain by one hash step with no payload. Call this at
// the target tick rate; hashesSinceEntry accumulates until the next Mixin
// or TickEntry resets it.
func (c *Clock) Tick() {
	c.current = common.Sum256(c.current[:])
	c.hashesSinceEntry++
}

// Mixin incorporates payloadHash (the batch hash of a transaction batch)
// into the chain. It returns the number of hash iterations represented by
// this entry — every Tick since the previous entry, plus this combining
// step — and the resulting hash, then resets the since-entry counter.
func (c *Clock) Mixin(payloadHash common.Hash) (numHashes uint64, newHash common.Hash) {
	c.current = common.Sum256Concat(c.current[:], payloadHash[:])
	numHashes = c.hashesSinceEntry + 1
	c.hashesSinceEntry = 0
	return numHashes, c.current
}

// TickEntry closes out a tick entry with no payload: it returns the hash
// count and hash accumulated since the previous entry and resets the
// counter, without performing any further hashing. Used by the entry
// builder when a tick boundary arrives with no pending transfers.
func (c *Clock) TickEntry() (numHashes uint64, hash common.Hash) {
	numHashes = c.hashesSinceEntry
	hash = c.current
	c.hashesSinceEntry = 0
	return numHashes, hash
}

// Snapshot returns the current hash without mutating state. Used to answer
// /poh reads — clients use the result as recent_hash on their next transfer.
func (c *Clock) Snapshot() common.Hash {
	return c.current
}

// HashesSinceEntry reports the number of Tick calls since the last Mixin or
// TickEntry, for callers that want to observe progress toward a boundary
// without closing it out.
func (c *Clock) HashesSinceEntry() uint64 {
	return c.hashesSinceEntry
}

// Replay re-derives a hash by applying n plain hash iterations to h, the
// pure function the validator uses to recompute a tick entry during replay.
func Replay(h common.Hash, n uint64) common.Hash {
	for i := uint64(0); i < n; i++ {
		h = common.Sum256(h[:])
	}
	return h
}

// ReplayMixin re-derives a mixin entry's hash: h is hashed n-1 times, then
// the result is combined with payloadHash on the final step. n must be >= 1;
// callers are expected to have already rejected n == 0 for mixin entries.
func ReplayMixin(h common.Hash, n uint64, payloadHash common.Hash) common.Hash {
	if n == 0 {
		return common.Sum256Concat(h[:], payloadHash[:])
	}
	h = Replay(h, n-1)
	return common.Sum256Concat(h[:], payloadHash[:])
}
