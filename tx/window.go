package tx

import "github.com/rustkas/mini-ledger-go/common"

// RecentHashWindow is a bounded, ordered ring of the last N PoH hashes a
// transfer's recent_hash may reference. Each hash is tagged with a
// monotonic sequence number so SeenSignatures can batch-evict the
// signatures that were admitted against a hash once it falls out of the
// window.
type RecentHashWindow struct {
	capacity int
	hashes   []common.Hash
	seqs     []uint64
	index    map[common.Hash]uint64
	nextSeq  uint64
}

// NewRecentHashWindow returns an empty window with the given capacity.
func NewRecentHashWindow(capacity int) *RecentHashWindow {
	if capacity <= 0 {
		capacity = 1
	}
	return &RecentHashWindow{
		capacity: capacity,
		index:    make(map[common.Hash]uint64, capacity),
	}
}

// Push admits h as the newest member of the window. If the window was at
// capacity, the oldest hash is evicted and its sequence number returned so
// the caller can age out signatures tied to it.
func (w *RecentHashWindow) Push(h common.Hash) (evictedSeq uint64, evicted bool) {
	seq := w.nextSeq
	w.nextSeq++
	w.hashes = append(w.hashes, h)
	w.seqs = append(w.seqs, seq)
	w.index[h] = seq

	if len(w.hashes) > w.capacity {
		evictedSeq = w.seqs[0]
		evictedHash := w.hashes[0]
		w.hashes = w.hashes[1:]
		w.seqs = w.seqs[1:]
		if w.index[evictedHash] == evictedSeq {
			delete(w.index, evictedHash)
		}
		evicted = true
	}
	return evictedSeq, evicted
}

// Contains reports whether h is currently a member of the window.
func (w *RecentHashWindow) Contains(h common.Hash) bool {
	_, ok := w.index[h]
	return ok
}

// SeqOf returns the sequence number h was admitted with.
func (w *RecentHashWindow) SeqOf(h common.Hash) (uint64, bool) {
	seq, ok := w.index[h]
	return seq, ok
}

// Len returns the number of hashes currently held.
func (w *RecentHashWindow) Len() int {
	return len(w.hashes)
}

// Clone returns a deep copy, used by the validator to attempt a slot
// speculatively and discard the attempt on an IngestMismatch.
func (w *RecentHashWindow) Clone() *RecentHashWindow {
	cp := &RecentHashWindow{
		capacity: w.capacity,
		hashes:   make([]common.Hash, len(w.hashes)),
		seqs:     make([]uint64, len(w.seqs)),
		index:    make(map[common.Hash]uint64, len(w.index)),
		nextSeq:  w.nextSeq,
	}
	copy(cp.hashes, w.hashes)
	copy(cp.seqs, w.seqs)
	for k, v := range w.index {
		cp.index[k] = v
	}
	return cp
}
