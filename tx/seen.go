package tx

import "github.com/rustkas/mini-ledger-go/common"

// SeenSignatures is the anti-replay set: signatures admitted within the
// current recent-hash window. Signatures are indexed by the window sequence
// number of the recent_hash they were admitted against, so an eviction from
// RecentHashWindow can drop exactly the signatures it invalidates without a
// linear scan.
type SeenSignatures struct {
	bySeq    map[uint64]map[common.Signature]struct{}
	seqOfSig map[common.Signature]uint64
}

// NewSeenSignatures returns an empty signature set.
func NewSeenSignatures() *SeenSignatures {
	return &SeenSignatures{
		bySeq:    make(map[uint64]map[common.Signature]struct{}),
		seqOfSig: make(map[common.Signature]uint64),
	}
}

// Contains reports whether sig has already been admitted.
func (s *SeenSignatures) Contains(sig common.Signature) bool {
	_, ok := s.seqOfSig[sig]
	return ok
}

// Add records sig as admitted against the recent-hash window sequence seq.
func (s *SeenSignatures) Add(sig common.Signature, seq uint64) {
	if bucket, ok := s.bySeq[seq]; ok {
		bucket[sig] = struct{}{}
	} else {
		s.bySeq[seq] = map[common.Signature]struct{}{sig: {}}
	}
	s.seqOfSig[sig] = seq
}

// EvictSeq drops every signature admitted against sequence seq. Call this
// when RecentHashWindow.Push reports that seq fell out of the window.
func (s *SeenSignatures) EvictSeq(seq uint64) {
	bucket, ok := s.bySeq[seq]
	if !ok {
		return
	}
	for sig := range bucket {
		delete(s.seqOfSig, sig)
	}
	delete(s.bySeq, seq)
}

// Len returns the number of currently tracked signatures.
func (s *SeenSignatures) Len() int {
	return len(s.seqOfSig)
}

// Clone returns a deep copy, used by the validator to attempt a slot
// speculatively and discard the attempt on an IngestMismatch.
func (s *SeenSignatures) Clone() *SeenSignatures {
	cp := &SeenSignatures{
		bySeq:    make(map[uint64]map[common.Signature]struct{}, len(s.bySeq)),
		seqOfSig: make(map[common.Signature]uint64, len(s.seqOfSig)),
	}
	for seq, bucket := range s.bySeq {
		nb := make(map[common.Signature]struct{}, len(bucket))
		for sig := range bucket {
			nb[sig] = struct{}{}
		}
		cp.bySeq[seq] = nb
	}
	for sig, seq := range s.seqOfSig {
		cp.seqOfSig[sig] = seq
	}
	return cp
}
