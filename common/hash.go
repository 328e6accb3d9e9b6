package common

import "crypto/sha256"

// Sum256 is the base hash primitive: a deterministic 32-byte hash over an
// arbitrary byte string. No state, total determinism.
func Sum256(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// Sum256Concat hashes the concatenation of its arguments without an
// intermediate allocation beyond the single backing buffer, used by the PoH
// clock's mixin step and by the slot builder's batch hash.
func Sum256Concat(parts ...[]byte) Hash {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// GenesisHash is the fixed published constant both leader and validator
// start their PoH chain from: sha256("genesis").
var GenesisHash = Sum256([]byte("genesis"))
