package tx

import (
	"crypto/ed25519"
	"errors"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rustkas/mini-ledger-go/bank"
)

// sigCacheSize bounds the Ed25519 verification-result cache, keyed by
// signature plus signed message. A validator replaying a slot verifies each
// signature in its parallel PreVerify pass and again in the serial Admit
// pass; the cache turns the second check into a map lookup.
const sigCacheSize = 8192

// Validator runs the five admission checks against a shared bank, recent-
// hash window, and signature set. It holds no mutable ledger state of its
// own beyond a verification cache, so leader admission and validator replay
// can each construct one and drive it against their own bank/window/seen.
type Validator struct {
	sigCache *lru.ARCCache
}

// New returns a Validator with a fresh verification cache.
func New() *Validator {
	cache, err := lru.NewARC(sigCacheSize)
	if err != nil {
		// Only fails on a non-positive size, which sigCacheSize never is.
		panic(err)
	}
	return &Validator{sigCache: cache}
}

// Admit runs the five checks against t: amount positive, recent_hash known,
// signature unseen, Ed25519 verification, and that apply_transfer would
// succeed. On success it records t.Sig in seen and applies t to b;
// on failure, b, window, and seen are left untouched.
func (v *Validator) Admit(b *bank.Bank, window *RecentHashWindow, seen *SeenSignatures, t *Transfer) error {
	if t.Amount == nil || t.Amount.IsZero() {
		return ErrMalformedTransfer
	}

	seq, ok := window.SeqOf(t.RecentHash)
	if !ok {
		return ErrUnknownRecentHash
	}

	if seen.Contains(t.Sig) {
		return ErrDuplicateSignature
	}

	if !v.verify(t) {
		return ErrInvalidSignature
	}

	if err := b.ApplyTransfer(t.From, t.To, t.Amount); err != nil {
		if errors.Is(err, bank.ErrInsufficientFunds) {
			return ErrInsufficientFunds
		}
		return ErrMalformedTransfer
	}

	seen.Add(t.Sig, seq)
	return nil
}

// PreVerify runs Ed25519 verification for t and caches the result, without
// touching bank, window, or seen state. It is safe to call concurrently
// across transfers ahead of the serial Admit pass, so a validator replaying
// a slot can verify every signature in parallel before committing in order.
func (v *Validator) PreVerify(t *Transfer) bool {
	return v.verify(t)
}

func (v *Validator) verify(t *Transfer) bool {
	msg := t.SignedMessage()
	key := string(t.Sig.Bytes()) + string(msg)
	if cached, ok := v.sigCache.Get(key); ok {
		return cached.(bool)
	}
	ok := ed25519.Verify(t.From.Bytes(), msg, t.Sig.Bytes())
	v.sigCache.Add(key, ok)
	return ok
}
