package tx

import (
	"crypto/ed25519"
	"testing"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/bank"
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	b      *bank.Bank
	w      *RecentHashWindow
	seen   *SeenSignatures
	v      *Validator
	pub    ed25519.PublicKey
	priv   ed25519.PrivateKey
	pubkey common.PublicKey
}

func newFixture(t *testing.T) *fixture {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var pk common.PublicKey
	copy(pk[:], pub)

	b := bank.New()
	require.NoError(t, b.Airdrop(pk, uint256.NewInt(1000)))

	return &fixture{
		b:      b,
		w:      NewRecentHashWindow(150),
		seen:   NewSeenSignatures(),
		v:      New(),
		pub:    pub,
		priv:   priv,
		pubkey: pk,
	}
}

func (f *fixture) transfer(t *testing.T, to common.PublicKey, amount uint64, recentHash common.Hash) *Transfer {
	tr := &Transfer{From: f.pubkey, To: to, Amount: uint256.NewInt(amount), RecentHash: recentHash}
	tr.Sign(f.priv)
	return tr
}

func TestAdmitValidTransfer(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("slot0-entry0"))
	f.w.Push(rh)

	to := common.PublicKey{9}
	tr := f.transfer(t, to, 10, rh)

	require.NoError(t, f.v.Admit(f.b, f.w, f.seen, tr))
	assert.Equal(t, uint256.NewInt(990), f.b.Get(f.pubkey))
	assert.Equal(t, uint256.NewInt(10), f.b.Get(to))
	assert.True(t, f.seen.Contains(tr.Sig))
}

func TestAdmitRejectsZeroAmount(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("x"))
	f.w.Push(rh)

	tr := f.transfer(t, common.PublicKey{9}, 0, rh)
	assert.ErrorIs(t, f.v.Admit(f.b, f.w, f.seen, tr), ErrMalformedTransfer)
}

func TestAdmitRejectsUnknownRecentHash(t *testing.T) {
	f := newFixture(t)
	tr := f.transfer(t, common.PublicKey{9}, 10, common.Hash{})
	assert.ErrorIs(t, f.v.Admit(f.b, f.w, f.seen, tr), ErrUnknownRecentHash)
}

func TestAdmitRejectsDuplicateSignature(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("x"))
	f.w.Push(rh)

	tr := f.transfer(t, common.PublicKey{9}, 10, rh)
	require.NoError(t, f.v.Admit(f.b, f.w, f.seen, tr))

	err := f.v.Admit(f.b, f.w, f.seen, tr)
	assert.ErrorIs(t, err, ErrDuplicateSignature)
}

func TestAdmitRejectsInvalidSignature(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("x"))
	f.w.Push(rh)

	tr := f.transfer(t, common.PublicKey{9}, 10, rh)
	tr.Sig[0] ^= 0xFF

	assert.ErrorIs(t, f.v.Admit(f.b, f.w, f.seen, tr), ErrInvalidSignature)
}

func TestAdmitRejectsInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("x"))
	f.w.Push(rh)

	tr := f.transfer(t, common.PublicKey{9}, 1001, rh)
	assert.ErrorIs(t, f.v.Admit(f.b, f.w, f.seen, tr), ErrInsufficientFunds)
	assert.Equal(t, uint256.NewInt(1000), f.b.Get(f.pubkey))
}

func TestAdmitFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	rh := common.Sum256([]byte("x"))
	f.w.Push(rh)

	tr := f.transfer(t, common.PublicKey{9}, 1001, rh)
	before := f.seen.Len()
	_ = f.v.Admit(f.b, f.w, f.seen, tr)
	assert.Equal(t, before, f.seen.Len())
}
