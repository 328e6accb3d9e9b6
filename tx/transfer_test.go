package tx

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalMessageFormat(t *testing.T) {
	from, _ := common.PublicKeyFromHex("11" + repeatHex("0", 62))
	to, _ := common.PublicKeyFromHex("22" + repeatHex("0", 62))
	rh, _ := common.HashFromHex("33" + repeatHex("0", 62))

	msg := CanonicalMessage(from, to, uint256.NewInt(42), rh)
	want := `{"from":"` + from.Hex() + `","to":"` + to.Hex() + `","amount":42,"recent_hash":"` + rh.Hex() + `"}`
	assert.Equal(t, want, string(msg))
}

func repeatHex(ch string, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ch[0]
	}
	return string(out)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var from common.PublicKey
	copy(from[:], pub)
	to := common.PublicKey{9}
	rh := common.Sum256([]byte("somehash"))

	tr := &Transfer{From: from, To: to, Amount: uint256.NewInt(7), RecentHash: rh}
	tr.Sign(priv)

	assert.True(t, ed25519.Verify(pub, tr.SignedMessage(), tr.Sig.Bytes()))

	flipped := tr.Sig
	flipped[0] ^= 0xFF
	assert.False(t, ed25519.Verify(pub, tr.SignedMessage(), flipped.Bytes()))
}

func TestBatchHashOrderSensitive(t *testing.T) {
	a := &Transfer{Sig: common.Signature{1}}
	b := &Transfer{Sig: common.Signature{2}}

	h1 := BatchHash([]*Transfer{a, b})
	h2 := BatchHash([]*Transfer{b, a})
	assert.NotEqual(t, h1, h2)
}

func TestTransferJSONRoundTrip(t *testing.T) {
	tr := Transfer{
		From:       common.PublicKey{1},
		To:         common.PublicKey{2},
		Amount:     uint256.NewInt(123456),
		RecentHash: common.Sum256([]byte("x")),
		Sig:        common.Signature{3},
	}
	data, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":123456`)

	var got Transfer
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, tr.From, got.From)
	assert.Equal(t, tr.To, got.To)
	assert.True(t, tr.Amount.Eq(got.Amount))
	assert.Equal(t, tr.RecentHash, got.RecentHash)
	assert.Equal(t, tr.Sig, got.Sig)
}
