package tx

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/common"
)

// Transfer moves amount from From to To, authorized by a signature over the
// canonical message built by CanonicalMessage. RecentHash anchors the
// signature to a point in the PoH chain for anti-replay.
type Transfer struct {
	From       common.PublicKey
	To         common.PublicKey
	Amount     *uint256.Int
	RecentHash common.Hash
	Sig        common.Signature
}

type transferWire struct {
	From       common.PublicKey `json:"from"`
	To         common.PublicKey `json:"to"`
	Amount     json.Number      `json:"amount"`
	RecentHash common.Hash      `json:"recent_hash"`
	Sig        common.Signature `json:"sig"`
}

func (t Transfer) MarshalJSON() ([]byte, error) {
	amt := "0"
	if t.Amount != nil {
		amt = t.Amount.Dec()
	}
	return json.Marshal(transferWire{
		From:       t.From,
		To:         t.To,
		Amount:     json.Number(amt),
		RecentHash: t.RecentHash,
		Sig:        t.Sig,
	})
}

func (t *Transfer) UnmarshalJSON(data []byte) error {
	var w transferWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	amount, err := uint256.FromDecimal(string(w.Amount))
	if err != nil {
		return fmt.Errorf("tx: bad amount %q: %w", w.Amount, err)
	}
	t.From = w.From
	t.To = w.To
	t.Amount = amount
	t.RecentHash = w.RecentHash
	t.Sig = w.Sig
	return nil
}

// CanonicalMessage builds the exact byte string a sender signs: field order,
// quoting, and the absence of whitespace all matter, so it is built by
// concatenation rather than handed to a JSON encoder whose key order and
// spacing are not a promise either side can rely on.
func CanonicalMessage(from, to common.PublicKey, amount *uint256.Int, recentHash common.Hash) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"from":"`)
	buf.WriteString(from.Hex())
	buf.WriteString(`","to":"`)
	buf.WriteString(to.Hex())
	buf.WriteString(`","amount":`)
	buf.WriteString(amount.Dec())
	buf.WriteString(`,"recent_hash":"`)
	buf.WriteString(recentHash.Hex())
	buf.WriteString(`"}`)
	return buf.Bytes()
}

// SignedMessage returns the bytes t.Sig is a signature over.
func (t *Transfer) SignedMessage() []byte {
	return CanonicalMessage(t.From, t.To, t.Amount, t.RecentHash)
}

// Sign computes t.Sig over t's canonical message using priv. priv's public
// half must equal t.From or the resulting signature will not verify.
func (t *Transfer) Sign(priv ed25519.PrivateKey) {
	sig := ed25519.Sign(priv, t.SignedMessage())
	var s common.Signature
	copy(s[:], sig)
	t.Sig = s
}

// BatchHash is the payload mixed into PoH for a mixin entry: the Ed25519
// signatures of the batch's transfers, concatenated in admission order and
// hashed. Leader and validator must compute it identically.
func BatchHash(transfers []*Transfer) common.Hash {
	parts := make([][]byte, len(transfers))
	for i, t := range transfers {
		parts[i] = t.Sig.Bytes()
	}
	return common.Sum256Concat(parts...)
}
