package entry

import (
	"testing"

	"github.com/rustkas/mini-ledger-go/common"
	"github.com/stretchr/testify/assert"
)

func makeSlot(n uint64, parent, last common.Hash) *Slot {
	return &Slot{SlotNumber: n, ParentHash: parent, LastHash: last, Entries: []Entry{{Hash: last, NumHashes: 1}}}
}

func TestLedgerAppendChainsParentHash(t *testing.T) {
	l := NewLedger()
	h0 := common.Sum256([]byte("0"))
	h1 := common.Sum256([]byte("1"))

	l.Append(makeSlot(0, common.GenesisHash, h0))
	l.Append(makeSlot(1, h0, h1))

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, h1, l.LastHash(common.GenesisHash))
	assert.Equal(t, h0, l.Get(0).LastHash)
}

func TestLedgerLastHashDefaultsToGenesisWhenEmpty(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, common.GenesisHash, l.LastHash(common.GenesisHash))
}

func TestLedgerAppendOutOfOrderPanics(t *testing.T) {
	l := NewLedger()
	assert.Panics(t, func() {
		l.Append(makeSlot(1, common.GenesisHash, common.Sum256([]byte("x"))))
	})
}

func TestLedgerAppendParentMismatchPanics(t *testing.T) {
	l := NewLedger()
	h0 := common.Sum256([]byte("0"))
	l.Append(makeSlot(0, common.GenesisHash, h0))

	assert.Panics(t, func() {
		l.Append(makeSlot(1, common.Sum256([]byte("wrong")), common.Sum256([]byte("1"))))
	})
}
