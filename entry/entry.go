// Package entry groups PoH entries into sealed slots: the wire records a
// leader ships and a validator replays.
package entry

import (
	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/tx"
)

// Entry is a single PoH-chained record. An Entry with no transactions is a
// tick; one with transactions is a mixin entry.
type Entry struct {
	NumHashes    uint64         `json:"num_hashes"`
	Hash         common.Hash    `json:"hash"`
	Transactions []*tx.Transfer `json:"transactions"`
}

// IsTick reports whether this entry carries no transactions.
func (e Entry) IsTick() bool {
	return len(e.Transactions) == 0
}

// Slot is a sealed, numbered batch of entries.
type Slot struct {
	SlotNumber uint64      `json:"slot"`
	ParentHash common.Hash `json:"parent_hash"`
	Entries    []Entry     `json:"entries"`
	LastHash   common.Hash `json:"last_hash"`
}
