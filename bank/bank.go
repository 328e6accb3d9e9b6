// Package bank implements the account-balance state machine: a mapping from
// public key to balance, with airdrop/credit and an atomic, all-or-nothing
// apply_transfer.
package bank

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/common"
)

// ErrInsufficientFunds is returned by ApplyTransfer when the source balance
// is below the transfer amount.
var ErrInsufficientFunds = errors.New("bank: insufficient funds")

// ErrAmountOverflow is returned when crediting an account would overflow
// the 256-bit balance representation.
var ErrAmountOverflow = errors.New("bank: amount overflow")

// MintPublicKey is the well-known, unsigned source of airdrops. It has no
// corresponding private key; transfers from it skip signature verification
// and its own balance invariant, so a leader and its validators can agree
// on account balances without the validators ever seeing a signed airdrop.
var MintPublicKey = common.PublicKey{}

// Bank holds account balances. The zero value is ready to use.
type Bank struct {
	mu       sync.RWMutex
	balances map[common.PublicKey]*uint256.Int
	minted   *uint256.Int // total issued from MintPublicKey
}

// New returns an empty Bank.
func New() *Bank {
	return &Bank{
		balances: make(map[common.PublicKey]*uint256.Int),
		minted:   new(uint256.Int),
	}
}

// Get returns the balance of pubkey, or 0 if the account has never been
// credited.
func (b *Bank) Get(pubkey common.PublicKey) *uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.getLocked(pubkey)
}

func (b *Bank) getLocked(pubkey common.PublicKey) *uint256.Int {
	if bal, ok := b.balances[pubkey]; ok {
		return new(uint256.Int).Set(bal)
	}
	return new(uint256.Int)
}

// Credit adds amount to pubkey's balance, creating the account if absent.
// It does not touch the mint-issued counter; airdrops go through Airdrop or
// ApplyTransfer from MintPublicKey, and ordinary transfers go through
// ApplyTransfer.
func (b *Bank) Credit(pubkey common.PublicKey, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creditLocked(pubkey, amount)
}

func (b *Bank) creditLocked(pubkey common.PublicKey, amount *uint256.Int) error {
	cur := b.getLocked(pubkey)
	sum, overflow := new(uint256.Int).AddOverflow(cur, amount)
	if overflow {
		return ErrAmountOverflow
	}
	b.balances[pubkey] = sum
	return nil
}

// Airdrop credits pubkey from the mint, bypassing signature checks. It also
// increments the mint-issued counter so total-supply invariants hold across
// airdrops.
func (b *Bank) Airdrop(pubkey common.PublicKey, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.creditLocked(pubkey, amount); err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(b.minted, amount)
	if overflow {
		return ErrAmountOverflow
	}
	b.minted = sum
	return nil
}

// ApplyTransfer atomically checks balance[from] >= amount, decrements the
// source, and credits the destination, creating it if absent. It is
// all-or-nothing: on ErrInsufficientFunds or ErrAmountOverflow no balance is
// changed. from == MintPublicKey skips the balance check (it is not a real
// account) and is tracked via the mint-issued counter instead.
func (b *Bank) ApplyTransfer(from, to common.PublicKey, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if from == MintPublicKey {
		sum, overflow := new(uint256.Int).AddOverflow(b.minted, amount)
		if overflow {
			return ErrAmountOverflow
		}
		if err := b.creditLocked(to, amount); err != nil {
			return err
		}
		b.minted = sum
		return nil
	}

	fromBal := b.getLocked(from)
	if fromBal.Lt(amount) {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	newFromBal := new(uint256.Int).Sub(fromBal, amount)

	toBal := b.getLocked(to)
	newToBal, overflow := new(uint256.Int).AddOverflow(toBal, amount)
	if overflow {
		return ErrAmountOverflow
	}

	b.balances[from] = newFromBal
	b.balances[to] = newToBal
	return nil
}

// Snapshot returns a point-in-time copy of all account balances, for the
// /bank read endpoint.
func (b *Bank) Snapshot() map[common.PublicKey]*uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[common.PublicKey]*uint256.Int, len(b.balances))
	for k, v := range b.balances {
		if k == MintPublicKey {
			continue
		}
		out[k] = new(uint256.Int).Set(v)
	}
	return out
}

// TotalSupply returns the sum of all non-mint balances. This must always
// equal Minted(): every credited unit traces back to an airdrop.
func (b *Bank) TotalSupply() *uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := new(uint256.Int)
	for k, v := range b.balances {
		if k == MintPublicKey {
			continue
		}
		total = new(uint256.Int).Add(total, v)
	}
	return total
}

// Minted returns the running total credited from MintPublicKey.
func (b *Bank) Minted() *uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return new(uint256.Int).Set(b.minted)
}

// Clone returns a deep copy, used by the validator to attempt a slot
// speculatively and discard the attempt on an IngestMismatch without
// disturbing the committed bank.
func (b *Bank) Clone() *Bank {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cp := &Bank{
		balances: make(map[common.PublicKey]*uint256.Int, len(b.balances)),
		minted:   new(uint256.Int).Set(b.minted),
	}
	for k, v := range b.balances {
		cp.balances[k] = new(uint256.Int).Set(v)
	}
	return cp
}
