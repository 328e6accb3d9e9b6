// Package common holds the wire-level value types shared by every layer of
// the ledger: the 32-byte hash and public key, the 64-byte signature, and
// their hex encodings. Nothing here is stateful.
package common

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength      = 32
	PublicKeyLength = 32
	SignatureLength = 64
)

// Hash is a 32-byte opaque value, rendered as 64 lowercase hex characters on
// the wire.
type Hash [HashLength]byte

// PublicKey is a 32-byte Ed25519 verification key.
type PublicKey [PublicKeyLength]byte

// Signature is a 64-byte Ed25519 signature.
type Signature [SignatureLength]byte

func (h Hash) Bytes() []byte      { return h[:] }
func (h Hash) Hex() string        { return hex.EncodeToString(h[:]) }
func (h Hash) String() string     { return h.Hex() }
func (h Hash) IsZero() bool       { return h == Hash{} }

func (k PublicKey) Bytes() []byte  { return k[:] }
func (k PublicKey) Hex() string    { return hex.EncodeToString(k[:]) }
func (k PublicKey) String() string { return k.Hex() }
func (k PublicKey) IsZero() bool   { return k == PublicKey{} }

func (s Signature) Bytes() []byte  { return s[:] }
func (s Signature) Hex() string    { return hex.EncodeToString(s[:]) }
func (s Signature) String() string { return s.Hex() }

// BytesToHash copies b into a Hash, truncating or left-padding as needed.
// Callers that require exact-length input should check len(b) themselves.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HashFromHex decodes a 64-character hex string into a Hash. Hex input is
// case-insensitive on parse.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := decodeFixedHex(s, HashLength)
	if err != nil {
		return h, fmt.Errorf("common: bad hash hex: %w", err)
	}
	copy(h[:], b)
	return h, nil
}

// PublicKeyFromHex decodes a 64-character hex string into a PublicKey.
func PublicKeyFromHex(s string) (PublicKey, error) {
	var k PublicKey
	b, err := decodeFixedHex(s, PublicKeyLength)
	if err != nil {
		return k, fmt.Errorf("common: bad pubkey hex: %w", err)
	}
	copy(k[:], b)
	return k, nil
}

// SignatureFromHex decodes a 128-character hex string into a Signature.
func SignatureFromHex(s string) (Signature, error) {
	var sig Signature
	b, err := decodeFixedHex(s, SignatureLength)
	if err != nil {
		return sig, fmt.Errorf("common: bad signature hex: %w", err)
	}
	copy(sig[:], b)
	return sig, nil
}

func decodeFixedHex(s string, n int) ([]byte, error) {
	if len(s) != n*2 {
		return nil, fmt.Errorf("want %d hex chars, got %d", n*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}
