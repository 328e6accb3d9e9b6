package common

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Hash as its lowercase hex string, matching the wire
// format in the slot/transfer JSON schema.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := HashFromHex(s)
	if err != nil {
		return fmt.Errorf("common: Hash.UnmarshalJSON: %w", err)
	}
	*h = v
	return nil
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Hex())
}

func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := PublicKeyFromHex(s)
	if err != nil {
		return fmt.Errorf("common: PublicKey.UnmarshalJSON: %w", err)
	}
	*k = v
	return nil
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hex())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := SignatureFromHex(str)
	if err != nil {
		return fmt.Errorf("common: Signature.UnmarshalJSON: %w", err)
	}
	*s = v
	return nil
}
