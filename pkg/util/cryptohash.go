package util

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// CryptoHashSize is the size of CryptoHash in bytes.
const CryptoHashSize = 32

// CryptoHash is a 32 byte long sha256 digest used for block, chunk,
// transaction and receipt identifiers. Its wire form is a base58 string.
type CryptoHash [CryptoHashSize]byte

// CryptoHashDecodeString decodes base58-encoded s into a CryptoHash.
func CryptoHashDecodeString(s string) (h CryptoHash, err error) {
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("invalid base58 hash %q: %w", s, err)
	}
	return CryptoHashDecodeBytes(b)
}

// CryptoHashDecodeBytes converts b into a CryptoHash.
func CryptoHashDecodeBytes(b []byte) (h CryptoHash, err error) {
	if len(b) != CryptoHashSize {
		return h, fmt.Errorf("expected []byte of size %d got %d", CryptoHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Bytes returns a byte slice representation of h.
func (h CryptoHash) Bytes() []byte {
	b := make([]byte, CryptoHashSize)
	copy(b, h[:])
	return b
}

// IsZero returns true when h is all zeroes (the "11111111111111111111111111111111"
// hash nodes use for the missing parent of genesis).
func (h CryptoHash) IsZero() bool {
	return h == CryptoHash{}
}

// String implements the fmt.Stringer interface.
func (h CryptoHash) String() string {
	return base58.Encode(h[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (h CryptoHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *CryptoHash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dec, err := CryptoHashDecodeString(s)
	if err != nil {
		return err
	}
	*h = dec
	return nil
}
