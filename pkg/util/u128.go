package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// ErrInvalidU128 is returned for strings that are not unsigned decimal numbers.
var ErrInvalidU128 = errors.New("invalid u128 value")

// U128 is a balance or stake amount in yoctoNEAR. Values may exceed 64 bits,
// so they're kept as decimal strings exactly as the node sent them. The
// RPC layers never do arithmetic on them.
type U128 string

// ParseU128 checks that s is a non-empty sequence of decimal digits.
func ParseU128(s string) (U128, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("%w: empty string", ErrInvalidU128)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidU128, s)
		}
	}
	return U128(s), nil
}

// String implements the fmt.Stringer interface.
func (u U128) String() string {
	return string(u)
}

// Uint256 converts u into a 256-bit integer for presentation purposes.
func (u U128) Uint256() (*uint256.Int, error) {
	if u == "" {
		return uint256.NewInt(0), nil
	}
	b, ok := new(big.Int).SetString(string(u), 10)
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidU128, string(u))
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: %q overflows 256 bits", ErrInvalidU128, string(u))
	}
	return v, nil
}

// MarshalJSON implements the json.Marshaler interface, the value is always
// a JSON string.
func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(u))
}

// UnmarshalJSON implements the json.Unmarshaler interface. Both JSON strings
// and bare integer literals (used by some older nodes) are accepted. An empty
// JSON string is the zero value, that's what MarshalJSON produces for it.
func (u *U128) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*u = ""
			return nil
		}
	} else {
		s = string(data)
	}
	v, err := ParseU128(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
