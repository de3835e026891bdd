/*
Package flags contains parsers for NEAR-specific command line values.
*/
package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/util"
)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

var errInvalidAccountID = errors.New("invalid account ID")

// ParseBlockReference parses a finality name, a sync checkpoint name, a
// block height or a block hash.
func ParseBlockReference(s string) (nearrpc.BlockReference, error) {
	s = strings.TrimSpace(s)
	if f, err := nearrpc.ParseFinality(s); err == nil {
		return nearrpc.FinalityRef(f), nil
	}
	switch c := nearrpc.SyncCheckpoint(s); c {
	case nearrpc.GenesisCheckpoint, nearrpc.EarliestAvailableCheckpoint:
		return nearrpc.SyncCheckpointRef(c), nil
	}
	id, err := nearrpc.ParseBlockID(s)
	if err != nil {
		return nearrpc.BlockReference{}, fmt.Errorf("invalid block reference %q: %w", s, err)
	}
	return nearrpc.BlockIDRef(id), nil
}

// ParseAccountID checks s to be a valid account ID: 2-64 characters, lower
// case alphanumeric parts separated by '.', '-' or '_'.
func ParseAccountID(s string) (util.AccountID, error) {
	if len(s) < minAccountIDLen || len(s) > maxAccountIDLen {
		return "", fmt.Errorf("%w %q: length should be between %d and %d", errInvalidAccountID, s, minAccountIDLen, maxAccountIDLen)
	}
	separator := true
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			separator = false
		case c == '.' || c == '-' || c == '_':
			if separator {
				return "", fmt.Errorf("%w %q: unexpected separator at %d", errInvalidAccountID, s, i)
			}
			separator = true
		default:
			return "", fmt.Errorf("%w %q: invalid character at %d", errInvalidAccountID, s, i)
		}
	}
	if separator {
		return "", fmt.Errorf("%w %q: trailing separator", errInvalidAccountID, s)
	}
	return util.AccountID(s), nil
}

// ParseWaitUntil parses transaction execution stage, an empty string means
// node default.
func ParseWaitUntil(s string) (nearrpc.WaitUntil, error) {
	if len(s) == 0 {
		return "", nil
	}
	return nearrpc.ParseWaitUntil(strings.ToUpper(s))
}
