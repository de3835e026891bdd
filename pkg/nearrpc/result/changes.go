package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// StateChange is a single state change with its cause. The change body
	// depends on Type (account_update, access_key_update, data_update,
	// contract_code_update and their deletion counterparts).
	StateChange struct {
		Cause  jsonval.Value `json:"cause"`
		Type   string        `json:"type"`
		Change jsonval.Value `json:"change"`
	}

	// StateChanges is a "changes" method result.
	StateChanges struct {
		BlockHash util.CryptoHash
		Changes   []StateChange
	}

	stateChangesAux struct {
		BlockHash util.CryptoHash `json:"block_hash"`
		Changes   []StateChange   `json:"changes"`
	}

	// StateChangeKind names a kind of change of an account.
	StateChangeKind struct {
		Type      string         `json:"type"`
		AccountID util.AccountID `json:"account_id"`
	}

	// StateChangesInBlock is an "EXPERIMENTAL_changes_in_block" result.
	StateChangesInBlock struct {
		BlockHash util.CryptoHash
		Changes   []StateChangeKind
	}

	stateChangesInBlockAux struct {
		BlockHash util.CryptoHash   `json:"block_hash"`
		Changes   []StateChangeKind `json:"changes"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (s StateChanges) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateChangesAux(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *StateChanges) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res StateChanges
	f.Required(&res.BlockHash, alias.Of("block_hash")...)
	f.Optional(&res.Changes, "changes")
	if err := f.Err(); err != nil {
		return err
	}
	*s = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s StateChangesInBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateChangesInBlockAux(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *StateChangesInBlock) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res StateChangesInBlock
	f.Required(&res.BlockHash, alias.Of("block_hash")...)
	f.Optional(&res.Changes, "changes")
	if err := f.Err(); err != nil {
		return err
	}
	*s = res
	return nil
}
