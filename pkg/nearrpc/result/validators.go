package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// CurrentEpochValidator is a validator of the current epoch with its
	// block and chunk production statistics.
	CurrentEpochValidator struct {
		AccountID         util.AccountID `json:"account_id"`
		PublicKey         util.PublicKey `json:"public_key"`
		IsSlashed         bool           `json:"is_slashed"`
		Stake             util.U128      `json:"stake"`
		Shards            []uint64       `json:"shards"`
		NumProducedBlocks uint64         `json:"num_produced_blocks"`
		NumExpectedBlocks uint64         `json:"num_expected_blocks"`
		NumProducedChunks uint64         `json:"num_produced_chunks"`
		NumExpectedChunks uint64         `json:"num_expected_chunks"`
	}

	// NextEpochValidator is a validator selected for the next epoch.
	NextEpochValidator struct {
		AccountID util.AccountID `json:"account_id"`
		PublicKey util.PublicKey `json:"public_key"`
		Stake     util.U128      `json:"stake"`
		Shards    []uint64       `json:"shards"`
	}

	// ValidatorStake is a staking proposal or a light client block producer.
	ValidatorStake struct {
		AccountID util.AccountID `json:"account_id"`
		PublicKey util.PublicKey `json:"public_key"`
		Stake     util.U128      `json:"stake"`
		// Version is the "validator_stake_struct_version" tag, "V1" for
		// current nodes.
		Version string `json:"validator_stake_struct_version,omitempty"`
	}

	// ValidatorKickout is a validator kicked out in the previous epoch.
	ValidatorKickout struct {
		AccountID util.AccountID `json:"account_id"`
		Reason    jsonval.Value  `json:"reason"`
	}

	// EpochValidatorInfo is a "validators" method result.
	EpochValidatorInfo struct {
		CurrentValidators []CurrentEpochValidator
		NextValidators    []NextEpochValidator
		CurrentFishermen  []ValidatorStake
		NextFishermen     []ValidatorStake
		CurrentProposals  []ValidatorStake
		PrevEpochKickout  []ValidatorKickout
		EpochStartHeight  uint64
		EpochHeight       uint64
	}

	epochValidatorInfoAux struct {
		CurrentValidators []CurrentEpochValidator `json:"current_validators"`
		NextValidators    []NextEpochValidator    `json:"next_validators"`
		CurrentFishermen  []ValidatorStake        `json:"current_fishermen,omitempty"`
		NextFishermen     []ValidatorStake        `json:"next_fishermen,omitempty"`
		CurrentProposals  []ValidatorStake        `json:"current_proposals"`
		PrevEpochKickout  []ValidatorKickout      `json:"prev_epoch_kickout"`
		EpochStartHeight  uint64                  `json:"epoch_start_height"`
		EpochHeight       uint64                  `json:"epoch_height"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (v EpochValidatorInfo) MarshalJSON() ([]byte, error) {
	v.CurrentValidators = nonNil(v.CurrentValidators)
	return json.Marshal(epochValidatorInfoAux(v))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *EpochValidatorInfo) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res EpochValidatorInfo
	f.Required(&res.CurrentValidators, alias.Of("current_validators")...)
	f.Optional(&res.NextValidators, alias.Of("next_validators")...)
	f.Optional(&res.CurrentFishermen, alias.Of("current_fishermen")...)
	f.Optional(&res.NextFishermen, alias.Of("next_fishermen")...)
	f.Optional(&res.CurrentProposals, alias.Of("current_proposals")...)
	f.Optional(&res.PrevEpochKickout, alias.Of("prev_epoch_kickout")...)
	f.Required(&res.EpochStartHeight, alias.Of("epoch_start_height")...)
	f.Optional(&res.EpochHeight, alias.Of("epoch_height")...)
	if err := f.Err(); err != nil {
		return err
	}
	res.CurrentValidators = nilIfEmpty(res.CurrentValidators)
	*v = res
	return nil
}
