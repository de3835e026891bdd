package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// BlockHeaderInnerLite is the part of a block header light clients
	// verify.
	BlockHeaderInnerLite struct {
		Height           uint64          `json:"height"`
		EpochID          util.CryptoHash `json:"epoch_id"`
		NextEpochID      util.CryptoHash `json:"next_epoch_id"`
		PrevStateRoot    util.CryptoHash `json:"prev_state_root"`
		OutcomeRoot      util.CryptoHash `json:"outcome_root"`
		Timestamp        uint64          `json:"timestamp"`
		TimestampNanosec util.U128       `json:"timestamp_nanosec,omitempty"`
		NextBPHash       util.CryptoHash `json:"next_bp_hash"`
		BlockMerkleRoot  util.CryptoHash `json:"block_merkle_root"`
	}

	// LightClientBlockLite is a block header reduced for light clients.
	LightClientBlockLite struct {
		PrevBlockHash util.CryptoHash      `json:"prev_block_hash"`
		InnerRestHash util.CryptoHash      `json:"inner_rest_hash"`
		InnerLite     BlockHeaderInnerLite `json:"inner_lite"`
	}

	// LightClientExecutionProof is an "EXPERIMENTAL_light_client_proof"
	// result.
	LightClientExecutionProof struct {
		OutcomeProof     ExecutionOutcomeWithID
		OutcomeRootProof []MerklePathItem
		BlockHeaderLite  LightClientBlockLite
		BlockProof       []MerklePathItem
	}

	lightClientExecutionProofAux struct {
		OutcomeProof     ExecutionOutcomeWithID `json:"outcome_proof"`
		OutcomeRootProof []MerklePathItem       `json:"outcome_root_proof"`
		BlockHeaderLite  LightClientBlockLite   `json:"block_header_lite"`
		BlockProof       []MerklePathItem       `json:"block_proof"`
	}

	// LightClientBlock is a "next_light_client_block" result.
	LightClientBlock struct {
		PrevBlockHash      util.CryptoHash
		NextBlockInnerHash util.CryptoHash
		InnerLite          BlockHeaderInnerLite
		InnerRestHash      util.CryptoHash
		NextBPs            []ValidatorStake
		ApprovalsAfterNext []*string
	}

	lightClientBlockAux struct {
		PrevBlockHash      util.CryptoHash      `json:"prev_block_hash"`
		NextBlockInnerHash util.CryptoHash      `json:"next_block_inner_hash"`
		InnerLite          BlockHeaderInnerLite `json:"inner_lite"`
		InnerRestHash      util.CryptoHash      `json:"inner_rest_hash"`
		NextBPs            []ValidatorStake     `json:"next_bps"`
		ApprovalsAfterNext []*string            `json:"approvals_after_next"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (p LightClientExecutionProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(lightClientExecutionProofAux(p))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *LightClientExecutionProof) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res LightClientExecutionProof
	f.Required(&res.OutcomeProof, alias.Of("outcome_proof")...)
	f.Optional(&res.OutcomeRootProof, alias.Of("outcome_root_proof")...)
	f.Required(&res.BlockHeaderLite, alias.Of("block_header_lite")...)
	f.Optional(&res.BlockProof, alias.Of("block_proof")...)
	if err := f.Err(); err != nil {
		return err
	}
	*p = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b LightClientBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(lightClientBlockAux(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *LightClientBlock) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res LightClientBlock
	f.Required(&res.PrevBlockHash, alias.Of("prev_block_hash")...)
	f.Optional(&res.NextBlockInnerHash, alias.Of("next_block_inner_hash")...)
	f.Required(&res.InnerLite, alias.Of("inner_lite")...)
	f.Optional(&res.InnerRestHash, alias.Of("inner_rest_hash")...)
	f.Optional(&res.NextBPs, alias.Of("next_bps")...)
	f.Optional(&res.ApprovalsAfterNext, alias.Of("approvals_after_next")...)
	if err := f.Err(); err != nil {
		return err
	}
	*b = res
	return nil
}
