package result

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/util"
)

// StatusKind is a kind of execution status.
type StatusKind string

// Execution status kinds. Unknown is only used for receipt and transaction
// outcomes, NotStarted and Started only for final transaction status.
const (
	StatusUnknown          StatusKind = "Unknown"
	StatusNotStarted       StatusKind = "NotStarted"
	StatusStarted          StatusKind = "Started"
	StatusFailure          StatusKind = "Failure"
	StatusSuccessValue     StatusKind = "SuccessValue"
	StatusSuccessReceiptID StatusKind = "SuccessReceiptId"
)

// ExecutionStatus is the status of a transaction or a receipt execution.
type ExecutionStatus struct {
	// Kind is empty for the zero value, it's encoded as an empty string.
	Kind StatusKind
	// SuccessValue is the decoded return value for StatusSuccessValue, nil
	// if it's empty.
	SuccessValue []byte
	// ReceiptID is set for StatusSuccessReceiptID.
	ReceiptID util.CryptoHash
	// Failure is the error description for StatusFailure.
	Failure jsonval.Value
}

// IsSuccess returns true for both success kinds.
func (s ExecutionStatus) IsSuccess() bool {
	return s.Kind == StatusSuccessValue || s.Kind == StatusSuccessReceiptID
}

// MarshalJSON implements the json.Marshaler interface.
func (s ExecutionStatus) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StatusSuccessValue:
		return json.Marshal(map[string]string{string(s.Kind): base64.StdEncoding.EncodeToString(s.SuccessValue)})
	case StatusSuccessReceiptID:
		return json.Marshal(map[string]util.CryptoHash{string(s.Kind): s.ReceiptID})
	case StatusFailure:
		return json.Marshal(map[string]jsonval.Value{string(s.Kind): s.Failure})
	default:
		return json.Marshal(string(s.Kind))
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var k string
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		switch kind := StatusKind(k); kind {
		case "", StatusUnknown, StatusNotStarted, StatusStarted:
			*s = ExecutionStatus{Kind: kind}
			return nil
		default:
			return fmt.Errorf("unknown execution status %q", k)
		}
	}
	o, err := alias.Parse(data)
	if err != nil {
		return err
	}
	var res ExecutionStatus
	switch {
	case o.Has(string(StatusSuccessValue)):
		res.Kind = StatusSuccessValue
		var v string
		if err := o.Required(&v, string(StatusSuccessValue)); err != nil {
			return err
		}
		res.SuccessValue, err = base64.StdEncoding.DecodeString(v)
		if err != nil {
			return fmt.Errorf("SuccessValue: %w", err)
		}
		res.SuccessValue = nilIfEmpty(res.SuccessValue)
	case o.Has(string(StatusSuccessReceiptID), "SuccessReceiptID"):
		res.Kind = StatusSuccessReceiptID
		if err := o.Required(&res.ReceiptID, string(StatusSuccessReceiptID), "SuccessReceiptID"); err != nil {
			return err
		}
	case o.Has(string(StatusFailure)):
		res.Kind = StatusFailure
		if err := o.Required(&res.Failure, string(StatusFailure)); err != nil {
			return err
		}
	default:
		if _, ok := o[string(StatusSuccessValue)]; ok {
			// {"SuccessValue": null} is an empty return value.
			res.Kind = StatusSuccessValue
			break
		}
		return fmt.Errorf("unknown execution status %s", data)
	}
	*s = res
	return nil
}

type (
	// ExecutionOutcome is the result of a transaction or receipt execution.
	ExecutionOutcome struct {
		Logs        []string
		ReceiptIDs  []util.CryptoHash
		GasBurnt    uint64
		TokensBurnt util.U128
		ExecutorID  util.AccountID
		Status      ExecutionStatus
		Metadata    jsonval.Value
	}

	executionOutcomeAux struct {
		Logs        []string          `json:"logs"`
		ReceiptIDs  []util.CryptoHash `json:"receipt_ids"`
		GasBurnt    uint64            `json:"gas_burnt"`
		TokensBurnt util.U128         `json:"tokens_burnt,omitempty"`
		ExecutorID  util.AccountID    `json:"executor_id"`
		Status      ExecutionStatus   `json:"status"`
		Metadata    *jsonval.Value    `json:"metadata,omitempty"`
	}

	// MerklePathItem is a single step of a merkle proof.
	MerklePathItem struct {
		Hash      util.CryptoHash `json:"hash"`
		Direction string          `json:"direction"`
	}

	// ExecutionOutcomeWithID is an ExecutionOutcome with the id of the
	// transaction or receipt it belongs to.
	ExecutionOutcomeWithID struct {
		ID        util.CryptoHash
		BlockHash util.CryptoHash
		Outcome   ExecutionOutcome
		Proof     []MerklePathItem
	}

	executionOutcomeWithIDAux struct {
		ID        util.CryptoHash  `json:"id"`
		BlockHash util.CryptoHash  `json:"block_hash"`
		Outcome   ExecutionOutcome `json:"outcome"`
		Proof     []MerklePathItem `json:"proof"`
	}

	// FinalExecutionOutcome is a result of send_tx, broadcast_tx_commit, tx
	// and EXPERIMENTAL_tx_status. Depending on wait_until the node may not
	// have the outcome yet, so all parts are optional. Receipts are only
	// filled in by EXPERIMENTAL_tx_status.
	FinalExecutionOutcome struct {
		FinalExecutionStatus string
		Status               *ExecutionStatus
		Transaction          *SignedTransaction
		TransactionOutcome   *ExecutionOutcomeWithID
		ReceiptsOutcome      []ExecutionOutcomeWithID
		Receipts             []Receipt
	}

	finalExecutionOutcomeAux struct {
		FinalExecutionStatus string                   `json:"final_execution_status,omitempty"`
		Status               *ExecutionStatus         `json:"status"`
		Transaction          *SignedTransaction       `json:"transaction,omitempty"`
		TransactionOutcome   *ExecutionOutcomeWithID  `json:"transaction_outcome,omitempty"`
		ReceiptsOutcome      []ExecutionOutcomeWithID `json:"receipts_outcome,omitempty"`
		Receipts             []Receipt                `json:"receipts,omitempty"`
	}

	// Receipt is an EXPERIMENTAL_receipt result. The receipt body depends on
	// its kind and is kept as a generic value.
	Receipt struct {
		PredecessorID util.AccountID  `json:"predecessor_id"`
		ReceiverID    util.AccountID  `json:"receiver_id"`
		ReceiptID     util.CryptoHash `json:"receipt_id"`
		Receipt       jsonval.Value   `json:"receipt"`
		Priority      uint64          `json:"priority,omitempty"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (o ExecutionOutcome) MarshalJSON() ([]byte, error) {
	aux := executionOutcomeAux{
		Logs:        o.Logs,
		ReceiptIDs:  o.ReceiptIDs,
		GasBurnt:    o.GasBurnt,
		TokensBurnt: o.TokensBurnt,
		ExecutorID:  o.ExecutorID,
		Status:      o.Status,
	}
	if !o.Metadata.IsNull() {
		aux.Metadata = &o.Metadata
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *ExecutionOutcome) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ExecutionOutcome
	f.Optional(&res.Logs, "logs")
	f.Optional(&res.ReceiptIDs, alias.Of("receipt_ids")...)
	f.Optional(&res.GasBurnt, alias.Of("gas_burnt")...)
	f.Optional(&res.TokensBurnt, alias.Of("tokens_burnt")...)
	f.Required(&res.ExecutorID, alias.Of("executor_id")...)
	f.Required(&res.Status, "status")
	f.Optional(&res.Metadata, "metadata")
	if err := f.Err(); err != nil {
		return err
	}
	*o = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (o ExecutionOutcomeWithID) MarshalJSON() ([]byte, error) {
	return json.Marshal(executionOutcomeWithIDAux(o))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *ExecutionOutcomeWithID) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ExecutionOutcomeWithID
	f.Required(&res.ID, "id")
	f.Optional(&res.BlockHash, alias.Of("block_hash")...)
	f.Required(&res.Outcome, "outcome")
	f.Optional(&res.Proof, "proof")
	if err := f.Err(); err != nil {
		return err
	}
	*o = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (o FinalExecutionOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(finalExecutionOutcomeAux(o))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *FinalExecutionOutcome) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var (
		res    FinalExecutionOutcome
		status ExecutionStatus
		tx     SignedTransaction
		txOut  ExecutionOutcomeWithID
	)
	f.Optional(&res.FinalExecutionStatus, alias.Of("final_execution_status")...)
	if f.Optional(&status, "status") {
		res.Status = &status
	}
	if f.Optional(&tx, "transaction") {
		res.Transaction = &tx
	}
	if f.Optional(&txOut, alias.Of("transaction_outcome")...) {
		res.TransactionOutcome = &txOut
	}
	f.Optional(&res.ReceiptsOutcome, alias.Of("receipts_outcome")...)
	f.Optional(&res.Receipts, "receipts")
	if err := f.Err(); err != nil {
		return err
	}
	*o = res
	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res Receipt
	f.Required(&res.PredecessorID, alias.Of("predecessor_id")...)
	f.Required(&res.ReceiverID, alias.Of("receiver_id")...)
	f.Required(&res.ReceiptID, alias.Of("receipt_id")...)
	f.Optional(&res.Receipt, "receipt")
	f.Optional(&res.Priority, "priority")
	if err := f.Err(); err != nil {
		return err
	}
	*r = res
	return nil
}
