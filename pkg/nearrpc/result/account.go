package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/util"
)

// lockedKeys lists the spellings of the locked balance field.
var lockedKeys = []string{"locked", "locked_amount", "lockedAmount"}

// BlockInfo identifies the block a query was served against.
type BlockInfo struct {
	BlockHeight uint64          `json:"block_height"`
	BlockHash   util.CryptoHash `json:"block_hash"`
}

func (b *BlockInfo) decode(f *alias.Fields) {
	f.Optional(&b.BlockHeight, alias.Of("block_height")...)
	f.Optional(&b.BlockHash, alias.Of("block_hash")...)
}

type (
	// Account is a view_account query result.
	Account struct {
		Amount util.U128
		// Locked is the amount locked for staking, "0" if the node didn't
		// report it.
		Locked        util.U128
		CodeHash      util.CryptoHash
		StorageUsage  uint64
		StoragePaidAt uint64
		BlockInfo
	}

	accountAux struct {
		Amount        util.U128       `json:"amount"`
		Locked        util.U128       `json:"locked"`
		CodeHash      util.CryptoHash `json:"code_hash"`
		StorageUsage  uint64          `json:"storage_usage"`
		StoragePaidAt uint64          `json:"storage_paid_at"`
		BlockInfo
	}
)

// ViewAccountResult is an alias kept for the query result naming.
type ViewAccountResult = Account

// MarshalJSON implements the json.Marshaler interface.
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(accountAux(a))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Account) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res = Account{Locked: "0"}
	f.Required(&res.Amount, "amount")
	f.Optional(&res.Locked, lockedKeys...)
	f.Required(&res.CodeHash, alias.Of("code_hash")...)
	f.Required(&res.StorageUsage, alias.Of("storage_usage")...)
	f.Optional(&res.StoragePaidAt, alias.Of("storage_paid_at")...)
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	*a = res
	return nil
}

type (
	// ContractCode is a view_code query result.
	ContractCode struct {
		Code []byte
		Hash util.CryptoHash
		BlockInfo
	}

	contractCodeAux struct {
		Code []byte          `json:"code_base64"`
		Hash util.CryptoHash `json:"hash"`
		BlockInfo
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (c ContractCode) MarshalJSON() ([]byte, error) {
	c.Code = nonNil(c.Code)
	return json.Marshal(contractCodeAux(c))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *ContractCode) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ContractCode
	f.Required(&res.Code, alias.Of("code_base64", "code")...)
	f.Required(&res.Hash, alias.Of("hash", "code_hash", "codeHash")...)
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	res.Code = nilIfEmpty(res.Code)
	*c = res
	return nil
}

type (
	// StateItem is a single contract storage record.
	StateItem struct {
		Key   []byte   `json:"key"`
		Value []byte   `json:"value"`
		Proof []string `json:"proof"`
	}

	// ViewStateResult is a view_state query result.
	ViewStateResult struct {
		Values []StateItem
		Proof  []string
		BlockInfo
	}

	viewStateAux struct {
		Values []StateItem `json:"values"`
		Proof  []string    `json:"proof"`
		BlockInfo
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (v ViewStateResult) MarshalJSON() ([]byte, error) {
	v.Values = nonNil(v.Values)
	return json.Marshal(viewStateAux(v))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *ViewStateResult) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ViewStateResult
	f.Required(&res.Values, "values")
	f.Optional(&res.Proof, "proof")
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	res.Values = nilIfEmpty(res.Values)
	*v = res
	return nil
}

type (
	// CallFunctionResult is a call_function query result. Result holds raw
	// bytes returned by the contract (usually JSON), nil for empty output. Older nodes report
	// execution failures in Error instead of a JSON-RPC error.
	CallFunctionResult struct {
		Result []byte
		Logs   []string
		Error  string
		BlockInfo
	}

	callFunctionAux struct {
		Result byteArray `json:"result"`
		Logs   []string  `json:"logs"`
		Error  string    `json:"error,omitempty"`
		BlockInfo
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (c CallFunctionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(callFunctionAux{
		Result:    c.Result,
		Logs:      c.Logs,
		Error:     c.Error,
		BlockInfo: c.BlockInfo,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *CallFunctionResult) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var (
		res CallFunctionResult
		raw byteArray
	)
	if !f.Optional(&res.Error, "error") {
		f.Required(&raw, "result")
	}
	f.Optional(&res.Logs, "logs")
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	res.Result = raw
	*c = res
	return nil
}

// byteArray is a byte slice encoded as an array of numbers.
type byteArray []byte

// MarshalJSON implements the json.Marshaler interface.
func (b byteArray) MarshalJSON() ([]byte, error) {
	ints := make([]uint16, len(b))
	for i := range b {
		ints[i] = uint16(b[i])
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements the json.Unmarshaler interface. A base64 string
// is accepted as well.
func (b *byteArray) UnmarshalJSON(data []byte) error {
	var res []byte
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	*b = nilIfEmpty(res)
	return nil
}

// nonNil makes nil lists of required fields encode as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// nilIfEmpty is the decoding counterpart of nonNil.
func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
