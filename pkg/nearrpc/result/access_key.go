package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/util"
)

const fullAccess = "FullAccess"

type (
	// AccessKeyPermission is either full access or a function call
	// permission. FunctionCall is nil for full access keys.
	AccessKeyPermission struct {
		FunctionCall *FunctionCallPermission
	}

	// FunctionCallPermission limits the key to calling methods of a single
	// contract. Nil Allowance means unlimited allowance.
	FunctionCallPermission struct {
		Allowance   *util.U128     `json:"allowance"`
		ReceiverID  util.AccountID `json:"receiver_id"`
		MethodNames []string       `json:"method_names"`
	}

	// AccessKey is a view_access_key query result.
	AccessKey struct {
		Nonce      uint64
		Permission AccessKeyPermission
		BlockInfo
	}

	accessKeyAux struct {
		Nonce      uint64              `json:"nonce"`
		Permission AccessKeyPermission `json:"permission"`
		BlockInfo
	}

	// AccessKeyInfo is an access key along with its public key.
	AccessKeyInfo struct {
		PublicKey util.PublicKey `json:"public_key"`
		AccessKey AccessKey      `json:"access_key"`
	}

	// AccessKeyList is a view_access_key_list query result. An empty key
	// list is decoded as nil.
	AccessKeyList struct {
		Keys []AccessKeyInfo
		BlockInfo
	}

	accessKeyListAux struct {
		Keys []AccessKeyInfo `json:"keys"`
		BlockInfo
	}
)

// IsFullAccess returns true for full access keys.
func (p AccessKeyPermission) IsFullAccess() bool {
	return p.FunctionCall == nil
}

// MarshalJSON implements the json.Marshaler interface.
func (p AccessKeyPermission) MarshalJSON() ([]byte, error) {
	if p.FunctionCall == nil {
		return json.Marshal(fullAccess)
	}
	return json.Marshal(map[string]*FunctionCallPermission{"FunctionCall": p.FunctionCall})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *AccessKeyPermission) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != fullAccess {
			return fmt.Errorf("unknown access key permission %q", s)
		}
		*p = AccessKeyPermission{}
		return nil
	}
	o, err := alias.Parse(data)
	if err != nil {
		return err
	}
	if o.Has(fullAccess) {
		*p = AccessKeyPermission{}
		return nil
	}
	fc := new(FunctionCallPermission)
	if err := o.Required(fc, "FunctionCall", "function_call", "functionCall"); err != nil {
		return err
	}
	*p = AccessKeyPermission{FunctionCall: fc}
	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *FunctionCallPermission) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res FunctionCallPermission
	var allowance util.U128
	if f.Optional(&allowance, "allowance") {
		res.Allowance = &allowance
	}
	f.Required(&res.ReceiverID, alias.Of("receiver_id")...)
	f.Optional(&res.MethodNames, alias.Of("method_names")...)
	if err := f.Err(); err != nil {
		return err
	}
	*p = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (k AccessKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(accessKeyAux(k))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (k *AccessKey) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res AccessKey
	f.Required(&res.Nonce, "nonce")
	f.Required(&res.Permission, "permission")
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	*k = res
	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *AccessKeyInfo) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res AccessKeyInfo
	f.Required(&res.PublicKey, alias.Of("public_key")...)
	f.Required(&res.AccessKey, alias.Of("access_key")...)
	if err := f.Err(); err != nil {
		return err
	}
	*i = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (l AccessKeyList) MarshalJSON() ([]byte, error) {
	l.Keys = nonNil(l.Keys)
	return json.Marshal(accessKeyListAux(l))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (l *AccessKeyList) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res AccessKeyList
	f.Required(&res.Keys, "keys")
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	res.Keys = nilIfEmpty(res.Keys)
	*l = res
	return nil
}

// ErrKeyNotFound is returned by AccessKeyList.Find.
var ErrKeyNotFound = errors.New("access key not found")

// Find returns the access key with the given public key.
func (l *AccessKeyList) Find(key util.PublicKey) (*AccessKey, error) {
	for i := range l.Keys {
		if l.Keys[i].PublicKey == key {
			return &l.Keys[i].AccessKey, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}
