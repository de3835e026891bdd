/*
Package jsonval implements a closed JSON value type used for fields whose
shape is not fixed by the protocol (error data, contract call results,
config sections that change between node versions).
*/
package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Kind is the type tag of a Value.
type Kind byte

// Kinds of JSON values.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// ErrKind is returned by accessors used on a Value of the other kind.
var ErrKind = errors.New("wrong JSON value kind")

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Value is an arbitrary JSON value. The zero Value is JSON null. Values are
// immutable once constructed, accessors return copies of containers.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns a JSON null.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Number returns a JSON number.
func Number(n float64) Value { return Value{kind: NumberKind, n: n} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Array returns a JSON array holding the given elements.
func Array(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: ArrayKind, arr: arr}
}

// Object returns a JSON object holding the given members.
func Object(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for k, v := range members {
		obj[k] = v
	}
	return Value{kind: ObjectKind, obj: obj}
}

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull returns true if v is JSON null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != BoolKind {
		return false, v.kindErr(BoolKind)
	}
	return v.b, nil
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, error) {
	if v.kind != NumberKind {
		return 0, v.kindErr(NumberKind)
	}
	return v.n, nil
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != StringKind {
		return "", v.kindErr(StringKind)
	}
	return v.s, nil
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != ArrayKind {
		return nil, v.kindErr(ArrayKind)
	}
	res := make([]Value, len(v.arr))
	copy(res, v.arr)
	return res, nil
}

// AsObject returns a copy of the members held by v.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != ObjectKind {
		return nil, v.kindErr(ObjectKind)
	}
	res := make(map[string]Value, len(v.obj))
	for k, m := range v.obj {
		res[k] = m
	}
	return res, nil
}

// Get returns the member of an object by its key. The second value is false
// if v is not an object or has no such member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Len returns the number of array elements or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal checks structural equality, object member order is irrelevant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case NumberKind:
		return v.n == other.n
	case StringKind:
		return v.s == other.s
	case ArrayKind:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, m := range v.obj {
			om, ok := other.obj[k]
			if !ok || !m.Equal(om) {
				return false
			}
		}
		return true
	}
	return false
}

// Into re-decodes v into the Go value pointed to by dst.
func (v Value) Into(dst any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (v Value) kindErr(want Kind) error {
	return fmt.Errorf("%w: %s expected, got %s", ErrKind, want, v.kind)
}

// Decode parses data into a Value.
func Decode(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

// MarshalJSON implements the json.Marshaler interface. Object members are
// written in key order so that the output is stable.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return json.Marshal(v.b)
	case NumberKind:
		if math.IsInf(v.n, 0) || math.IsNaN(v.n) {
			return nil, fmt.Errorf("unsupported number %v", v.n)
		}
		return json.Marshal(v.n)
	case StringKind:
		return json.Marshal(v.s)
	case ArrayKind:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case ObjectKind:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := bytes.NewBufferString("{")
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := v.obj[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown JSON value kind %d", v.kind)
}

// UnmarshalJSON implements the json.Unmarshaler interface. The variant is
// chosen by the token itself, so a quoted "true" stays a string.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty JSON value")
	}
	switch c := data[0]; {
	case c == 'n':
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("invalid JSON literal %q", data)
		}
		*v = Null()
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case c == '-' || (c >= '0' && c <= '9'):
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case c == '[':
		var arr []Value
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if arr == nil {
			arr = []Value{}
		}
		*v = Value{kind: ArrayKind, arr: arr}
	case c == '{':
		var obj map[string]Value
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj == nil {
			obj = map[string]Value{}
		}
		*v = Value{kind: ObjectKind, obj: obj}
	default:
		return fmt.Errorf("unexpected JSON token %q", c)
	}
	return nil
}
