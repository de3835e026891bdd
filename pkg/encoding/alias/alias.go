/*
Package alias provides tolerant decoding of JSON objects whose fields can
come under several historical spellings (snake_case, camelCase, legacy
names). Each field declares the list of keys it accepts in priority order,
the first key present with a non-null value wins.
*/
package alias

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissing is wrapped into FieldError when none of the field keys are present.
var ErrMissing = errors.New("missing field")

// FieldError describes a field that could not be decoded.
type FieldError struct {
	// Field is the canonical name of the field.
	Field string
	// Keys is the full list of accepted keys.
	Keys []string
	Err  error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissing) {
		return fmt.Sprintf("%s: none of %s present", e.Field, strings.Join(e.Keys, ", "))
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Object is a JSON object with undecoded members.
type Object map[string]json.RawMessage

// Parse decodes data as a JSON object. JSON null yields an empty Object.
func Parse(data []byte) (Object, error) {
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		o = Object{}
	}
	return o, nil
}

// Lookup returns the raw value of the first key present with a non-null
// value along with the key itself.
func (o Object) Lookup(keys ...string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		raw, ok := o[k]
		if ok && !isNull(raw) {
			return raw, k, true
		}
	}
	return nil, "", false
}

// Has returns true if any of the keys is present with a non-null value.
func (o Object) Has(keys ...string) bool {
	_, _, ok := o.Lookup(keys...)
	return ok
}

// Required decodes the first present key into dst and fails with
// FieldError when none are present. keys[0] is the canonical name.
func (o Object) Required(dst any, keys ...string) error {
	raw, _, ok := o.Lookup(keys...)
	if !ok {
		return &FieldError{Field: keys[0], Keys: keys, Err: ErrMissing}
	}
	return decode(raw, dst, keys)
}

// Optional decodes the first present key into dst, leaving dst untouched
// when none are present. It returns whether something was decoded.
func (o Object) Optional(dst any, keys ...string) (bool, error) {
	raw, _, ok := o.Lookup(keys...)
	if !ok {
		return false, nil
	}
	return true, decode(raw, dst, keys)
}

func decode(raw json.RawMessage, dst any, keys []string) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &FieldError{Field: keys[0], Keys: keys, Err: err}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Of returns snake and its camelCase spelling (if different) followed by
// extra legacy keys. It's the usual alias list for node fields.
func Of(snake string, extra ...string) []string {
	keys := make([]string, 0, 2+len(extra))
	keys = append(keys, snake)
	if camel := Camel(snake); camel != snake {
		keys = append(keys, camel)
	}
	return append(keys, extra...)
}

// Camel converts snake_case into camelCase.
func Camel(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Fields decodes several fields of an Object keeping the first error, so
// that UnmarshalJSON implementations don't need to check every field.
type Fields struct {
	o   Object
	err error
}

// NewFields parses data into Fields.
func NewFields(data []byte) (*Fields, error) {
	o, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Fields{o: o}, nil
}

// Object returns the underlying object.
func (f *Fields) Object() Object {
	return f.o
}

// Required is like Object.Required, it's a no-op after the first error.
func (f *Fields) Required(dst any, keys ...string) {
	if f.err == nil {
		f.err = f.o.Required(dst, keys...)
	}
}

// Optional is like Object.Optional, it's a no-op after the first error.
func (f *Fields) Optional(dst any, keys ...string) bool {
	if f.err != nil {
		return false
	}
	ok, err := f.o.Optional(dst, keys...)
	f.err = err
	return ok && err == nil
}

// Err returns the first error encountered.
func (f *Fields) Err() error {
	return f.err
}
