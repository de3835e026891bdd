package testserdes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// UnmarshalAliases decodes every payload into a new value made by mk and
// checks that all of them are equal. It returns the decoded value.
func UnmarshalAliases[T any](t *testing.T, mk func() *T, payloads ...string) *T {
	require.NotEmpty(t, payloads)
	var first *T
	for _, p := range payloads {
		v := mk()
		require.NoError(t, json.Unmarshal([]byte(p), v), p)
		if first == nil {
			first = v
			continue
		}
		require.Equal(t, first, v, p)
	}
	return first
}

// EncodeJSONKeys returns the top-level keys of v encoded to JSON.
func EncodeJSONKeys(t *testing.T, v any) map[string]json.RawMessage {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}
