package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKinds(t *testing.T) {
	var testCases = map[string]struct {
		in   string
		kind Kind
	}{
		"null":          {`null`, NullKind},
		"true":          {`true`, BoolKind},
		"false":         {` false `, BoolKind},
		"int":           {`42`, NumberKind},
		"negative":      {`-1.5e3`, NumberKind},
		"string":        {`"abc"`, StringKind},
		"quoted bool":   {`"true"`, StringKind},
		"quoted null":   {`"null"`, StringKind},
		"empty array":   {`[]`, ArrayKind},
		"nested array":  {`[1, "a", [null]]`, ArrayKind},
		"empty object":  {`{}`, ObjectKind},
		"nested object": {`{"a": {"b": [true]}}`, ObjectKind},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			v, err := Decode([]byte(tc.in))
			require.NoError(t, err)
			require.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, in := range []string{``, `nul`, `tru`, `{`, `[1,`, `"abc`, `@`, `nullx`} {
		_, err := Decode([]byte(in))
		require.Error(t, err, in)
	}
}

func TestQuotedBoolStaysString(t *testing.T) {
	v, err := Decode([]byte(`"true"`))
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "true", s)
	_, err = v.AsBool()
	require.ErrorIs(t, err, ErrKind)
}

func TestRoundTrip(t *testing.T) {
	var in = `{"code":-32000,"data":{"list":[1,2.5,"x",null,false],"ok":true},"message":"boom"}`
	v, err := Decode([]byte(in))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))

	again, err := Decode(out)
	require.NoError(t, err)
	require.True(t, v.Equal(again))
}

func TestEqualIgnoresMemberOrder(t *testing.T) {
	a, err := Decode([]byte(`{"a":1,"b":[true,null]}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"b":[true,null],"a":1}`))
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	c, err := Decode([]byte(`{"b":[null,true],"a":1}`))
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}

func TestConstructors(t *testing.T) {
	v := Object(map[string]Value{
		"name":  String("alice.near"),
		"nonce": Number(7),
		"keys":  Array(String("ed25519:abc"), Null()),
		"full":  Bool(true),
	})
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"full":true,"keys":["ed25519:abc",null],"name":"alice.near","nonce":7}`, string(data))

	name, ok := v.Get("name")
	require.True(t, ok)
	require.True(t, name.Equal(String("alice.near")))
	_, ok = v.Get("missing")
	require.False(t, ok)
	require.Equal(t, 4, v.Len())

	var zero Value
	require.True(t, zero.IsNull())
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

func TestEmbeddedInStruct(t *testing.T) {
	var s struct {
		Data Value `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"data":null}`), &s))
	require.True(t, s.Data.IsNull())

	require.NoError(t, json.Unmarshal([]byte(`{"data":["a"]}`), &s))
	arr, err := s.Data.AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 1)
}

func TestInto(t *testing.T) {
	v, err := Decode([]byte(`{"height":100,"hash":"abc"}`))
	require.NoError(t, err)
	var dst struct {
		Height uint64 `json:"height"`
		Hash   string `json:"hash"`
	}
	require.NoError(t, v.Into(&dst))
	assert.Equal(t, uint64(100), dst.Height)
	assert.Equal(t, "abc", dst.Hash)
}
