package alias

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCamel(t *testing.T) {
	require.Equal(t, "storageUsage", Camel("storage_usage"))
	require.Equal(t, "timestampNanosec", Camel("timestamp_nanosec"))
	require.Equal(t, "amount", Camel("amount"))
	require.Equal(t, []string{"amount"}, Of("amount"))
	require.Equal(t, []string{"code_hash", "codeHash"}, Of("code_hash"))
	require.Equal(t, []string{"locked", "locked_amount", "lockedAmount"}, Of("locked", "locked_amount", "lockedAmount"))
}

func TestAnyAliasDecodesTheSame(t *testing.T) {
	keys := []string{"locked", "locked_amount", "lockedAmount"}
	for _, k := range keys {
		o, err := Parse([]byte(`{"` + k + `":"2"}`))
		require.NoError(t, err)
		var s string
		require.NoError(t, o.Required(&s, keys...))
		require.Equal(t, "2", s, k)
	}
}

func TestPriorityOrder(t *testing.T) {
	o, err := Parse([]byte(`{"lockedAmount":"3","locked_amount":"2"}`))
	require.NoError(t, err)
	var s string
	require.NoError(t, o.Required(&s, "locked", "locked_amount", "lockedAmount"))
	require.Equal(t, "2", s)
}

func TestNullIsAbsent(t *testing.T) {
	o, err := Parse([]byte(`{"code_hash":null,"codeHash":"abc"}`))
	require.NoError(t, err)
	var s string
	require.NoError(t, o.Required(&s, Of("code_hash")...))
	require.Equal(t, "abc", s)

	o, err = Parse([]byte(`{"code_hash":null}`))
	require.NoError(t, err)
	ok, err := o.Optional(&s, Of("code_hash")...)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRequiredMissing(t *testing.T) {
	o, err := Parse([]byte(`{"other":1}`))
	require.NoError(t, err)
	var n uint64
	err = o.Required(&n, Of("block_height")...)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "block_height", fe.Field)
	require.ErrorIs(t, err, ErrMissing)
	require.Contains(t, err.Error(), "blockHeight")
}

func TestWrongType(t *testing.T) {
	o, err := Parse([]byte(`{"height":"x"}`))
	require.NoError(t, err)
	var n uint64
	err = o.Required(&n, "height")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.NotErrorIs(t, err, ErrMissing)
}

func TestParse(t *testing.T) {
	o, err := Parse([]byte(`null`))
	require.NoError(t, err)
	require.Empty(t, o)

	_, err = Parse([]byte(`[1]`))
	require.Error(t, err)
	_, err = Parse([]byte(`"str"`))
	require.Error(t, err)
}

func TestFields(t *testing.T) {
	f, err := NewFields([]byte(`{"height":1,"blockHash":"h","extra":null}`))
	require.NoError(t, err)
	var (
		height uint64
		hash   string
		extra  string
		other  string
	)
	f.Required(&height, "height")
	f.Required(&hash, Of("block_hash")...)
	require.False(t, f.Optional(&extra, "extra"))
	require.NoError(t, f.Err())
	require.Equal(t, uint64(1), height)
	require.Equal(t, "h", hash)

	f.Required(&other, "missing")
	f.Required(&hash, "height")
	require.ErrorIs(t, f.Err(), ErrMissing)
	require.Equal(t, "h", hash)
	require.True(t, f.Object().Has("height"))
}
