package flags

import (
	"testing"

	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestParseBlockReference(t *testing.T) {
	const hash = "6RWmTYhXCzjMjoY3Mz1rfFcnBm8E6XeDDbFEPUA4sv1w"

	h, err := util.CryptoHashDecodeString(hash)
	require.NoError(t, err)

	testCases := map[string]nearrpc.BlockReference{
		"final":              nearrpc.FinalityRef(nearrpc.FinalityFinal),
		"optimistic":         nearrpc.FinalityRef(nearrpc.FinalityOptimistic),
		" near-final ":       nearrpc.FinalityRef(nearrpc.FinalityNearFinal),
		"genesis":            nearrpc.SyncCheckpointRef(nearrpc.GenesisCheckpoint),
		"earliest_available": nearrpc.SyncCheckpointRef(nearrpc.EarliestAvailableCheckpoint),
		"17":                 nearrpc.HeightRef(17),
		hash:                 nearrpc.HashRef(h),
	}
	for s, expected := range testCases {
		actual, err := ParseBlockReference(s)
		require.NoError(t, err, s)
		require.Equal(t, expected, actual, s)
	}

	for _, s := range []string{"", "latest", "-1", "0x1234"} {
		_, err := ParseBlockReference(s)
		require.Error(t, err, s)
	}
}

func TestParseAccountID(t *testing.T) {
	for _, s := range []string{"near", "alice.near", "app_1.alice-bob.testnet", "a1",
		"98793cd91a3f870fb126f66285808c7e094afcfc4eda8a970f6648cdf0dbd6de"} {
		id, err := ParseAccountID(s)
		require.NoError(t, err, s)
		require.Equal(t, util.AccountID(s), id)
	}
	for _, s := range []string{"a", "Alice.near", "alice..near", ".near", "near.", "alice near",
		"a123456789012345678901234567890123456789012345678901234567890123456789"} {
		_, err := ParseAccountID(s)
		require.Error(t, err, s)
	}
}

func TestParseWaitUntil(t *testing.T) {
	w, err := ParseWaitUntil("")
	require.NoError(t, err)
	require.Equal(t, nearrpc.WaitUntil(""), w)

	w, err = ParseWaitUntil("final")
	require.NoError(t, err)
	require.Equal(t, nearrpc.WaitFinal, w)

	_, err = ParseWaitUntil("someday")
	require.Error(t, err)
}
