package netmode

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	for _, n := range []Network{MainNet, TestNet, BetaNet, LocalNet} {
		actual, err := Parse(n.String())
		require.NoError(t, err)
		require.Equal(t, n, actual)
		require.NotEmpty(t, n.Endpoint())
	}
	n, err := Parse(" TestNet ")
	require.NoError(t, err)
	require.Equal(t, TestNet, n)

	_, err = Parse("privnet")
	require.Error(t, err)
}

func TestEndpoints(t *testing.T) {
	require.Equal(t, "https://rpc.mainnet.near.org", MainNet.Endpoint())
	require.Equal(t, "https://rpc.testnet.near.org", TestNet.Endpoint())
	require.Equal(t, "http://localhost:8332", LocalNet.Endpoint())
	require.Equal(t, "", Network(42).Endpoint())
	require.Equal(t, "net 42", Network(42).String())
}

func TestYAML(t *testing.T) {
	var cfg struct {
		Network Network `yaml:"Network"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("Network: betanet"), &cfg))
	require.Equal(t, BetaNet, cfg.Network)

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "Network: betanet\n", string(data))

	require.Error(t, yaml.Unmarshal([]byte("Network: unknown"), &cfg))
}
