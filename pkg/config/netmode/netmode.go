package netmode

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MainNet is the NEAR main network.
	MainNet Network = iota
	// TestNet is the NEAR public testing network.
	TestNet
	// BetaNet is the NEAR network used for protocol previews.
	BetaNet
	// LocalNet is a node running on the local machine (nearup/localnet).
	LocalNet
)

// Network describes the network the client talks to.
type Network byte

var (
	names = map[Network]string{
		MainNet:  "mainnet",
		TestNet:  "testnet",
		BetaNet:  "betanet",
		LocalNet: "localnet",
	}
	endpoints = map[Network]string{
		MainNet:  "https://rpc.mainnet.near.org",
		TestNet:  "https://rpc.testnet.near.org",
		BetaNet:  "https://rpc.betanet.near.org",
		LocalNet: "http://localhost:8332",
	}
)

// String implements the stringer interface.
func (n Network) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return fmt.Sprintf("net %d", byte(n))
}

// Endpoint returns the default RPC endpoint of the network.
func (n Network) Endpoint() string {
	return endpoints[n]
}

// Parse converts the network name into Network.
func Parse(s string) (Network, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for n, name := range names {
		if name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown network %q", s)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (n Network) MarshalYAML() (any, error) {
	return n.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (n *Network) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	res, err := Parse(s)
	if err != nil {
		return err
	}
	*n = res
	return nil
}
