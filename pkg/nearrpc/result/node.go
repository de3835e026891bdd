package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// NodeVersion is the version of the node software.
	NodeVersion struct {
		Version      string `json:"version"`
		Build        string `json:"build"`
		RustcVersion string `json:"rustc_version,omitempty"`
	}

	// ValidatorStatus is a validator as reported in the node status.
	ValidatorStatus struct {
		AccountID util.AccountID `json:"account_id"`
		IsSlashed bool           `json:"is_slashed"`
	}

	// SyncInfo describes the synchronization state of the node.
	SyncInfo struct {
		LatestBlockHash     util.CryptoHash
		LatestBlockHeight   uint64
		LatestStateRoot     util.CryptoHash
		LatestBlockTime     string
		Syncing             bool
		EarliestBlockHash   util.CryptoHash
		EarliestBlockHeight uint64
		EarliestBlockTime   string
		EpochID             util.CryptoHash
		EpochStartHeight    uint64
	}

	syncInfoAux struct {
		LatestBlockHash     util.CryptoHash `json:"latest_block_hash"`
		LatestBlockHeight   uint64          `json:"latest_block_height"`
		LatestStateRoot     util.CryptoHash `json:"latest_state_root"`
		LatestBlockTime     string          `json:"latest_block_time"`
		Syncing             bool            `json:"syncing"`
		EarliestBlockHash   util.CryptoHash `json:"earliest_block_hash"`
		EarliestBlockHeight uint64          `json:"earliest_block_height"`
		EarliestBlockTime   string          `json:"earliest_block_time"`
		EpochID             util.CryptoHash `json:"epoch_id"`
		EpochStartHeight    uint64          `json:"epoch_start_height"`
	}

	// NodeStatus is a "status" method result.
	NodeStatus struct {
		Version               NodeVersion
		ChainID               string
		ProtocolVersion       uint32
		LatestProtocolVersion uint32
		RPCAddr               string
		Validators            []ValidatorStatus
		SyncInfo              SyncInfo
		ValidatorAccountID    util.AccountID
		ValidatorPublicKey    util.PublicKey
		NodePublicKey         util.PublicKey
		UptimeSec             int64
		GenesisHash           util.CryptoHash
	}

	nodeStatusAux struct {
		Version               NodeVersion       `json:"version"`
		ChainID               string            `json:"chain_id"`
		ProtocolVersion       uint32            `json:"protocol_version"`
		LatestProtocolVersion uint32            `json:"latest_protocol_version"`
		RPCAddr               string            `json:"rpc_addr,omitempty"`
		Validators            []ValidatorStatus `json:"validators"`
		SyncInfo              SyncInfo          `json:"sync_info"`
		ValidatorAccountID    util.AccountID    `json:"validator_account_id,omitempty"`
		ValidatorPublicKey    util.PublicKey    `json:"validator_public_key,omitempty"`
		NodePublicKey         util.PublicKey    `json:"node_public_key"`
		UptimeSec             int64             `json:"uptime_sec"`
		GenesisHash           util.CryptoHash   `json:"genesis_hash"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (s SyncInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(syncInfoAux(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *SyncInfo) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res SyncInfo
	f.Required(&res.LatestBlockHash, alias.Of("latest_block_hash")...)
	f.Required(&res.LatestBlockHeight, alias.Of("latest_block_height")...)
	f.Optional(&res.LatestStateRoot, alias.Of("latest_state_root")...)
	f.Optional(&res.LatestBlockTime, alias.Of("latest_block_time")...)
	f.Optional(&res.Syncing, "syncing")
	f.Optional(&res.EarliestBlockHash, alias.Of("earliest_block_hash")...)
	f.Optional(&res.EarliestBlockHeight, alias.Of("earliest_block_height")...)
	f.Optional(&res.EarliestBlockTime, alias.Of("earliest_block_time")...)
	f.Optional(&res.EpochID, alias.Of("epoch_id")...)
	f.Optional(&res.EpochStartHeight, alias.Of("epoch_start_height")...)
	if err := f.Err(); err != nil {
		return err
	}
	*s = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s NodeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeStatusAux(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *NodeStatus) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res NodeStatus
	f.Optional(&res.Version, "version")
	f.Required(&res.ChainID, alias.Of("chain_id")...)
	f.Optional(&res.ProtocolVersion, alias.Of("protocol_version")...)
	f.Optional(&res.LatestProtocolVersion, alias.Of("latest_protocol_version")...)
	f.Optional(&res.RPCAddr, alias.Of("rpc_addr")...)
	f.Optional(&res.Validators, "validators")
	f.Required(&res.SyncInfo, alias.Of("sync_info")...)
	f.Optional(&res.ValidatorAccountID, alias.Of("validator_account_id")...)
	f.Optional(&res.ValidatorPublicKey, alias.Of("validator_public_key")...)
	f.Optional(&res.NodePublicKey, alias.Of("node_public_key")...)
	f.Optional(&res.UptimeSec, alias.Of("uptime_sec")...)
	f.Optional(&res.GenesisHash, alias.Of("genesis_hash")...)
	if err := f.Err(); err != nil {
		return err
	}
	*s = res
	return nil
}

type (
	// PeerInfo is a connected peer.
	PeerInfo struct {
		ID        string          `json:"id"`
		Addr      *string         `json:"addr"`
		AccountID *util.AccountID `json:"account_id"`
	}

	// KnownProducer is a block producer known to the node.
	KnownProducer struct {
		AccountID util.AccountID `json:"account_id"`
		Addr      *string        `json:"addr"`
		PeerID    string         `json:"peer_id"`
	}

	// NetworkInfo is a "network_info" method result.
	NetworkInfo struct {
		ActivePeers         []PeerInfo      `json:"active_peers"`
		NumActivePeers      uint64          `json:"num_active_peers"`
		PeerMaxCount        uint64          `json:"peer_max_count"`
		SentBytesPerSec     uint64          `json:"sent_bytes_per_sec"`
		ReceivedBytesPerSec uint64          `json:"received_bytes_per_sec"`
		KnownProducers      []KnownProducer `json:"known_producers"`
	}

	// GasPrice is a "gas_price" method result.
	GasPrice struct {
		GasPrice util.U128
		BlockInfo
	}

	gasPriceAux struct {
		GasPrice util.U128 `json:"gas_price"`
		BlockInfo
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (g GasPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(gasPriceAux(g))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (g *GasPrice) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res GasPrice
	f.Required(&res.GasPrice, alias.Of("gas_price")...)
	res.BlockInfo.decode(f)
	if err := f.Err(); err != nil {
		return err
	}
	*g = res
	return nil
}
