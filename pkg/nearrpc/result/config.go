package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// AccountInfo is a genesis validator.
	AccountInfo struct {
		AccountID util.AccountID `json:"account_id"`
		PublicKey util.PublicKey `json:"public_key"`
		Amount    util.U128      `json:"amount"`
	}

	// GenesisConfig is an "EXPERIMENTAL_genesis_config" result. Only the
	// commonly used parameters are decoded.
	GenesisConfig struct {
		ChainID                   string
		ProtocolVersion           uint32
		GenesisTime               string
		GenesisHeight             uint64
		EpochLength               uint64
		NumBlockProducerSeats     uint64
		TransactionValidityPeriod uint64
		MinGasPrice               util.U128
		MaxGasPrice               util.U128
		TotalSupply               util.U128
		Validators                []AccountInfo
	}

	genesisConfigAux struct {
		ChainID                   string        `json:"chain_id"`
		ProtocolVersion           uint32        `json:"protocol_version"`
		GenesisTime               string        `json:"genesis_time"`
		GenesisHeight             uint64        `json:"genesis_height"`
		EpochLength               uint64        `json:"epoch_length"`
		NumBlockProducerSeats     uint64        `json:"num_block_producer_seats"`
		TransactionValidityPeriod uint64        `json:"transaction_validity_period"`
		MinGasPrice               util.U128     `json:"min_gas_price,omitempty"`
		MaxGasPrice               util.U128     `json:"max_gas_price,omitempty"`
		TotalSupply               util.U128     `json:"total_supply,omitempty"`
		Validators                []AccountInfo `json:"validators"`
	}

	// ProtocolConfig is an "EXPERIMENTAL_protocol_config" result. The runtime
	// configuration changes a lot between protocol versions, so it's kept as
	// a generic value.
	ProtocolConfig struct {
		ChainID                   string
		ProtocolVersion           uint32
		GenesisTime               string
		GenesisHeight             uint64
		EpochLength               uint64
		NumBlockProducerSeats     uint64
		TransactionValidityPeriod uint64
		MinGasPrice               util.U128
		MaxGasPrice               util.U128
		RuntimeConfig             jsonval.Value
	}

	protocolConfigAux struct {
		ChainID                   string        `json:"chain_id"`
		ProtocolVersion           uint32        `json:"protocol_version"`
		GenesisTime               string        `json:"genesis_time"`
		GenesisHeight             uint64        `json:"genesis_height"`
		EpochLength               uint64        `json:"epoch_length"`
		NumBlockProducerSeats     uint64        `json:"num_block_producer_seats"`
		TransactionValidityPeriod uint64        `json:"transaction_validity_period"`
		MinGasPrice               util.U128     `json:"min_gas_price,omitempty"`
		MaxGasPrice               util.U128     `json:"max_gas_price,omitempty"`
		RuntimeConfig             jsonval.Value `json:"runtime_config"`
	}
)

// chainParams are fields shared by genesis and protocol configs.
type chainParams struct {
	ChainID                   *string
	ProtocolVersion           *uint32
	GenesisTime               *string
	GenesisHeight             *uint64
	EpochLength               *uint64
	NumBlockProducerSeats     *uint64
	TransactionValidityPeriod *uint64
	MinGasPrice               *util.U128
	MaxGasPrice               *util.U128
}

func (p chainParams) decode(f *alias.Fields) {
	f.Required(p.ChainID, alias.Of("chain_id")...)
	f.Required(p.ProtocolVersion, alias.Of("protocol_version")...)
	f.Optional(p.GenesisTime, alias.Of("genesis_time")...)
	f.Optional(p.GenesisHeight, alias.Of("genesis_height")...)
	f.Optional(p.EpochLength, alias.Of("epoch_length")...)
	f.Optional(p.NumBlockProducerSeats, alias.Of("num_block_producer_seats")...)
	f.Optional(p.TransactionValidityPeriod, alias.Of("transaction_validity_period")...)
	f.Optional(p.MinGasPrice, alias.Of("min_gas_price")...)
	f.Optional(p.MaxGasPrice, alias.Of("max_gas_price")...)
}

// MarshalJSON implements the json.Marshaler interface.
func (g GenesisConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(genesisConfigAux(g))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (g *GenesisConfig) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res GenesisConfig
	chainParams{
		ChainID:                   &res.ChainID,
		ProtocolVersion:           &res.ProtocolVersion,
		GenesisTime:               &res.GenesisTime,
		GenesisHeight:             &res.GenesisHeight,
		EpochLength:               &res.EpochLength,
		NumBlockProducerSeats:     &res.NumBlockProducerSeats,
		TransactionValidityPeriod: &res.TransactionValidityPeriod,
		MinGasPrice:               &res.MinGasPrice,
		MaxGasPrice:               &res.MaxGasPrice,
	}.decode(f)
	f.Optional(&res.TotalSupply, alias.Of("total_supply")...)
	f.Optional(&res.Validators, "validators")
	if err := f.Err(); err != nil {
		return err
	}
	*g = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (p ProtocolConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(protocolConfigAux(p))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *ProtocolConfig) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ProtocolConfig
	chainParams{
		ChainID:                   &res.ChainID,
		ProtocolVersion:           &res.ProtocolVersion,
		GenesisTime:               &res.GenesisTime,
		GenesisHeight:             &res.GenesisHeight,
		EpochLength:               &res.EpochLength,
		NumBlockProducerSeats:     &res.NumBlockProducerSeats,
		TransactionValidityPeriod: &res.TransactionValidityPeriod,
		MinGasPrice:               &res.MinGasPrice,
		MaxGasPrice:               &res.MaxGasPrice,
	}.decode(f)
	f.Optional(&res.RuntimeConfig, alias.Of("runtime_config")...)
	if err := f.Err(); err != nil {
		return err
	}
	*p = res
	return nil
}
