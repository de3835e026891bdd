package result

import (
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/util"
)

type (
	// BlockHeader is a header of a block as returned by the "block" method.
	BlockHeader struct {
		Height                uint64
		EpochID               util.CryptoHash
		NextEpochID           util.CryptoHash
		Hash                  util.CryptoHash
		PrevHash              util.CryptoHash
		PrevStateRoot         util.CryptoHash
		ChunkReceiptsRoot     util.CryptoHash
		ChunkHeadersRoot      util.CryptoHash
		ChunkTxRoot           util.CryptoHash
		OutcomeRoot           util.CryptoHash
		ChunksIncluded        uint64
		ChallengesRoot        util.CryptoHash
		Timestamp             uint64
		TimestampNanosec      util.U128
		RandomValue           util.CryptoHash
		GasPrice              util.U128
		TotalSupply           util.U128
		BlockMerkleRoot       util.CryptoHash
		NextBPHash            util.CryptoHash
		LatestProtocolVersion uint32
		Approvals             []*string
		Signature             string
	}

	blockHeaderAux struct {
		Height                uint64          `json:"height"`
		EpochID               util.CryptoHash `json:"epoch_id"`
		NextEpochID           util.CryptoHash `json:"next_epoch_id"`
		Hash                  util.CryptoHash `json:"hash"`
		PrevHash              util.CryptoHash `json:"prev_hash"`
		PrevStateRoot         util.CryptoHash `json:"prev_state_root"`
		ChunkReceiptsRoot     util.CryptoHash `json:"chunk_receipts_root"`
		ChunkHeadersRoot      util.CryptoHash `json:"chunk_headers_root"`
		ChunkTxRoot           util.CryptoHash `json:"chunk_tx_root"`
		OutcomeRoot           util.CryptoHash `json:"outcome_root"`
		ChunksIncluded        uint64          `json:"chunks_included"`
		ChallengesRoot        util.CryptoHash `json:"challenges_root"`
		Timestamp             uint64          `json:"timestamp"`
		TimestampNanosec      util.U128       `json:"timestamp_nanosec,omitempty"`
		RandomValue           util.CryptoHash `json:"random_value"`
		GasPrice              util.U128       `json:"gas_price,omitempty"`
		TotalSupply           util.U128       `json:"total_supply,omitempty"`
		BlockMerkleRoot       util.CryptoHash `json:"block_merkle_root"`
		NextBPHash            util.CryptoHash `json:"next_bp_hash"`
		LatestProtocolVersion uint32          `json:"latest_protocol_version"`
		Approvals             []*string       `json:"approvals"`
		Signature             string          `json:"signature"`
	}

	// ChunkHeader is a header of a chunk. Nodes omit different parts of it
	// depending on the version, so every field is optional.
	ChunkHeader struct {
		ChunkHash            util.CryptoHash
		PrevBlockHash        util.CryptoHash
		OutcomeRoot          util.CryptoHash
		PrevStateRoot        util.CryptoHash
		EncodedMerkleRoot    util.CryptoHash
		EncodedLength        uint64
		HeightCreated        uint64
		HeightIncluded       uint64
		ShardID              uint64
		GasUsed              uint64
		GasLimit             uint64
		BalanceBurnt         util.U128
		OutgoingReceiptsRoot util.CryptoHash
		TxRoot               util.CryptoHash
		Signature            string
	}

	chunkHeaderAux struct {
		ChunkHash            util.CryptoHash `json:"chunk_hash"`
		PrevBlockHash        util.CryptoHash `json:"prev_block_hash"`
		OutcomeRoot          util.CryptoHash `json:"outcome_root"`
		PrevStateRoot        util.CryptoHash `json:"prev_state_root"`
		EncodedMerkleRoot    util.CryptoHash `json:"encoded_merkle_root"`
		EncodedLength        uint64          `json:"encoded_length"`
		HeightCreated        uint64          `json:"height_created"`
		HeightIncluded       uint64          `json:"height_included"`
		ShardID              uint64          `json:"shard_id"`
		GasUsed              uint64          `json:"gas_used"`
		GasLimit             uint64          `json:"gas_limit"`
		BalanceBurnt         util.U128       `json:"balance_burnt,omitempty"`
		OutgoingReceiptsRoot util.CryptoHash `json:"outgoing_receipts_root"`
		TxRoot               util.CryptoHash `json:"tx_root"`
		Signature            string          `json:"signature,omitempty"`
	}

	// Block is a "block" method result.
	Block struct {
		Author util.AccountID
		Header BlockHeader
		Chunks []ChunkHeader
	}

	blockAux struct {
		Author util.AccountID `json:"author"`
		Header BlockHeader    `json:"header"`
		Chunks []ChunkHeader  `json:"chunks"`
	}

	// SignedTransaction is a transaction as returned in chunks and
	// execution outcomes. Actions are kept as generic JSON values since
	// their shape depends on the action kind.
	SignedTransaction struct {
		SignerID    util.AccountID  `json:"signer_id"`
		PublicKey   util.PublicKey  `json:"public_key"`
		Nonce       uint64          `json:"nonce"`
		ReceiverID  util.AccountID  `json:"receiver_id"`
		Actions     []jsonval.Value `json:"actions"`
		PriorityFee uint64          `json:"priority_fee,omitempty"`
		Signature   string          `json:"signature"`
		Hash        util.CryptoHash `json:"hash"`
	}

	// Chunk is a "chunk" method result.
	Chunk struct {
		Author       util.AccountID
		Header       ChunkHeader
		Transactions []SignedTransaction
		Receipts     []Receipt
	}

	chunkAux struct {
		Author       util.AccountID      `json:"author"`
		Header       ChunkHeader         `json:"header"`
		Transactions []SignedTransaction `json:"transactions"`
		Receipts     []Receipt           `json:"receipts"`
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (h BlockHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockHeaderAux(h))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *BlockHeader) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res BlockHeader
	f.Required(&res.Height, "height")
	f.Required(&res.EpochID, alias.Of("epoch_id")...)
	f.Optional(&res.NextEpochID, alias.Of("next_epoch_id")...)
	f.Optional(&res.Hash, "hash")
	f.Required(&res.PrevHash, alias.Of("prev_hash")...)
	f.Optional(&res.PrevStateRoot, alias.Of("prev_state_root")...)
	f.Optional(&res.ChunkReceiptsRoot, alias.Of("chunk_receipts_root")...)
	f.Optional(&res.ChunkHeadersRoot, alias.Of("chunk_headers_root")...)
	f.Optional(&res.ChunkTxRoot, alias.Of("chunk_tx_root")...)
	f.Optional(&res.OutcomeRoot, alias.Of("outcome_root")...)
	f.Optional(&res.ChunksIncluded, alias.Of("chunks_included")...)
	f.Optional(&res.ChallengesRoot, alias.Of("challenges_root")...)
	f.Required(&res.Timestamp, "timestamp")
	f.Optional(&res.TimestampNanosec, alias.Of("timestamp_nanosec")...)
	f.Optional(&res.RandomValue, alias.Of("random_value")...)
	f.Optional(&res.GasPrice, alias.Of("gas_price")...)
	f.Optional(&res.TotalSupply, alias.Of("total_supply")...)
	f.Optional(&res.BlockMerkleRoot, alias.Of("block_merkle_root")...)
	f.Optional(&res.NextBPHash, alias.Of("next_bp_hash")...)
	f.Optional(&res.LatestProtocolVersion, alias.Of("latest_protocol_version")...)
	f.Optional(&res.Approvals, "approvals")
	f.Optional(&res.Signature, "signature")
	if err := f.Err(); err != nil {
		return err
	}
	*h = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (h ChunkHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(chunkHeaderAux(h))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *ChunkHeader) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res ChunkHeader
	f.Optional(&res.ChunkHash, alias.Of("chunk_hash")...)
	f.Optional(&res.PrevBlockHash, alias.Of("prev_block_hash")...)
	f.Optional(&res.OutcomeRoot, alias.Of("outcome_root")...)
	f.Optional(&res.PrevStateRoot, alias.Of("prev_state_root")...)
	f.Optional(&res.EncodedMerkleRoot, alias.Of("encoded_merkle_root")...)
	f.Optional(&res.EncodedLength, alias.Of("encoded_length")...)
	f.Optional(&res.HeightCreated, alias.Of("height_created")...)
	f.Optional(&res.HeightIncluded, alias.Of("height_included")...)
	f.Optional(&res.ShardID, alias.Of("shard_id")...)
	f.Optional(&res.GasUsed, alias.Of("gas_used")...)
	f.Optional(&res.GasLimit, alias.Of("gas_limit")...)
	f.Optional(&res.BalanceBurnt, alias.Of("balance_burnt")...)
	f.Optional(&res.OutgoingReceiptsRoot, alias.Of("outgoing_receipts_root")...)
	f.Optional(&res.TxRoot, alias.Of("tx_root")...)
	f.Optional(&res.Signature, "signature")
	if err := f.Err(); err != nil {
		return err
	}
	*h = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockAux(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Block) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res Block
	f.Optional(&res.Author, "author")
	f.Required(&res.Header, "header")
	f.Optional(&res.Chunks, "chunks")
	if err := f.Err(); err != nil {
		return err
	}
	*b = res
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (c Chunk) MarshalJSON() ([]byte, error) {
	return json.Marshal(chunkAux(c))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Chunk) UnmarshalJSON(data []byte) error {
	f, err := alias.NewFields(data)
	if err != nil {
		return err
	}
	var res Chunk
	f.Optional(&res.Author, "author")
	f.Required(&res.Header, "header")
	f.Optional(&res.Transactions, "transactions")
	f.Optional(&res.Receipts, "receipts")
	if err := f.Err(); err != nil {
		return err
	}
	*c = res
	return nil
}
