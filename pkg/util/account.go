package util

// AccountID is a NEAR account name like "alice.near" or an implicit
// 64-character hex account.
type AccountID string

// PublicKey is a key in its textual "ed25519:<base58>" form.
type PublicKey string

// BlockHeight is a block index.
type BlockHeight uint64

// ShardID identifies a shard.
type ShardID uint64

// Gas is an amount of gas units.
type Gas uint64
