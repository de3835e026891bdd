package nearrpc

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/near-go/pkg/util"
)

// Finality denotes which state of the chain the request is served against.
type Finality string

// Finality values accepted by nodes.
const (
	FinalityOptimistic Finality = "optimistic"
	FinalityNearFinal  Finality = "near-final"
	FinalityFinal      Finality = "final"
)

// Finality used by methods when BlockReference is not specified.
const (
	DefaultBlockFinality          = FinalityFinal
	DefaultQueryFinality          = FinalityOptimistic
	DefaultChangesFinality        = FinalityOptimistic
	DefaultProtocolConfigFinality = FinalityFinal
)

// SyncCheckpoint is a named block reference.
type SyncCheckpoint string

// Sync checkpoints.
const (
	GenesisCheckpoint           SyncCheckpoint = "genesis"
	EarliestAvailableCheckpoint SyncCheckpoint = "earliest_available"
)

// ParseFinality checks s to be a valid Finality.
func ParseFinality(s string) (Finality, error) {
	switch f := Finality(s); f {
	case FinalityOptimistic, FinalityNearFinal, FinalityFinal:
		return f, nil
	default:
		return "", fmt.Errorf("unknown finality %q", s)
	}
}

// BlockID is either a block height or a block hash.
type BlockID struct {
	height uint64
	hash   util.CryptoHash
	isHash bool
}

// BlockIDFromHeight returns a BlockID referring to the given height.
func BlockIDFromHeight(h uint64) BlockID {
	return BlockID{height: h}
}

// BlockIDFromHash returns a BlockID referring to the given hash.
func BlockIDFromHash(h util.CryptoHash) BlockID {
	return BlockID{hash: h, isHash: true}
}

// ParseBlockID parses a decimal height or a base58 hash.
func ParseBlockID(s string) (BlockID, error) {
	if h, err := strconv.ParseUint(s, 10, 64); err == nil {
		return BlockIDFromHeight(h), nil
	}
	hash, err := util.CryptoHashDecodeString(s)
	if err != nil {
		return BlockID{}, fmt.Errorf("not a block height or hash: %w", err)
	}
	return BlockIDFromHash(hash), nil
}

// Height returns the height and true if id refers to a height.
func (id BlockID) Height() (uint64, bool) {
	return id.height, !id.isHash
}

// Hash returns the hash and true if id refers to a hash.
func (id BlockID) Hash() (util.CryptoHash, bool) {
	return id.hash, id.isHash
}

// String implements the fmt.Stringer interface.
func (id BlockID) String() string {
	if id.isHash {
		return id.hash.String()
	}
	return strconv.FormatUint(id.height, 10)
}

// MarshalJSON implements the json.Marshaler interface.
func (id BlockID) MarshalJSON() ([]byte, error) {
	if id.isHash {
		return json.Marshal(id.hash)
	}
	return json.Marshal(id.height)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *BlockID) UnmarshalJSON(data []byte) error {
	var h uint64
	if err := json.Unmarshal(data, &h); err == nil {
		*id = BlockIDFromHeight(h)
		return nil
	}
	var hash util.CryptoHash
	if err := json.Unmarshal(data, &hash); err != nil {
		return fmt.Errorf("block id is neither a height nor a hash: %w", err)
	}
	*id = BlockIDFromHash(hash)
	return nil
}

type refKind byte

const (
	refNone refKind = iota
	refFinality
	refBlockID
	refCheckpoint
)

// BlockReference selects the block a request is served against: by
// finality, by block id or by sync checkpoint. The zero value means "method
// default finality".
type BlockReference struct {
	kind       refKind
	finality   Finality
	id         BlockID
	checkpoint SyncCheckpoint
}

// FinalityRef refers to the latest block with the given finality.
func FinalityRef(f Finality) BlockReference {
	return BlockReference{kind: refFinality, finality: f}
}

// HeightRef refers to the block at the given height.
func HeightRef(h uint64) BlockReference {
	return BlockIDRef(BlockIDFromHeight(h))
}

// HashRef refers to the block with the given hash.
func HashRef(h util.CryptoHash) BlockReference {
	return BlockIDRef(BlockIDFromHash(h))
}

// BlockIDRef refers to the block with the given id.
func BlockIDRef(id BlockID) BlockReference {
	return BlockReference{kind: refBlockID, id: id}
}

// SyncCheckpointRef refers to a sync checkpoint block.
func SyncCheckpointRef(c SyncCheckpoint) BlockReference {
	return BlockReference{kind: refCheckpoint, checkpoint: c}
}

// IsZero returns true for an unspecified reference.
func (r BlockReference) IsZero() bool {
	return r.kind == refNone
}

// Or returns r or a finality reference with def if r is not specified.
func (r BlockReference) Or(def Finality) BlockReference {
	if r.IsZero() {
		return FinalityRef(def)
	}
	return r
}

// BlockID returns the block id and true if r refers to a block id.
func (r BlockReference) BlockID() (BlockID, bool) {
	return r.id, r.kind == refBlockID
}

// Finality returns the finality and true if r refers to a finality.
func (r BlockReference) Finality() (Finality, bool) {
	return r.finality, r.kind == refFinality
}

// String implements the fmt.Stringer interface.
func (r BlockReference) String() string {
	switch r.kind {
	case refFinality:
		return string(r.finality)
	case refBlockID:
		return r.id.String()
	case refCheckpoint:
		return string(r.checkpoint)
	default:
		return "default"
	}
}

// put adds the reference fields to the params object.
func (r BlockReference) put(m map[string]any) {
	switch r.kind {
	case refFinality:
		m["finality"] = r.finality
	case refBlockID:
		m["block_id"] = r.id
	case refCheckpoint:
		m["sync_checkpoint"] = r.checkpoint
	}
}

// MarshalJSON implements the json.Marshaler interface, the reference is
// encoded as an object with one of finality, block_id or sync_checkpoint.
func (r BlockReference) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 1)
	r.put(m)
	return json.Marshal(m)
}

// BlockParams returns "block" method parameters.
func BlockParams(ref BlockReference) map[string]any {
	m := make(map[string]any, 1)
	ref.Or(DefaultBlockFinality).put(m)
	return m
}

// ChunkRequest selects a chunk either by its hash or by block and shard.
type ChunkRequest struct {
	chunk   *util.CryptoHash
	block   BlockReference
	shardID uint64
}

// ChunkByHash selects a chunk by its hash.
func ChunkByHash(h util.CryptoHash) ChunkRequest {
	return ChunkRequest{chunk: &h}
}

// ChunkInBlock selects a chunk of the given shard in the block referred to by
// id.
func ChunkInBlock(id BlockID, shard uint64) ChunkRequest {
	return ChunkRequest{block: BlockIDRef(id), shardID: shard}
}

// ErrNoChunk is returned for a ChunkRequest made without a constructor.
var ErrNoChunk = errors.New("chunk hash or block is required")

// Params returns "chunk" method parameters.
func (r ChunkRequest) Params() (map[string]any, error) {
	if r.chunk != nil {
		return map[string]any{"chunk_id": *r.chunk}, nil
	}
	if r.block.IsZero() {
		return nil, ErrNoChunk
	}
	m := map[string]any{"shard_id": r.shardID}
	r.block.put(m)
	return m, nil
}

// ValidatorsRequest selects the epoch for "validators".
type ValidatorsRequest struct {
	epoch *util.CryptoHash
	block BlockReference
}

// CurrentValidators requests validators of the current epoch.
func CurrentValidators() ValidatorsRequest {
	return ValidatorsRequest{}
}

// ValidatorsForEpoch requests validators of the given epoch.
func ValidatorsForEpoch(epochID util.CryptoHash) ValidatorsRequest {
	return ValidatorsRequest{epoch: &epochID}
}

// ValidatorsAtBlock requests validators of the epoch containing the block.
func ValidatorsAtBlock(id BlockID) ValidatorsRequest {
	return ValidatorsRequest{block: BlockIDRef(id)}
}

// Params returns "validators" method parameters. Current epoch is requested
// with [null], nodes don't accept [] or {} here.
func (r ValidatorsRequest) Params() any {
	switch {
	case r.epoch != nil:
		return map[string]any{"epoch_id": *r.epoch}
	case !r.block.IsZero():
		m := make(map[string]any, 1)
		r.block.put(m)
		return m
	default:
		return []any{nil}
	}
}

// QueryRequest is a "query" method request of some view type.
type QueryRequest struct {
	requestType string
	fields      map[string]any
}

func newQuery(typ string, account util.AccountID, fields map[string]any) QueryRequest {
	if fields == nil {
		fields = make(map[string]any, 2)
	}
	fields["account_id"] = account
	return QueryRequest{requestType: typ, fields: fields}
}

// ViewAccountQuery requests account details.
func ViewAccountQuery(account util.AccountID) QueryRequest {
	return newQuery(ViewAccountRequest, account, nil)
}

// ViewCodeQuery requests contract code.
func ViewCodeQuery(account util.AccountID) QueryRequest {
	return newQuery(ViewCodeRequest, account, nil)
}

// ViewStateQuery requests contract state with keys starting with prefix.
func ViewStateQuery(account util.AccountID, prefix []byte, includeProof bool) QueryRequest {
	fields := map[string]any{"prefix_base64": base64.StdEncoding.EncodeToString(prefix)}
	if includeProof {
		fields["include_proof"] = true
	}
	return newQuery(ViewStateRequest, account, fields)
}

// ViewAccessKeyQuery requests a single access key.
func ViewAccessKeyQuery(account util.AccountID, key util.PublicKey) QueryRequest {
	return newQuery(ViewAccessKeyRequest, account, map[string]any{"public_key": key})
}

// ViewAccessKeyListQuery requests all access keys of an account.
func ViewAccessKeyListQuery(account util.AccountID) QueryRequest {
	return newQuery(ViewAccessKeyListRequest, account, nil)
}

// CallFunctionQuery requests a view function call with the given raw
// arguments (usually JSON).
func CallFunctionQuery(account util.AccountID, method string, args []byte) QueryRequest {
	return newQuery(CallFunctionRequest, account, map[string]any{
		"method_name": method,
		"args_base64": base64.StdEncoding.EncodeToString(args),
	})
}

// RequestType returns the query request type.
func (q QueryRequest) RequestType() string {
	return q.requestType
}

// Params returns "query" method parameters.
func (q QueryRequest) Params(ref BlockReference) map[string]any {
	m := make(map[string]any, len(q.fields)+2)
	for k, v := range q.fields {
		m[k] = v
	}
	m["request_type"] = q.requestType
	ref.Or(DefaultQueryFinality).put(m)
	return m
}

// Changes types.
const (
	AccountChanges         = "account_changes"
	SingleAccessKeyChanges = "single_access_key_changes"
	AllAccessKeyChanges    = "all_access_key_changes"
	ContractCodeChanges    = "contract_code_changes"
	DataChanges            = "data_changes"
)

// AccessKeyRef names an access key of an account.
type AccessKeyRef struct {
	AccountID util.AccountID `json:"account_id"`
	PublicKey util.PublicKey `json:"public_key"`
}

// ChangesRequest is a "changes" method request.
type ChangesRequest struct {
	changesType string
	fields      map[string]any
}

// AccountChangesRequest requests changes of the given accounts.
func AccountChangesRequest(accounts ...util.AccountID) ChangesRequest {
	return ChangesRequest{changesType: AccountChanges, fields: map[string]any{"account_ids": accounts}}
}

// SingleAccessKeyChangesRequest requests changes of the given keys.
func SingleAccessKeyChangesRequest(keys ...AccessKeyRef) ChangesRequest {
	return ChangesRequest{changesType: SingleAccessKeyChanges, fields: map[string]any{"keys": keys}}
}

// AllAccessKeyChangesRequest requests changes of all keys of the accounts.
func AllAccessKeyChangesRequest(accounts ...util.AccountID) ChangesRequest {
	return ChangesRequest{changesType: AllAccessKeyChanges, fields: map[string]any{"account_ids": accounts}}
}

// ContractCodeChangesRequest requests code changes of the accounts.
func ContractCodeChangesRequest(accounts ...util.AccountID) ChangesRequest {
	return ChangesRequest{changesType: ContractCodeChanges, fields: map[string]any{"account_ids": accounts}}
}

// DataChangesRequest requests contract data changes with keys starting
// with prefix.
func DataChangesRequest(prefix []byte, accounts ...util.AccountID) ChangesRequest {
	return ChangesRequest{changesType: DataChanges, fields: map[string]any{
		"account_ids":       accounts,
		"key_prefix_base64": base64.StdEncoding.EncodeToString(prefix),
	}}
}

// Params returns "changes" method parameters.
func (c ChangesRequest) Params(ref BlockReference) map[string]any {
	m := make(map[string]any, len(c.fields)+2)
	for k, v := range c.fields {
		m[k] = v
	}
	m["changes_type"] = c.changesType
	ref.Or(DefaultChangesFinality).put(m)
	return m
}

// ChangesInBlockParams returns "EXPERIMENTAL_changes_in_block" parameters.
func ChangesInBlockParams(ref BlockReference) map[string]any {
	m := make(map[string]any, 1)
	ref.Or(DefaultBlockFinality).put(m)
	return m
}

// ValidatorsOrderedParams returns "EXPERIMENTAL_validators_ordered"
// parameters, [null] for the latest block.
func ValidatorsOrderedParams(id *BlockID) []any {
	if id == nil {
		return []any{nil}
	}
	return []any{*id}
}

// WaitUntil is the execution stage a transaction call waits for.
type WaitUntil string

// WaitUntil values.
const (
	WaitNone               WaitUntil = "NONE"
	WaitIncluded           WaitUntil = "INCLUDED"
	WaitExecutedOptimistic WaitUntil = "EXECUTED_OPTIMISTIC"
	WaitIncludedFinal      WaitUntil = "INCLUDED_FINAL"
	WaitExecuted           WaitUntil = "EXECUTED"
	WaitFinal              WaitUntil = "FINAL"
)

// ParseWaitUntil checks s to be a valid WaitUntil.
func ParseWaitUntil(s string) (WaitUntil, error) {
	switch w := WaitUntil(s); w {
	case WaitNone, WaitIncluded, WaitExecutedOptimistic, WaitIncludedFinal, WaitExecuted, WaitFinal:
		return w, nil
	default:
		return "", fmt.Errorf("unknown wait_until value %q", s)
	}
}

// SendTxParams returns "send_tx" parameters for a signed borsh-serialized
// transaction. Empty wait omits the field, nodes then use
// EXECUTED_OPTIMISTIC.
func SendTxParams(signedTx []byte, wait WaitUntil) map[string]any {
	m := map[string]any{"signed_tx_base64": base64.StdEncoding.EncodeToString(signedTx)}
	if wait != "" {
		m["wait_until"] = wait
	}
	return m
}

// BroadcastParams returns positional parameters of the legacy
// broadcast_tx_async and broadcast_tx_commit methods.
func BroadcastParams(signedTx []byte) []any {
	return []any{base64.StdEncoding.EncodeToString(signedTx)}
}

// TxStatusParams returns "tx" and "EXPERIMENTAL_tx_status" parameters.
func TxStatusParams(hash util.CryptoHash, sender util.AccountID, wait WaitUntil) map[string]any {
	m := map[string]any{
		"tx_hash":           hash,
		"sender_account_id": sender,
	}
	if wait != "" {
		m["wait_until"] = wait
	}
	return m
}

// ReceiptParams returns "EXPERIMENTAL_receipt" parameters.
func ReceiptParams(id util.CryptoHash) map[string]any {
	return map[string]any{"receipt_id": id}
}

// GasPriceParams returns "gas_price" parameters: [null] for the latest block.
func GasPriceParams(id *BlockID) []any {
	if id == nil {
		return []any{nil}
	}
	return []any{*id}
}

// ProtocolConfigParams returns "EXPERIMENTAL_protocol_config" parameters.
func ProtocolConfigParams(ref BlockReference) map[string]any {
	m := make(map[string]any, 1)
	ref.Or(DefaultProtocolConfigFinality).put(m)
	return m
}

// ErrNoLightClientHead is returned for proof requests without a head block.
var ErrNoLightClientHead = errors.New("light client head is required")

// LightClientProofRequest requests an execution proof of a transaction or
// a receipt.
type LightClientProofRequest struct {
	isReceipt bool
	id        util.CryptoHash
	account   util.AccountID
	head      util.CryptoHash
}

// TransactionProof requests a proof of the transaction sent by sender,
// relative to the light client head block.
func TransactionProof(tx util.CryptoHash, sender util.AccountID, head util.CryptoHash) LightClientProofRequest {
	return LightClientProofRequest{id: tx, account: sender, head: head}
}

// ReceiptProof requests a proof of the receipt received by receiver,
// relative to the light client head block.
func ReceiptProof(receipt util.CryptoHash, receiver util.AccountID, head util.CryptoHash) LightClientProofRequest {
	return LightClientProofRequest{isReceipt: true, id: receipt, account: receiver, head: head}
}

// Params returns "EXPERIMENTAL_light_client_proof" parameters.
func (r LightClientProofRequest) Params() (map[string]any, error) {
	if r.head.IsZero() {
		return nil, ErrNoLightClientHead
	}
	if r.isReceipt {
		return map[string]any{
			"type":              "receipt",
			"receipt_id":        r.id,
			"receiver_id":       r.account,
			"light_client_head": r.head,
		}, nil
	}
	return map[string]any{
		"type":              "transaction",
		"transaction_hash":  r.id,
		"sender_id":         r.account,
		"light_client_head": r.head,
	}, nil
}

// NextLightClientBlockParams returns "next_light_client_block" parameters:
// [] without a known hash, [hash] otherwise.
func NextLightClientBlockParams(lastKnown *util.CryptoHash) []any {
	if lastKnown == nil {
		return []any{}
	}
	return []any{*lastKnown}
}
