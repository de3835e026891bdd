package rpcclient

import (
	"context"
	"encoding/json"

	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/nearrpc/result"
	"github.com/nspcc-dev/near-go/pkg/util"
)

// Status returns the node status.
func (c *Client) Status(ctx context.Context) (*result.NodeStatus, error) {
	var resp = new(result.NodeStatus)
	if err := c.performRequest(ctx, nearrpc.StatusMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Health returns nil if the node is healthy. Unhealthy nodes answer with an
// error.
func (c *Client) Health(ctx context.Context) error {
	var resp jsonval.Value
	return c.performRequest(ctx, nearrpc.HealthMethod, nil, &resp)
}

// NetworkInfo returns the peers and block producers known to the node.
func (c *Client) NetworkInfo(ctx context.Context) (*result.NetworkInfo, error) {
	var resp = new(result.NetworkInfo)
	if err := c.performRequest(ctx, nearrpc.NetworkInfoMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GasPrice returns the gas price at the given block, nil means the latest
// one.
func (c *Client) GasPrice(ctx context.Context, id *nearrpc.BlockID) (*result.GasPrice, error) {
	var (
		params = nearrpc.GasPriceParams(id)
		resp   = new(result.GasPrice)
	)
	if err := c.performRequest(ctx, nearrpc.GasPriceMethod, params, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Block returns the referenced block, zero reference means the latest final
// block.
func (c *Client) Block(ctx context.Context, ref nearrpc.BlockReference) (*result.Block, error) {
	var (
		params = nearrpc.BlockParams(ref)
		resp   = new(result.Block)
	)
	if err := c.performRequest(ctx, nearrpc.BlockMethod, params, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Chunk returns the requested chunk.
func (c *Client) Chunk(ctx context.Context, req nearrpc.ChunkRequest) (*result.Chunk, error) {
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	var resp = new(result.Chunk)
	if err := c.performRequest(ctx, nearrpc.ChunkMethod, params, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Validators returns validators of the requested epoch.
func (c *Client) Validators(ctx context.Context, req nearrpc.ValidatorsRequest) (*result.EpochValidatorInfo, error) {
	var resp = new(result.EpochValidatorInfo)
	if err := c.performRequest(ctx, nearrpc.ValidatorsMethod, req.Params(), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ValidatorsOrdered returns the ordered validators list at the given block,
// nil means the latest one.
func (c *Client) ValidatorsOrdered(ctx context.Context, id *nearrpc.BlockID) ([]result.ValidatorStake, error) {
	var (
		params = nearrpc.ValidatorsOrderedParams(id)
		resp   []result.ValidatorStake
	)
	if err := c.performRequest(ctx, nearrpc.ValidatorsOrderedMethod, params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) query(ctx context.Context, q nearrpc.QueryRequest, ref nearrpc.BlockReference, v any) error {
	return c.performRequest(ctx, nearrpc.QueryMethod, q.Params(ref), v)
}

// ViewAccount returns the account state.
func (c *Client) ViewAccount(ctx context.Context, account util.AccountID, ref nearrpc.BlockReference) (*result.Account, error) {
	var resp = new(result.Account)
	if err := c.query(ctx, nearrpc.ViewAccountQuery(account), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ViewCode returns the contract deployed to the account.
func (c *Client) ViewCode(ctx context.Context, account util.AccountID, ref nearrpc.BlockReference) (*result.ContractCode, error) {
	var resp = new(result.ContractCode)
	if err := c.query(ctx, nearrpc.ViewCodeQuery(account), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ViewState returns the contract storage items with keys starting with
// prefix, an empty prefix returns the whole storage.
func (c *Client) ViewState(ctx context.Context, account util.AccountID, prefix []byte, includeProof bool, ref nearrpc.BlockReference) (*result.ViewStateResult, error) {
	var resp = new(result.ViewStateResult)
	if err := c.query(ctx, nearrpc.ViewStateQuery(account, prefix, includeProof), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ViewAccessKey returns a single access key of the account.
func (c *Client) ViewAccessKey(ctx context.Context, account util.AccountID, key util.PublicKey, ref nearrpc.BlockReference) (*result.AccessKey, error) {
	var resp = new(result.AccessKey)
	if err := c.query(ctx, nearrpc.ViewAccessKeyQuery(account, key), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ViewAccessKeyList returns all access keys of the account.
func (c *Client) ViewAccessKeyList(ctx context.Context, account util.AccountID, ref nearrpc.BlockReference) (*result.AccessKeyList, error) {
	var resp = new(result.AccessKeyList)
	if err := c.query(ctx, nearrpc.ViewAccessKeyListQuery(account), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CallFunction invokes a view method of the contract with the given
// arguments (usually JSON). Nothing is stored on chain.
func (c *Client) CallFunction(ctx context.Context, account util.AccountID, method string, args []byte, ref nearrpc.BlockReference) (*result.CallFunctionResult, error) {
	var resp = new(result.CallFunctionResult)
	if err := c.query(ctx, nearrpc.CallFunctionQuery(account, method, args), ref, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Changes returns state changes of the requested kind in the referenced
// block.
func (c *Client) Changes(ctx context.Context, req nearrpc.ChangesRequest, ref nearrpc.BlockReference) (*result.StateChanges, error) {
	var resp = new(result.StateChanges)
	if err := c.performRequest(ctx, nearrpc.ChangesMethod, req.Params(ref), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExperimentalChanges is the same as Changes, but it uses the older
// EXPERIMENTAL_changes method name some nodes still require.
func (c *Client) ExperimentalChanges(ctx context.Context, req nearrpc.ChangesRequest, ref nearrpc.BlockReference) (*result.StateChanges, error) {
	var resp = new(result.StateChanges)
	if err := c.performRequest(ctx, nearrpc.ExperimentalChangesMethod, req.Params(ref), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ChangesInBlock returns accounts changed in the referenced block along with
// the kind of change.
func (c *Client) ChangesInBlock(ctx context.Context, ref nearrpc.BlockReference) (*result.StateChangesInBlock, error) {
	var resp = new(result.StateChangesInBlock)
	if err := c.performRequest(ctx, nearrpc.ChangesInBlockMethod, nearrpc.ChangesInBlockParams(ref), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendTransaction sends a signed borsh-serialized transaction and waits for
// it to reach the given stage. The outcome parts not reached yet are nil.
func (c *Client) SendTransaction(ctx context.Context, signedTx []byte, wait nearrpc.WaitUntil) (*result.FinalExecutionOutcome, error) {
	var resp = new(result.FinalExecutionOutcome)
	if err := c.performRequest(ctx, nearrpc.SendTxMethod, nearrpc.SendTxParams(signedTx, wait), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BroadcastTxAsync sends a signed transaction without waiting for anything
// and returns the transaction hash exactly as the node reported it.
func (c *Client) BroadcastTxAsync(ctx context.Context, signedTx []byte) (string, error) {
	var resp string
	if err := c.performRequest(ctx, nearrpc.BroadcastTxAsyncMethod, nearrpc.BroadcastParams(signedTx), &resp); err != nil {
		return "", err
	}
	return resp, nil
}

// BroadcastTxCommit sends a signed transaction and waits for its execution.
func (c *Client) BroadcastTxCommit(ctx context.Context, signedTx []byte) (*result.FinalExecutionOutcome, error) {
	var resp = new(result.FinalExecutionOutcome)
	if err := c.performRequest(ctx, nearrpc.BroadcastTxCommitMethod, nearrpc.BroadcastParams(signedTx), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TxStatus returns the status of the transaction sent by sender.
func (c *Client) TxStatus(ctx context.Context, hash util.CryptoHash, sender util.AccountID, wait nearrpc.WaitUntil) (*result.FinalExecutionOutcome, error) {
	var resp = new(result.FinalExecutionOutcome)
	if err := c.performRequest(ctx, nearrpc.TxMethod, nearrpc.TxStatusParams(hash, sender, wait), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExperimentalTxStatus is the same as TxStatus, but the outcome also has
// all the receipts.
func (c *Client) ExperimentalTxStatus(ctx context.Context, hash util.CryptoHash, sender util.AccountID, wait nearrpc.WaitUntil) (*result.FinalExecutionOutcome, error) {
	var resp = new(result.FinalExecutionOutcome)
	if err := c.performRequest(ctx, nearrpc.ExperimentalTxStatusMethod, nearrpc.TxStatusParams(hash, sender, wait), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Receipt returns the receipt by its id.
func (c *Client) Receipt(ctx context.Context, id util.CryptoHash) (*result.Receipt, error) {
	var resp = new(result.Receipt)
	if err := c.performRequest(ctx, nearrpc.ReceiptMethod, nearrpc.ReceiptParams(id), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GenesisConfig returns the genesis configuration of the network.
func (c *Client) GenesisConfig(ctx context.Context) (*result.GenesisConfig, error) {
	var resp = new(result.GenesisConfig)
	if err := c.performRequest(ctx, nearrpc.GenesisConfigMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ProtocolConfig returns the protocol configuration active at the referenced
// block, zero reference means the latest final block.
func (c *Client) ProtocolConfig(ctx context.Context, ref nearrpc.BlockReference) (*result.ProtocolConfig, error) {
	var resp = new(result.ProtocolConfig)
	if err := c.performRequest(ctx, nearrpc.ProtocolConfigMethod, nearrpc.ProtocolConfigParams(ref), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// LightClientProof returns an execution proof of a transaction or a receipt.
func (c *Client) LightClientProof(ctx context.Context, req nearrpc.LightClientProofRequest) (*result.LightClientExecutionProof, error) {
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	var resp = new(result.LightClientExecutionProof)
	if err := c.performRequest(ctx, nearrpc.LightClientProofMethod, params, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// NextLightClientBlock returns the light client block following the last
// known one (nil for the current head). It returns nil block if the node has
// nothing newer.
func (c *Client) NextLightClientBlock(ctx context.Context, lastKnown *util.CryptoHash) (*result.LightClientBlock, error) {
	var raw json.RawMessage
	if err := c.performRequest(ctx, nearrpc.NextLightClientBlockMethod, nearrpc.NextLightClientBlockParams(lastKnown), &raw); err != nil {
		return nil, err
	}
	v, err := jsonval.Decode(raw)
	if err != nil {
		return nil, &nearrpc.DecodeError{Field: "result", Reason: err.Error(), Err: err}
	}
	if v.IsNull() || (v.Kind() == jsonval.ObjectKind && v.Len() == 0) {
		return nil, nil
	}
	var resp = new(result.LightClientBlock)
	if err := nearrpc.DecodeResult(raw, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
