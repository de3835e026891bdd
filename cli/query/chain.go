package query

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nspcc-dev/near-go/cli/flags"
	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/nearrpc/result"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/nspcc-dev/near-go/pkg/util"
	"github.com/urfave/cli"
)

func queryBlock(ctx *cli.Context) error {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		b, err := c.Block(gctx, ref)
		if err != nil {
			return err
		}
		if ctx.Bool("json") {
			return printJSON(ctx, b)
		}
		t := newTable()
		t.add("Height", "%d", b.Header.Height)
		t.add("Hash", "%s", b.Header.Hash)
		t.add("PrevHash", "%s", b.Header.PrevHash)
		t.add("Author", "%s", b.Author)
		t.add("EpochID", "%s", b.Header.EpochID)
		t.add("Timestamp", "%d", b.Header.Timestamp)
		t.add("GasPrice", "%s", b.Header.GasPrice)
		t.add("Chunks", "%d", len(b.Chunks))
		t.print(ctx)
		return nil
	})
}

func queryChunk(ctx *cli.Context) error {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var req nearrpc.ChunkRequest
	switch {
	case ctx.Args().Present() && !ref.IsZero():
		return cli.NewExitError(errors.New("either chunk hash or --block should be given, not both"), 1)
	case ctx.Args().Present():
		h, err := util.CryptoHashDecodeString(ctx.Args().First())
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid chunk hash: %w", err), 1)
		}
		req = nearrpc.ChunkByHash(h)
	default:
		id, ok := ref.BlockID()
		if !ok {
			return cli.NewExitError(errors.New("chunk hash or --block with block height or hash is required"), 1)
		}
		req = nearrpc.ChunkInBlock(id, ctx.Uint64("shard"))
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		ch, err := c.Chunk(gctx, req)
		if err != nil {
			return err
		}
		return printJSON(ctx, ch)
	})
}

func parseAccounts(args []string) ([]util.AccountID, error) {
	res := make([]util.AccountID, 0, len(args))
	for _, a := range args {
		id, err := flags.ParseAccountID(a)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func queryChanges(ctx *cli.Context) error {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args := ctx.Args()
	if len(args) == 0 {
		return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
			ch, err := c.ChangesInBlock(gctx, ref)
			if err != nil {
				return err
			}
			return printJSON(ctx, ch)
		})
	}
	if len(args) < 2 {
		return cli.NewExitError(errors.New("at least one account ID is required"), 1)
	}
	accounts, err := parseAccounts(args[1:])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var req nearrpc.ChangesRequest
	switch args[0] {
	case "account":
		req = nearrpc.AccountChangesRequest(accounts...)
	case "keys":
		req = nearrpc.AllAccessKeyChangesRequest(accounts...)
	case "code":
		req = nearrpc.ContractCodeChangesRequest(accounts...)
	case "data":
		prefix, err := base64.StdEncoding.DecodeString(ctx.String("prefix"))
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid prefix: %w", err), 1)
		}
		req = nearrpc.DataChangesRequest(prefix, accounts...)
	default:
		return cli.NewExitError(fmt.Errorf("unknown changes type %q", args[0]), 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		ch, err := c.Changes(gctx, req, ref)
		if err != nil {
			return err
		}
		return printJSON(ctx, ch)
	})
}

func queryTx(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 2 {
		return cli.NewExitError("Transaction hash and sender ID are required", 1)
	}
	h, err := util.CryptoHashDecodeString(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid tx hash: %w", err), 1)
	}
	sender, err := flags.ParseAccountID(args[1])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	wait, err := flags.ParseWaitUntil(ctx.String("wait"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		var out *result.FinalExecutionOutcome
		if ctx.Bool("receipts") {
			out, err = c.ExperimentalTxStatus(gctx, h, sender, wait)
		} else {
			out, err = c.TxStatus(gctx, h, sender, wait)
		}
		if err != nil {
			return err
		}
		if ctx.Bool("json") {
			return printJSON(ctx, out)
		}
		DumpOutcome(ctx, h.String(), out)
		return nil
	})
}

// DumpOutcome prints transaction execution outcome summary.
func DumpOutcome(ctx *cli.Context, hash string, out *result.FinalExecutionOutcome) {
	t := newTable()
	t.add("Hash", "%s", hash)
	if out.FinalExecutionStatus != "" {
		t.add("Stage", "%s", out.FinalExecutionStatus)
	}
	if out.Status == nil {
		t.add("Status", "pending")
	} else {
		switch out.Status.Kind {
		case result.StatusSuccessValue:
			t.add("Status", "%s", out.Status.Kind)
			t.add("Value", "%s", base64.StdEncoding.EncodeToString(out.Status.SuccessValue))
		case result.StatusSuccessReceiptID:
			t.add("Status", "%s", out.Status.Kind)
			t.add("ReceiptID", "%s", out.Status.ReceiptID)
		case result.StatusFailure:
			t.add("Status", "%s", out.Status.Kind)
			data, err := out.Status.Failure.MarshalJSON()
			if err == nil {
				t.add("Failure", "%s", data)
			}
		default:
			t.add("Status", "%s", out.Status.Kind)
		}
	}
	if out.Transaction != nil {
		t.add("Signer", "%s", out.Transaction.SignerID)
		t.add("Receiver", "%s", out.Transaction.ReceiverID)
	}
	if out.TransactionOutcome != nil {
		t.add("BlockHash", "%s", out.TransactionOutcome.BlockHash)
		t.add("GasBurnt", "%d", out.TransactionOutcome.Outcome.GasBurnt)
	}
	t.add("Receipts", "%d", len(out.ReceiptsOutcome))
	t.print(ctx)
}

func queryReceipt(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return cli.NewExitError("Receipt ID is required", 1)
	}
	id, err := util.CryptoHashDecodeString(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid receipt ID: %w", err), 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		r, err := c.Receipt(gctx, id)
		if err != nil {
			return err
		}
		return printJSON(ctx, r)
	})
}

func queryGenesis(ctx *cli.Context) error {
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		g, err := c.GenesisConfig(gctx)
		if err != nil {
			return err
		}
		return printJSON(ctx, g)
	})
}

func queryProtocolConfig(ctx *cli.Context) error {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		pc, err := c.ProtocolConfig(gctx, ref)
		if err != nil {
			return err
		}
		return printJSON(ctx, pc)
	})
}

func queryLightClientProof(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 4 {
		return cli.NewExitError("proof type, ID, account ID and light client head are required", 1)
	}
	id, err := util.CryptoHashDecodeString(args[1])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid ID: %w", err), 1)
	}
	account, err := flags.ParseAccountID(args[2])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	head, err := util.CryptoHashDecodeString(args[3])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid light client head: %w", err), 1)
	}
	var req nearrpc.LightClientProofRequest
	switch args[0] {
	case "transaction":
		req = nearrpc.TransactionProof(id, account, head)
	case "receipt":
		req = nearrpc.ReceiptProof(id, account, head)
	default:
		return cli.NewExitError(fmt.Errorf("unknown proof type %q", args[0]), 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		p, err := c.LightClientProof(gctx, req)
		if err != nil {
			return err
		}
		return printJSON(ctx, p)
	})
}

func queryNextLightClientBlock(ctx *cli.Context) error {
	var lastKnown *util.CryptoHash
	if ctx.Args().Present() {
		h, err := util.CryptoHashDecodeString(ctx.Args().First())
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid block hash: %w", err), 1)
		}
		lastKnown = &h
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		b, err := c.NextLightClientBlock(gctx, lastKnown)
		if err != nil {
			return err
		}
		if b == nil {
			fmt.Fprintln(ctx.App.Writer, "No newer block")
			return nil
		}
		return printJSON(ctx, b)
	})
}
