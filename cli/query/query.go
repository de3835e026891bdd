package query

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/urfave/cli"
)

var jsonFlag = cli.BoolFlag{
	Name:  "json, j",
	Usage: "Output full result in JSON format",
}

// NewCommands returns 'query' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "query",
		Usage: "Query data from a NEAR RPC node",
		Subcommands: []cli.Command{
			{
				Name:   "status",
				Usage:  "Node status, health and network overview",
				Action: queryStatus,
				Flags:  clientFlags(jsonFlag),
			},
			{
				Name:      "gas-price",
				Usage:     "Gas price at the given or the latest block",
				UsageText: "near-go query gas-price [block-id]",
				Action:    queryGasPrice,
				Flags:     clientFlags(),
			},
			{
				Name:   "block",
				Usage:  "Block details",
				Action: queryBlock,
				Flags:  clientFlags(options.Block, jsonFlag),
			},
			{
				Name:      "chunk",
				Usage:     "Chunk details by chunk hash or by block and shard",
				UsageText: "near-go query chunk <chunk-hash> | near-go query chunk --block <block-id> --shard <shard-id>",
				Action:    queryChunk,
				Flags: clientFlags(options.Block, cli.Uint64Flag{
					Name:  "shard",
					Usage: "Shard ID (used with --block)",
				}),
			},
			{
				Name:      "validators",
				Usage:     "Epoch validators",
				UsageText: "near-go query validators [--epoch <epoch-id> | --block <block-id> | --ordered]",
				Action:    queryValidators,
				Flags: clientFlags(
					cli.StringFlag{Name: "epoch", Usage: "Epoch ID"},
					options.Block,
					cli.BoolFlag{Name: "ordered", Usage: "Ordered validator list of the block (EXPERIMENTAL_validators_ordered)"},
				),
			},
			{
				Name:      "account",
				Usage:     "Account balance and storage information",
				UsageText: "near-go query account <account-id> [--block <ref>]",
				Action:    queryAccount,
				Flags:     clientFlags(options.Block, jsonFlag),
			},
			{
				Name:      "keys",
				Usage:     "Access keys of the account",
				UsageText: "near-go query keys <account-id> [public-key] [--block <ref>]",
				Action:    queryKeys,
				Flags:     clientFlags(options.Block),
			},
			{
				Name:      "code",
				Usage:     "Contract code of the account",
				UsageText: "near-go query code <account-id> [--out <file>] [--block <ref>]",
				Action:    queryCode,
				Flags: clientFlags(options.Block, cli.StringFlag{
					Name:  "out, o",
					Usage: "File to write contract WASM to",
				}),
			},
			{
				Name:      "state",
				Usage:     "Contract storage of the account",
				UsageText: "near-go query state <account-id> [--prefix <base64>] [--proof] [--block <ref>]",
				Action:    queryState,
				Flags: clientFlags(options.Block,
					cli.StringFlag{Name: "prefix", Usage: "Base64-encoded key prefix"},
					cli.BoolFlag{Name: "proof", Usage: "Request storage proofs"},
				),
			},
			{
				Name:      "call",
				Usage:     "Call a view method of the contract",
				UsageText: "near-go query call <account-id> <method> [json-args] [--block <ref>]",
				Action:    queryCall,
				Flags:     clientFlags(options.Block),
			},
			{
				Name:      "changes",
				Usage:     "State changes in the block",
				UsageText: "near-go query changes [--block <ref>] | near-go query changes <type> <account-id>...",
				Description: `Without arguments lists the accounts changed in the block, otherwise
   returns changes of the given type. Type is one of
   account, keys, code or data. Data changes can be narrowed with --prefix.`,
				Action: queryChanges,
				Flags: clientFlags(options.Block,
					cli.StringFlag{Name: "prefix", Usage: "Base64-encoded key prefix for data changes"},
				),
			},
			{
				Name:      "tx",
				Usage:     "Transaction status",
				UsageText: "near-go query tx <tx-hash> <sender-id> [--wait <stage>] [--receipts]",
				Action:    queryTx,
				Flags: clientFlags(jsonFlag,
					cli.StringFlag{Name: "wait", Usage: "Execution stage to wait for (NONE, INCLUDED, EXECUTED_OPTIMISTIC, INCLUDED_FINAL, EXECUTED, FINAL)"},
					cli.BoolFlag{Name: "receipts", Usage: "Include receipts (EXPERIMENTAL_tx_status)"},
				),
			},
			{
				Name:      "receipt",
				Usage:     "Receipt by its ID",
				UsageText: "near-go query receipt <receipt-id>",
				Action:    queryReceipt,
				Flags:     clientFlags(),
			},
			{
				Name:   "genesis",
				Usage:  "Genesis configuration",
				Action: queryGenesis,
				Flags:  clientFlags(),
			},
			{
				Name:   "protocol-config",
				Usage:  "Protocol configuration at the block",
				Action: queryProtocolConfig,
				Flags:  clientFlags(options.Block),
			},
			{
				Name:      "light-client-proof",
				Usage:     "Light client execution proof",
				UsageText: "near-go query light-client-proof transaction|receipt <id> <account-id> <head-block-hash>",
				Action:    queryLightClientProof,
				Flags:     clientFlags(),
			},
			{
				Name:      "next-light-client-block",
				Usage:     "Next light client block after the given one",
				UsageText: "near-go query next-light-client-block [last-known-hash]",
				Action:    queryNextLightClientBlock,
				Flags:     clientFlags(),
			},
			{
				Name:      "raw",
				Usage:     "Arbitrary RPC call",
				UsageText: "near-go query raw <method> [json-params] [--path <path>]",
				Description: `Performs the call and prints the result preserving key order. Path
   selects a part of the result, it's a dot-separated list of object keys
   and array indices, like "header.height" or "chunks.0.chunk_hash".`,
				Action: queryRaw,
				Flags: clientFlags(cli.StringFlag{
					Name:  "path, p",
					Usage: "Dot-separated path to the result part to print",
				}),
			},
		},
	}}
}

// clientFlags returns RPC client flags along with the given ones.
func clientFlags(extra ...cli.Flag) []cli.Flag {
	res := make([]cli.Flag, 0, len(options.Client)+len(extra))
	res = append(res, options.Client...)
	return append(res, extra...)
}

// withClient runs f with an RPC client and a timeout context, errors are
// converted into exit errors.
func withClient(ctx *cli.Context, f func(context.Context, *rpcclient.Client) error) error {
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, closer, exitErr := options.GetRPCClient(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer closer()

	if err := f(gctx, c); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(data))
	return nil
}

// table is a two-column key/value output.
type table struct {
	buf *bytes.Buffer
	tw  *tabwriter.Writer
}

func newTable() *table {
	buf := bytes.NewBuffer(nil)
	return &table{
		buf: buf,
		tw:  tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0),
	}
}

func (t *table) add(key string, format string, args ...any) {
	// Ignore the errors below because `Write` to buffer doesn't return error.
	_, _ = fmt.Fprintf(t.tw, key+":\t"+format+"\n", args...)
}

func (t *table) print(ctx *cli.Context) {
	_ = t.tw.Flush()
	fmt.Fprint(ctx.App.Writer, t.buf.String())
}
