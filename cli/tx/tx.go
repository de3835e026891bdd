/*
Package tx contains commands submitting signed transactions.
*/
package tx

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nspcc-dev/near-go/cli/flags"
	"github.com/nspcc-dev/near-go/cli/input"
	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/cli/query"
	"github.com/nspcc-dev/near-go/pkg/nearrpc/result"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/urfave/cli"
)

var (
	inFlag = cli.StringFlag{
		Name:  "in, i",
		Usage: "file with the base64-encoded signed transaction (raw borsh bytes are accepted too)",
	}
	forceFlag = cli.BoolFlag{
		Name:  "force",
		Usage: "Do not ask for a confirmation",
	}
	errNoTx = errors.New("no signed transaction given")
)

// NewCommands returns 'tx' command.
func NewCommands() []cli.Command {
	txFlags := func(extra ...cli.Flag) []cli.Flag {
		res := make([]cli.Flag, 0, len(options.Client)+len(extra)+2)
		res = append(res, options.Client...)
		res = append(res, inFlag, forceFlag)
		return append(res, extra...)
	}
	return []cli.Command{{
		Name:  "tx",
		Usage: "Submit signed transactions",
		Subcommands: []cli.Command{
			{
				Name:      "send",
				Usage:     "Send transaction and wait for the given execution stage (send_tx)",
				UsageText: "near-go tx send [<base64-tx> | --in <file>] [--wait <stage>] [--force]",
				Action:    sendTx,
				Flags: txFlags(cli.StringFlag{
					Name:  "wait",
					Usage: "Execution stage to wait for (NONE, INCLUDED, EXECUTED_OPTIMISTIC, INCLUDED_FINAL, EXECUTED, FINAL)",
				}),
			},
			{
				Name:      "broadcast-async",
				Usage:     "Send transaction without waiting for its execution (broadcast_tx_async)",
				UsageText: "near-go tx broadcast-async [<base64-tx> | --in <file>] [--force]",
				Action:    broadcastAsync,
				Flags:     txFlags(),
			},
			{
				Name:      "broadcast-commit",
				Usage:     "Send transaction and wait for its execution (broadcast_tx_commit)",
				UsageText: "near-go tx broadcast-commit [<base64-tx> | --in <file>] [--force]",
				Action:    broadcastCommit,
				Flags:     txFlags(),
			},
		},
	}}
}

// readSignedTx gets the signed transaction from the argument, the file or
// the terminal (in this order).
func readSignedTx(ctx *cli.Context) ([]byte, error) {
	var data string
	switch {
	case ctx.Args().Present():
		data = ctx.Args().First()
	case ctx.String("in") != "":
		raw, err := os.ReadFile(ctx.String("in"))
		if err != nil {
			return nil, fmt.Errorf("can't read transaction: %w", err)
		}
		tx, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return raw, nil
		}
		return tx, nil
	case input.IsTerminal():
		line, err := input.ReadLine(ctx.App.Writer, "Signed transaction (base64) > ")
		if err != nil {
			return nil, err
		}
		data = line
	}
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errNoTx
	}
	tx, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 transaction: %w", err)
	}
	return tx, nil
}

// prepare reads the transaction and asks for the confirmation unless
// forced to skip it.
func prepare(ctx *cli.Context) ([]byte, error) {
	tx, err := readSignedTx(ctx)
	if err != nil {
		return nil, err
	}
	if !ctx.Bool("force") {
		ok, err := input.Confirm(ctx.App.Writer, fmt.Sprintf("Send %d bytes transaction?", len(tx)))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("cancelled by user")
		}
	}
	return tx, nil
}

func submit(ctx *cli.Context, f func(context.Context, *rpcclient.Client, []byte) error) error {
	tx, err := prepare(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, closer, exitErr := options.GetRPCClient(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer closer()

	if err := f(gctx, c, tx); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func printOutcome(ctx *cli.Context, out *result.FinalExecutionOutcome) {
	var hash string
	switch {
	case out.Transaction != nil:
		hash = out.Transaction.Hash.String()
	case out.TransactionOutcome != nil:
		hash = out.TransactionOutcome.ID.String()
	}
	query.DumpOutcome(ctx, hash, out)
}

func sendTx(ctx *cli.Context) error {
	wait, err := flags.ParseWaitUntil(ctx.String("wait"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return submit(ctx, func(gctx context.Context, c *rpcclient.Client, tx []byte) error {
		out, err := c.SendTransaction(gctx, tx, wait)
		if err != nil {
			return err
		}
		printOutcome(ctx, out)
		return nil
	})
}

func broadcastAsync(ctx *cli.Context) error {
	return submit(ctx, func(gctx context.Context, c *rpcclient.Client, tx []byte) error {
		h, err := c.BroadcastTxAsync(gctx, tx)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, h)
		return nil
	})
}

func broadcastCommit(ctx *cli.Context) error {
	return submit(ctx, func(gctx context.Context, c *rpcclient.Client, tx []byte) error {
		out, err := c.BroadcastTxCommit(gctx, tx)
		if err != nil {
			return err
		}
		printOutcome(ctx, out)
		return nil
	})
}
