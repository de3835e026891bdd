package query

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/near-go/cli/flags"
	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/nspcc-dev/near-go/pkg/util"
	"github.com/urfave/cli"
)

// nearDecimals is the number of yoctoNEAR decimals in one NEAR.
const nearDecimals = 24

var errNoAccount = errors.New("account ID is required")

// FormatNEAR converts yoctoNEAR amount into a decimal NEAR string without
// trailing zeroes.
func FormatNEAR(amount util.U128) (string, error) {
	v, err := amount.Uint256()
	if err != nil {
		return "", err
	}
	one := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(nearDecimals))
	q := new(uint256.Int).Div(v, one)
	r := new(uint256.Int).Mod(v, one)
	if r.IsZero() {
		return q.ToBig().String(), nil
	}
	frac := r.ToBig().String()
	frac = strings.Repeat("0", nearDecimals-len(frac)) + frac
	return q.ToBig().String() + "." + strings.TrimRight(frac, "0"), nil
}

// accountWithRef parses account ID from the first argument and block
// reference from the flag.
func accountWithRef(ctx *cli.Context) (util.AccountID, nearrpc.BlockReference, error) {
	if !ctx.Args().Present() {
		return "", nearrpc.BlockReference{}, errNoAccount
	}
	account, err := flags.ParseAccountID(ctx.Args().First())
	if err != nil {
		return "", nearrpc.BlockReference{}, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return "", nearrpc.BlockReference{}, err
	}
	return account, ref, nil
}

func queryAccount(ctx *cli.Context) error {
	account, ref, err := accountWithRef(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		acc, err := c.ViewAccount(gctx, account, ref)
		if err != nil {
			return err
		}
		if ctx.Bool("json") {
			return printJSON(ctx, acc)
		}
		amount, err := FormatNEAR(acc.Amount)
		if err != nil {
			return err
		}
		locked, err := FormatNEAR(acc.Locked)
		if err != nil {
			return err
		}
		t := newTable()
		t.add("Account", "%s", account)
		t.add("Amount", "%s NEAR", amount)
		t.add("Locked", "%s NEAR", locked)
		t.add("CodeHash", "%s", acc.CodeHash)
		t.add("StorageUsage", "%d", acc.StorageUsage)
		t.add("Block", "%d %s", acc.BlockHeight, acc.BlockHash)
		t.print(ctx)
		return nil
	})
}

func queryKeys(ctx *cli.Context) error {
	account, ref, err := accountWithRef(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if key := ctx.Args().Get(1); key != "" {
		return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
			k, err := c.ViewAccessKey(gctx, account, util.PublicKey(key), ref)
			if err != nil {
				return err
			}
			return printJSON(ctx, k)
		})
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		list, err := c.ViewAccessKeyList(gctx, account, ref)
		if err != nil {
			return err
		}
		t := newTable()
		for _, k := range list.Keys {
			p := k.AccessKey.Permission.FunctionCall
			if p == nil {
				t.add(string(k.PublicKey), "FullAccess, nonce %d", k.AccessKey.Nonce)
				continue
			}
			allowance := "unlimited"
			if p.Allowance != nil {
				allowance, err = FormatNEAR(*p.Allowance)
				if err != nil {
					return err
				}
				allowance += " NEAR"
			}
			t.add(string(k.PublicKey), "FunctionCall %s [%s], allowance %s, nonce %d",
				p.ReceiverID, strings.Join(p.MethodNames, ","), allowance, k.AccessKey.Nonce)
		}
		t.print(ctx)
		return nil
	})
}

func queryCode(ctx *cli.Context) error {
	account, ref, err := accountWithRef(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		code, err := c.ViewCode(gctx, account, ref)
		if err != nil {
			return err
		}
		if out := ctx.String("out"); out != "" {
			if err := os.WriteFile(out, code.Code, 0644); err != nil {
				return fmt.Errorf("can't write contract code: %w", err)
			}
		}
		t := newTable()
		t.add("Hash", "%s", code.Hash)
		t.add("Size", "%d", len(code.Code))
		t.add("Block", "%d %s", code.BlockHeight, code.BlockHash)
		t.print(ctx)
		return nil
	})
}

func queryState(ctx *cli.Context) error {
	account, ref, err := accountWithRef(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	prefix, err := base64.StdEncoding.DecodeString(ctx.String("prefix"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid prefix: %w", err), 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		st, err := c.ViewState(gctx, account, prefix, ctx.Bool("proof"), ref)
		if err != nil {
			return err
		}
		return printJSON(ctx, st)
	})
}

func queryCall(ctx *cli.Context) error {
	account, ref, err := accountWithRef(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	method := ctx.Args().Get(1)
	if method == "" {
		return cli.NewExitError("Method name is required", 1)
	}
	args := []byte(ctx.Args().Get(2))
	if len(args) == 0 {
		args = []byte("{}")
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		res, err := c.CallFunction(gctx, account, method, args, ref)
		if err != nil {
			return err
		}
		for _, l := range res.Logs {
			fmt.Fprintf(ctx.App.Writer, "Log: %s\n", l)
		}
		if res.Error != "" {
			return errors.New(res.Error)
		}
		if utf8.Valid(res.Result) {
			fmt.Fprintln(ctx.App.Writer, string(res.Result))
		} else {
			fmt.Fprintln(ctx.App.Writer, base64.StdEncoding.EncodeToString(res.Result))
		}
		return nil
	})
}
