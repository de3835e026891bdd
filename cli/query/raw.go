package query

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/urfave/cli"
)

func queryRaw(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) == 0 {
		return cli.NewExitError("Method is required", 1)
	}
	var params any = []any{}
	if p := args.Get(1); p != "" {
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(p), &raw); err != nil {
			return cli.NewExitError(fmt.Errorf("invalid params: %w", err), 1)
		}
		params = raw
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		var res json.RawMessage
		if err := c.Call(gctx, args[0], params, &res); err != nil {
			return err
		}
		v, err := decodeOrdered(res)
		if err != nil {
			return err
		}
		v, err = selectPath(v, ctx.String("path"))
		if err != nil {
			return err
		}
		return printJSON(ctx, v)
	})
}

// decodeOrdered decodes data keeping object key order and number literals.
func decodeOrdered(data []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseOrderedObject()
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// selectPath walks dot-separated path of object keys and array indices.
func selectPath(v any, path string) (any, error) {
	if path == "" {
		return v, nil
	}
	for _, elem := range strings.Split(path, ".") {
		switch obj := v.(type) {
		case json.OrderedObject:
			var found bool
			for i := range obj {
				if obj[i].Key == elem {
					v, found = obj[i].Value, true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("no %q key in the result", elem)
			}
		case []any:
			i, err := strconv.Atoi(elem)
			if err != nil || i < 0 || i >= len(obj) {
				return nil, fmt.Errorf("invalid index %q for array of %d elements", elem, len(obj))
			}
			v = obj[i]
		default:
			return nil, errors.New("path goes beyond scalar value at " + strconv.Quote(elem))
		}
	}
	return v, nil
}
