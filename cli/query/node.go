package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/nearrpc/result"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/nspcc-dev/near-go/pkg/util"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// nodeOverview combines results of several node information calls.
type nodeOverview struct {
	Status  *result.NodeStatus  `json:"status"`
	Network *result.NetworkInfo `json:"network"`
	Healthy bool                `json:"healthy"`
	Health  string              `json:"health_error,omitempty"`
}

func queryStatus(ctx *cli.Context) error {
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		var ov nodeOverview

		g, gctx := errgroup.WithContext(gctx)
		g.Go(func() error {
			var err error
			ov.Status, err = c.Status(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			ov.Network, err = c.NetworkInfo(gctx)
			return err
		})
		g.Go(func() error {
			// Unhealthy node is still a valid answer.
			if err := c.Health(gctx); err != nil {
				ov.Health = err.Error()
				return nil
			}
			ov.Healthy = true
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		if ctx.Bool("json") {
			return printJSON(ctx, ov)
		}

		s := ov.Status
		t := newTable()
		t.add("ChainID", "%s", s.ChainID)
		t.add("Version", "%s (%s)", s.Version.Version, s.Version.Build)
		t.add("Protocol", "%d (latest %d)", s.ProtocolVersion, s.LatestProtocolVersion)
		t.add("LatestBlock", "%d %s", s.SyncInfo.LatestBlockHeight, s.SyncInfo.LatestBlockHash)
		t.add("LatestBlockTime", "%s", s.SyncInfo.LatestBlockTime)
		t.add("Syncing", "%t", s.SyncInfo.Syncing)
		t.add("Validators", "%d", len(s.Validators))
		t.add("Peers", "%d/%d", ov.Network.NumActivePeers, ov.Network.PeerMaxCount)
		if ov.Healthy {
			t.add("Healthy", "true")
		} else {
			t.add("Healthy", "false (%s)", ov.Health)
		}
		t.print(ctx)
		return nil
	})
}

// parseOptionalBlockID parses the first argument as a block ID if it's
// present.
func parseOptionalBlockID(ctx *cli.Context) (*nearrpc.BlockID, error) {
	if !ctx.Args().Present() {
		return nil, nil
	}
	id, err := nearrpc.ParseBlockID(ctx.Args().First())
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryGasPrice(ctx *cli.Context) error {
	id, err := parseOptionalBlockID(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		gp, err := c.GasPrice(gctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, gp.GasPrice)
		return nil
	})
}

func queryValidators(ctx *cli.Context) error {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	epoch := ctx.String("epoch")
	if epoch != "" && !ref.IsZero() {
		return cli.NewExitError(errors.New("--epoch and --block can't be used together"), 1)
	}
	var blockID *nearrpc.BlockID
	if !ref.IsZero() {
		id, ok := ref.BlockID()
		if !ok {
			return cli.NewExitError(fmt.Errorf("block height or hash expected, got %s", ref), 1)
		}
		blockID = &id
	}

	if ctx.Bool("ordered") {
		if epoch != "" {
			return cli.NewExitError(errors.New("--epoch can't be used with --ordered"), 1)
		}
		return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
			vs, err := c.ValidatorsOrdered(gctx, blockID)
			if err != nil {
				return err
			}
			return printJSON(ctx, vs)
		})
	}

	req := nearrpc.CurrentValidators()
	switch {
	case epoch != "":
		h, err := util.CryptoHashDecodeString(epoch)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid epoch ID: %w", err), 1)
		}
		req = nearrpc.ValidatorsForEpoch(h)
	case blockID != nil:
		req = nearrpc.ValidatorsAtBlock(*blockID)
	}
	return withClient(ctx, func(gctx context.Context, c *rpcclient.Client) error {
		vs, err := c.Validators(gctx, req)
		if err != nil {
			return err
		}
		return printJSON(ctx, vs)
	})
}
