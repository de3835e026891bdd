/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nspcc-dev/near-go/cli/flags"
	"github.com/nspcc-dev/near-go/pkg/config"
	"github.com/nspcc-dev/near-go/pkg/config/netmode"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeout is the default timeout used for the whole CLI operation
// (which can consist of several RPC calls).
const DefaultTimeout = 30 * time.Second

// RPCEndpointFlag is a long flag name for an RPC endpoint. It can be used to
// check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// Network is a set of flags for choosing the network to operate on
// (mainnet/testnet/betanet/localnet).
var Network = []cli.Flag{
	cli.BoolFlag{Name: "mainnet, m", Usage: "use mainnet network configuration (if --config-file option is not specified)"},
	cli.BoolFlag{Name: "testnet, t", Usage: "use testnet network configuration (if --config-file option is not specified)"},
	cli.BoolFlag{Name: "betanet", Usage: "use betanet network configuration (if --config-file option is not specified)"},
	cli.BoolFlag{Name: "localnet", Usage: "use local node configuration (if --config-file option is not specified)"},
}

// RPC is a set of flags used for RPC connections (endpoint, timeout and
// additional headers).
var RPC = []cli.Flag{
	cli.StringFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "RPC node address (overrides network and configuration file endpoint)",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation",
	},
	cli.StringSliceFlag{
		Name:  "header, H",
		Usage: "additional HTTP header in 'Name: value' form, can be repeated (repeat the same form)",
	},
}

// ConfigFile is a flag for commands that use client configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the client configuration file (network flags are ignored if it's specified)",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (every RPC call is logged, overrides configuration)",
}

// Block is a flag selecting the block a request is served against.
var Block = cli.StringFlag{
	Name:  "block, b",
	Usage: "block reference: finality (optimistic, near-final, final), sync checkpoint (genesis, earliest_available), block height or hash",
}

// Client is a full set of flags needed to get an RPC client with
// GetRPCClient.
var Client = append(append([]cli.Flag{ConfigFile, Debug}, Network...), RPC...)

// rpcClientKey is the application metadata key of a preconfigured client.
const rpcClientKey = "rpcClient"

var (
	errConflictingNetworks = errors.New("only one of --mainnet, --testnet, --betanet or --localnet can be specified")
	errInvalidHeader       = errors.New("invalid header, 'Name: value' expected")
)

// GetNetwork examines Context's flags and returns the appropriate network. It
// defaults to MainNet if no flags are given.
func GetNetwork(ctx *cli.Context) (netmode.Network, error) {
	var (
		net   = netmode.MainNet
		count int
	)
	for _, n := range []netmode.Network{netmode.MainNet, netmode.TestNet, netmode.BetaNet, netmode.LocalNet} {
		if ctx.Bool(n.String()) {
			net = n
			count++
		}
	}
	if count > 1 {
		return 0, errConflictingNetworks
	}
	return net, nil
}

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetBlockReference returns block reference specified with the Block flag,
// an unspecified one (meaning method default) is returned if the flag is
// not set.
func GetBlockReference(ctx *cli.Context) (nearrpc.BlockReference, error) {
	s := ctx.String("block")
	if len(s) == 0 {
		return nearrpc.BlockReference{}, nil
	}
	return flags.ParseBlockReference(s)
}

// ParseHeaders converts a list of 'Name: value' strings into a header map.
func ParseHeaders(hs []string) (map[string]string, error) {
	if len(hs) == 0 {
		return nil, nil
	}
	res := make(map[string]string, len(hs))
	for _, h := range hs {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidHeader, h)
		}
		res[name] = strings.TrimSpace(value)
	}
	return res, nil
}

// GetConfigFromContext looks at the config file and the network flags in the
// given context and returns an appropriate config with command line
// overrides applied.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		cfg, err = config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		net, err := GetNetwork(ctx)
		if err != nil {
			return config.Config{}, err
		}
		cfg = config.Default(net)
	}
	if endpoint := ctx.String(RPCEndpointFlag); len(endpoint) != 0 {
		cfg.Endpoint = endpoint
	}
	if ctx.IsSet("timeout") {
		cfg.RequestTimeout = ctx.Duration("timeout")
	}
	headers, err := ParseHeaders(ctx.StringSlice("header"))
	if err != nil {
		return config.Config{}, err
	}
	if len(headers) != 0 && cfg.Headers == nil {
		cfg.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		cfg.Headers[k] = v
	}
	return cfg, cfg.Validate()
}

// SetRPCClient makes GetRPCClient return c for all commands of the app
// instead of creating a new client from flags. The caller is responsible
// for closing c.
func SetRPCClient(app *cli.App, c *rpcclient.Client) {
	if app.Metadata == nil {
		app.Metadata = make(map[string]any)
	}
	app.Metadata[rpcClientKey] = c
}

// GetRPCClient returns an RPC client instance for the given Context along
// with a function releasing client resources.
func GetRPCClient(ctx *cli.Context) (*rpcclient.Client, func(), cli.ExitCoder) {
	for c := ctx; c != nil; c = c.Parent() {
		if c.App == nil {
			continue
		}
		if preset, ok := c.App.Metadata[rpcClientKey].(*rpcclient.Client); ok {
			return preset, func() {}, nil
		}
	}
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}
	log, _, err := HandleLoggingParams(ctx.Bool("debug"), cfg)
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}
	endpoint, err := cfg.EndpointURL()
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}
	c, err := rpcclient.New(endpoint, cfg.RPCOptions(log))
	if err != nil {
		_ = log.Sync()
		return nil, nil, cli.NewExitError(err, 1)
	}
	return c, func() {
		c.Close()
		_ = log.Sync()
	}, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.Config) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
