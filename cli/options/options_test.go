package options

import (
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/near-go/pkg/config/netmode"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newContext(t *testing.T, fill func(set *flag.FlagSet)) *cli.Context {
	set := flag.NewFlagSet("flagSet", flag.ContinueOnError)
	if fill != nil {
		fill(set)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestGetNetwork(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		n, err := GetNetwork(newContext(t, nil))
		require.NoError(t, err)
		require.Equal(t, netmode.MainNet, n)
	})

	for _, expected := range []netmode.Network{netmode.MainNet, netmode.TestNet, netmode.BetaNet, netmode.LocalNet} {
		t.Run(expected.String(), func(t *testing.T) {
			ctx := newContext(t, func(set *flag.FlagSet) {
				set.Bool(expected.String(), true, "")
			})
			n, err := GetNetwork(ctx)
			require.NoError(t, err)
			require.Equal(t, expected, n)
		})
	}

	t.Run("conflict", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.Bool("testnet", true, "")
			set.Bool("localnet", true, "")
		})
		_, err := GetNetwork(ctx)
		require.ErrorIs(t, err, errConflictingNetworks)
	})
}

func TestGetTimeoutContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		start := time.Now()
		actualCtx, cancel := GetTimeoutContext(newContext(t, nil))
		defer cancel()
		end := time.Now()
		dl, _ := actualCtx.Deadline()
		require.True(t, start.Before(dl) && !dl.After(end.Add(DefaultTimeout)))
	})

	t.Run("set", func(t *testing.T) {
		start := time.Now()
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.Duration("timeout", 20*time.Millisecond, "")
		})
		actualCtx, cancel := GetTimeoutContext(ctx)
		defer cancel()
		end := time.Now()
		dl, _ := actualCtx.Deadline()
		require.True(t, start.Before(dl) && !dl.After(end.Add(20*time.Millisecond)))
	})
}

func TestGetBlockReference(t *testing.T) {
	ref, err := GetBlockReference(newContext(t, nil))
	require.NoError(t, err)
	require.True(t, ref.IsZero())

	ctx := newContext(t, func(set *flag.FlagSet) {
		set.String("block", "42", "")
	})
	ref, err = GetBlockReference(ctx)
	require.NoError(t, err)
	require.Equal(t, nearrpc.HeightRef(42), ref)

	ctx = newContext(t, func(set *flag.FlagSet) {
		set.String("block", "yesterday", "")
	})
	_, err = GetBlockReference(ctx)
	require.Error(t, err)
}

func TestParseHeaders(t *testing.T) {
	hs, err := ParseHeaders(nil)
	require.NoError(t, err)
	require.Nil(t, hs)

	hs, err = ParseHeaders([]string{"X-Api-Key: secret", "Authorization:Bearer a:b", "X-Empty:"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"X-Api-Key":     "secret",
		"Authorization": "Bearer a:b",
		"X-Empty":       "",
	}, hs)

	for _, bad := range []string{"X-Api-Key", ": value"} {
		_, err = ParseHeaders([]string{bad})
		require.ErrorIs(t, err, errInvalidHeader, bad)
	}
}

func TestGetConfigFromContext(t *testing.T) {
	t.Run("network", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.Bool("testnet", true, "")
		})
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, netmode.TestNet, cfg.Network)
		e, err := cfg.EndpointURL()
		require.NoError(t, err)
		require.Equal(t, netmode.TestNet.Endpoint(), e)
	})

	t.Run("overrides", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "near.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("Network: localnet\nHeaders:\n  X-Api-Key: old\n"), 0644))

		ctx := newContext(t, func(set *flag.FlagSet) {
			set.String("config-file", cfgPath, "")
			set.String(RPCEndpointFlag, "http://127.0.0.1:3030/path", "")
			set.Duration("timeout", 5*time.Second, "")
			hs := cli.StringSlice{"X-Api-Key: new", "X-Trace: 1"}
			set.Var(&hs, "header", "")
			require.NoError(t, set.Parse([]string{"--timeout", "5s"}))
		})
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, netmode.LocalNet, cfg.Network)
		require.Equal(t, "http://127.0.0.1:3030/path", cfg.Endpoint)
		require.Equal(t, 5*time.Second, cfg.RequestTimeout)
		require.Equal(t, map[string]string{"X-Api-Key": "new", "X-Trace": "1"}, cfg.Headers)
	})

	t.Run("bad config file", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.String("config-file", filepath.Join(t.TempDir(), "missing.yml"), "")
		})
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})

	t.Run("bad endpoint", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.String(RPCEndpointFlag, "ws://127.0.0.1:3030", "")
		})
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})
}

func TestGetRPCClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":null}`))
	}))
	defer srv.Close()

	t.Run("invalid endpoint", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.String(RPCEndpointFlag, "localhost", "")
		})
		_, _, ec := GetRPCClient(ctx)
		require.NotNil(t, ec)
		require.Equal(t, 1, ec.ExitCode())
	})

	t.Run("success", func(t *testing.T) {
		ctx := newContext(t, func(set *flag.FlagSet) {
			set.String(RPCEndpointFlag, srv.URL+"/ignored", "")
		})
		c, closer, ec := GetRPCClient(ctx)
		require.Nil(t, ec)
		defer closer()
		require.Equal(t, srv.URL+"/ignored", c.Endpoint())
	})

	t.Run("preset", func(t *testing.T) {
		preset, err := rpcclient.New(srv.URL, rpcclient.Options{})
		require.NoError(t, err)
		defer preset.Close()

		ctx := newContext(t, nil)
		SetRPCClient(ctx.App, preset)
		c, closer, ec := GetRPCClient(ctx)
		require.Nil(t, ec)
		closer()
		require.Same(t, preset, c)

		// Subcommand contexts get a fresh App without the metadata.
		shell := cli.NewApp()
		SetRPCClient(shell, preset)
		parent := cli.NewContext(shell, flag.NewFlagSet("shell", flag.ContinueOnError), nil)
		child := cli.NewContext(cli.NewApp(), flag.NewFlagSet("query", flag.ContinueOnError), parent)
		c, closer, ec = GetRPCClient(child)
		require.Nil(t, ec)
		closer()
		require.Same(t, preset, c)
	})
}

func TestHandleLoggingParams(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "near-go.log")

	cfg, err := GetConfigFromContext(newContext(t, nil))
	require.NoError(t, err)
	cfg.LogPath = logPath
	cfg.LogLevel = "warn"

	log, level, err := HandleLoggingParams(false, cfg)
	require.NoError(t, err)
	require.Equal(t, "warn", level.String())
	log.Warn("hello")
	_ = log.Sync()
	require.FileExists(t, logPath)

	_, level, err = HandleLoggingParams(true, cfg)
	require.NoError(t, err)
	require.Equal(t, "debug", level.String())

	cfg.LogLevel = "loud"
	_, _, err = HandleLoggingParams(false, cfg)
	require.Error(t, err)
}
