package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/nspcc-dev/near-go/pkg/config/netmode"
	"github.com/nspcc-dev/near-go/pkg/rpcclient"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	userAgentFormat = "near-go/%s"

	// DefaultRequestTimeout is the RPC call timeout used when the
	// configuration doesn't specify one.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultDialTimeout is the connection timeout used when the
	// configuration doesn't specify one.
	DefaultDialTimeout = 5 * time.Second
)

// Version is the version of the client, set at build time.
var Version string

// Config is the top level configuration of the client.
type Config struct {
	Network netmode.Network `yaml:"Network"`
	// Endpoint overrides the default endpoint of the Network.
	Endpoint        string            `yaml:"Endpoint"`
	Headers         map[string]string `yaml:"Headers"`
	RequestTimeout  time.Duration     `yaml:"RequestTimeout"`
	DialTimeout     time.Duration     `yaml:"DialTimeout"`
	MaxConnsPerHost int               `yaml:"MaxConnsPerHost"`
	UUIDRequestIDs  bool              `yaml:"UUIDRequestIDs"`
	LogLevel        string            `yaml:"LogLevel"`
	LogPath         string            `yaml:"LogPath"`
}

// Default returns the default configuration for the given network.
func Default(net netmode.Network) Config {
	return Config{
		Network:        net,
		RequestTimeout: DefaultRequestTimeout,
		DialTimeout:    DefaultDialTimeout,
		LogLevel:       "info",
	}
}

// GenerateUserAgent creates user agent string based on build time environment.
func (c Config) GenerateUserAgent() string {
	return fmt.Sprintf(userAgentFormat, Version)
}

// Load attempts to load the config from the given path. Missing values are
// taken from the default configuration of the network specified in the
// file (mainnet if not specified).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Decode(data)
}

// Decode parses YAML configuration. Unknown fields are an error.
func Decode(data []byte) (Config, error) {
	cfg := Default(netmode.MainNet)
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.RequestTimeout < 0 || c.DialTimeout < 0 {
		return errors.New("timeouts can't be negative")
	}
	if c.MaxConnsPerHost < 0 {
		return errors.New("MaxConnsPerHost can't be negative")
	}
	if _, err := c.EndpointURL(); err != nil {
		return err
	}
	_, err := zap.ParseAtomicLevel(c.LogLevel)
	if c.LogLevel != "" && err != nil {
		return fmt.Errorf("invalid LogLevel: %w", err)
	}
	return nil
}

// EndpointURL returns the configured endpoint or the default endpoint of the
// network.
func (c Config) EndpointURL() (string, error) {
	e := c.Endpoint
	if e == "" {
		e = c.Network.Endpoint()
	}
	if e == "" {
		return "", fmt.Errorf("no endpoint for %s", c.Network)
	}
	u, err := url.Parse(e)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid endpoint %q: http or https scheme expected", e)
	}
	return e, nil
}

// RPCOptions returns client options for this configuration. User-Agent
// header is added unless it's configured explicitly.
func (c Config) RPCOptions(log *zap.Logger) rpcclient.Options {
	headers := make(map[string]string, len(c.Headers)+1)
	headers["User-Agent"] = c.GenerateUserAgent()
	for k, v := range c.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	return rpcclient.Options{
		Headers:         headers,
		DialTimeout:     c.DialTimeout,
		RequestTimeout:  c.RequestTimeout,
		MaxConnsPerHost: c.MaxConnsPerHost,
		UUIDRequestIDs:  c.UUIDRequestIDs,
		Logger:          log,
	}
}
