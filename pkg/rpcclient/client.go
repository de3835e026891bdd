package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/near-go/pkg/nearrpc"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// ErrNoEndpoint is returned by New when the endpoint has no scheme or host.
var ErrNoEndpoint = errors.New("endpoint must be an absolute http(s) URL")

// Client represents the middleman for executing JSON-RPC calls to remote
// NEAR nodes. Client is thread-safe and can be used from multiple
// goroutines.
type Client struct {
	transport *Transport
	endpoint  *url.URL
	opts      Options
	log       *zap.Logger
	requestF  func(context.Context, *nearrpc.Request) (*nearrpc.Response, error)

	latestReqID *atomic.Uint64
	// getNextRequestID returns an ID to be used for the subsequent request creation.
	// It is defined on Client, so that our testing code can override this method
	// for the sake of more predictable request IDs generation behavior.
	getNextRequestID func() nearrpc.RequestID
}

// Options defines options for the RPC client. All values are optional.
type Options struct {
	// Headers are added to every request, they override the default
	// Content-Type and Accept ones.
	Headers map[string]string
	// DialTimeout is a connection timeout, 4 seconds by default.
	DialTimeout time.Duration
	// RequestTimeout limits every call, 30 seconds by default.
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// UUIDRequestIDs makes the client use random UUID strings as request
	// ids instead of a counter.
	UUIDRequestIDs bool
	// Logger is used for call tracing, nothing is logged if it's nil.
	Logger *zap.Logger
	// Registerer is used to expose call metrics (prometheus.DefaultRegisterer
	// for the default registry). Metrics are not registered anywhere if it's
	// nil.
	Registerer prometheus.Registerer
}

// New returns a new Client ready to use.
func New(endpoint string, opts Options) (*Client, error) {
	cl := new(Client)
	err := initClient(cl, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func initClient(cl *Client, endpoint string, opts Options) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrNoEndpoint, endpoint)
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registerer != nil {
		if err := registerMetrics(opts.Registerer); err != nil {
			return err
		}
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.DialTimeout,
		}).DialContext,
		MaxConnsPerHost: opts.MaxConnsPerHost,
	}

	cl.transport = NewTransport(u, opts.Headers, base)
	cl.endpoint = u
	cl.log = opts.Logger
	cl.latestReqID = atomic.NewUint64(0)
	if opts.UUIDRequestIDs {
		cl.getNextRequestID = getUUIDRequestID
	} else {
		cl.getNextRequestID = (cl).getRequestID
	}
	cl.opts = opts
	cl.requestF = cl.makeHTTPRequest
	return nil
}

func (c *Client) getRequestID() nearrpc.RequestID {
	return nearrpc.NumericID(c.latestReqID.Inc())
}

func getUUIDRequestID() nearrpc.RequestID {
	return nearrpc.StringID(uuid.NewString())
}

// Endpoint returns the client endpoint as it was configured.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Close closes unused underlying networks connections.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
}

// Call performs an arbitrary RPC call and decodes its result into v. params
// are sent as is, nil is replaced with an empty array.
func (c *Client) Call(ctx context.Context, method string, params any, v any) error {
	return c.performRequest(ctx, method, params, v)
}

func (c *Client) performRequest(ctx context.Context, method string, params any, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	var (
		r     = nearrpc.NewRequest(c.getNextRequestID(), method, params)
		start = time.Now()
	)
	raw, err := c.requestF(ctx, r)
	if err == nil {
		err = nearrpc.DecodeResult(raw.Result, v)
	}
	d := time.Since(start)
	observeCall(method, err, d)
	if err != nil {
		c.log.Debug("RPC call failed",
			zap.String("method", method),
			zap.Stringer("id", r.ID),
			zap.Duration("duration", d),
			zap.Error(err))
		return err
	}
	c.log.Debug("RPC call",
		zap.String("method", method),
		zap.Stringer("id", r.ID),
		zap.Duration("duration", d))
	return nil
}

func (c *Client) makeHTTPRequest(ctx context.Context, r *nearrpc.Request) (*nearrpc.Response, error) {
	body, err := r.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", r.Method, err)
	}
	_, data, err := c.transport.Send(ctx, body, nil)
	if err != nil {
		return nil, err
	}
	return nearrpc.ParseResponse(data)
}

// Ping attempts to create a connection to the endpoint
// and returns an error if there is any.
func (c *Client) Ping() error {
	host := c.endpoint.Host
	if c.endpoint.Port() == "" {
		port := "80"
		if c.endpoint.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(c.endpoint.Hostname(), port)
	}
	conn, err := net.DialTimeout("tcp", host, c.opts.DialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}
