package rpcclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/nspcc-dev/near-go/pkg/nearrpc"
)

// RootURL returns the root of the endpoint: scheme, host and port of u with
// "/" path. Query, fragment and user info are dropped.
func RootURL(u *url.URL) *url.URL {
	return &url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   "/",
	}
}

// Transport is an http.RoundTripper that sends every request to the root of
// the configured endpoint as a JSON POST. NEAR nodes serve JSON-RPC at "/"
// only, whatever path the caller or the endpoint URL suggests.
type Transport struct {
	root    *url.URL
	headers http.Header
	base    http.RoundTripper
	cli     *http.Client
}

// NewTransport creates a Transport for the given endpoint. headers are added
// to every request after the JSON defaults, base performs the actual
// exchange (http.DefaultTransport if nil).
func NewTransport(endpoint *url.URL, headers map[string]string, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &Transport{
		root:    RootURL(endpoint),
		headers: make(http.Header, len(headers)),
		base:    base,
	}
	for k, v := range headers {
		t.headers.Set(k, v)
	}
	t.cli = &http.Client{
		Transport: t,
		// Redirects are not followed, 3xx is a bad status as any other
		// non-2xx one.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return t
}

// Root returns the URL all requests are sent to.
func (t *Transport) Root() *url.URL {
	u := *t.root
	return &u
}

// RoundTrip implements the http.RoundTripper interface. The request is
// cloned with the root URL, POST method and merged headers: JSON defaults,
// then configured headers, then the request's own ones.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL = t.Root()
	r.Host = t.root.Host
	r.Method = http.MethodPost

	h := make(http.Header, len(t.headers)+len(req.Header)+2)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	for k, v := range t.headers {
		h[k] = v
	}
	for k, v := range req.Header {
		h[k] = v
	}
	r.Header = h
	return t.base.RoundTrip(r)
}

// Send performs a single exchange with the node. Only 2xx responses have
// their body returned, anything else is a *nearrpc.TransportError of the
// BadStatus kind. There are no retries.
func (t *Transport) Send(ctx context.Context, body []byte, extraHeaders http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.root.String(), bytes.NewReader(body))
	if err != nil {
		return 0, nil, &nearrpc.TransportError{Kind: nearrpc.NetworkFailure, Err: err}
	}
	for k, v := range extraHeaders {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	resp, err := t.cli.Do(req)
	if err != nil {
		return 0, nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, &nearrpc.TransportError{Kind: nearrpc.BadStatus, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError(ctx, err)
	}
	return resp.StatusCode, data, nil
}

// CloseIdleConnections closes idle connections of the underlying transport.
func (t *Transport) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if ci, ok := t.base.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}

func transportError(ctx context.Context, err error) *nearrpc.TransportError {
	kind := nearrpc.NetworkFailure
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		kind = nearrpc.Canceled
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		kind = nearrpc.Timeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = nearrpc.Timeout
	}
	return &nearrpc.TransportError{Kind: kind, Err: err}
}
