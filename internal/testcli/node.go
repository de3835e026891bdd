package testcli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Call is a request received by the FakeNode.
type Call struct {
	Path   string
	Method string
	Params json.RawMessage
	Header http.Header
}

// FakeNode is an HTTP JSON-RPC server answering with preset results. Methods
// without a preset answer get a "method not found" error.
type FakeNode struct {
	*httptest.Server

	lock    sync.Mutex
	results map[string]json.RawMessage
	errors  map[string]json.RawMessage
	calls   []Call
}

type fakeRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type fakeResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// NewFakeNode starts a new FakeNode, it's stopped when the test finishes.
func NewFakeNode(t *testing.T) *FakeNode {
	n := &FakeNode{
		results: make(map[string]json.RawMessage),
		errors:  make(map[string]json.RawMessage),
	}
	n.Server = httptest.NewServer(http.HandlerFunc(n.handle))
	t.Cleanup(n.Close)
	return n
}

// SetResult makes the node answer method calls with the given raw JSON
// result.
func (n *FakeNode) SetResult(method string, result string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	delete(n.errors, method)
	n.results[method] = json.RawMessage(result)
}

// SetError makes the node answer method calls with the given error.
func (n *FakeNode) SetError(method string, code int64, message string, data string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	delete(n.results, method)
	if data == "" {
		data = "null"
	}
	n.errors[method] = json.RawMessage(fmt.Sprintf(`{"code":%d,"message":%q,"data":%s}`, code, message, data))
}

// Calls returns all requests received so far.
func (n *FakeNode) Calls() []Call {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]Call(nil), n.calls...)
}

// LastCall returns the last request for the given method.
func (n *FakeNode) LastCall(t *testing.T, method string) Call {
	calls := n.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i]
		}
	}
	require.FailNowf(t, "no call", "method %s was not called", method)
	return Call{}
}

func (n *FakeNode) handle(w http.ResponseWriter, r *http.Request) {
	var req fakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.lock.Lock()
	n.calls = append(n.calls, Call{
		Path:   r.URL.Path,
		Method: req.Method,
		Params: req.Params,
		Header: r.Header.Clone(),
	})
	resp := fakeResponse{JSONRPC: "2.0", ID: req.ID}
	if res, ok := n.results[req.Method]; ok {
		resp.Result = res
	} else if e, ok := n.errors[req.Method]; ok {
		resp.Error = e
	} else {
		resp.Error = json.RawMessage(`{"code":-32601,"message":"Method not found","data":null}`)
	}
	n.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
