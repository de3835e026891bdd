/*
Package nearrpc contains a set of types used for JSON-RPC communication with
NEAR nodes. It defines basic request/response envelope types, the error
taxonomy of the client and the parameters used for specific requests.
*/
package nearrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
)

const (
	// JSONRPCVersion is the only JSON-RPC protocol version supported.
	JSONRPCVersion = "2.0"
)

type (
	// Request represents JSON-RPC request.
	Request struct {
		// JSONRPC is the protocol version, only valid when it contains JSONRPCVersion.
		JSONRPC string `json:"jsonrpc"`
		// ID is an identifier associated with this request. It's only used
		// for correlation and logging, NEAR nodes echo it back.
		ID RequestID `json:"id"`
		// Method is the method being called.
		Method string `json:"method"`
		// Params is a set of method-specific parameters passed to the call.
		// Depending on the method it's either a single object with named
		// fields or a positional array.
		Params any `json:"params"`
	}

	// Header is a generic JSON-RPC 2.0 response header (ID and JSON-RPC version).
	Header struct {
		ID      json.RawMessage `json:"id,omitempty"`
		JSONRPC string          `json:"jsonrpc"`
	}

	// HeaderAndError adds an Error (that can be empty) to the Header.
	HeaderAndError struct {
		Header
		Error *Error `json:"error,omitempty"`
	}

	// Response represents a standard raw JSON-RPC 2.0
	// response: http://www.jsonrpc.org/specification#response_object.
	// Result is kept undecoded, so that 64-bit numbers inside it are not
	// rounded before reaching the target type.
	Response struct {
		HeaderAndError
		Result json.RawMessage `json:"result,omitempty"`
	}

	// RequestID is a JSON-RPC request identifier, either a number or a string.
	RequestID struct {
		num   uint64
		str   string
		isStr bool
	}
)

// NumericID returns a numeric request identifier.
func NumericID(n uint64) RequestID {
	return RequestID{num: n}
}

// StringID returns a string request identifier.
func StringID(s string) RequestID {
	return RequestID{str: s, isStr: true}
}

// String implements the fmt.Stringer interface.
func (id RequestID) String() string {
	if id.isStr {
		return id.str
	}
	return strconv.FormatUint(id.num, 10)
}

// MarshalJSON implements the json.Marshaler interface.
func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isStr {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid request id: %w", err)
	}
	*id = NumericID(n)
	return nil
}

// NewRequest creates a request envelope. nil params are replaced with an
// empty array since nodes reject a missing or null "params".
func NewRequest(id RequestID, method string, params any) *Request {
	if params == nil {
		params = []any{}
	}
	return &Request{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// Bytes returns the JSON encoding of the request.
func (r *Request) Bytes() ([]byte, error) {
	return json.Marshal(r)
}

// BuildRequest serializes the request envelope for the given method and
// parameters.
func BuildRequest(id RequestID, method string, params any) ([]byte, error) {
	data, err := NewRequest(id, method, params).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s params: %w", method, err)
	}
	return data, nil
}

// Value returns the result as a generic JSON value.
func (r *Response) Value() (jsonval.Value, error) {
	if r.Result == nil {
		return jsonval.Value{}, ErrMissingResult
	}
	return jsonval.Decode(r.Result)
}

// ResultID returns the echoed request id if it's present and valid.
func (h *Header) ResultID() (RequestID, bool) {
	if len(h.ID) == 0 {
		return RequestID{}, false
	}
	var id RequestID
	if err := json.Unmarshal(h.ID, &id); err != nil {
		return RequestID{}, false
	}
	return id, true
}

// errNotObject is wrapped into ErrMalformedEnvelope for non-object bodies.
var errNotObject = errors.New("not a JSON object")
