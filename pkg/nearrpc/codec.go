package nearrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/near-go/pkg/encoding/alias"
)

// ParseResponse parses the response envelope. A non-null error takes
// precedence over the result, an explicit "result": null is a valid result,
// an envelope with neither is ErrMissingResult. Protocol errors are returned
// as *Error along with the parsed response.
func ParseResponse(data []byte) (*Response, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, errNotObject)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	resp := new(Response)
	if v, ok := fields["jsonrpc"]; ok {
		if err := json.Unmarshal(v, &resp.JSONRPC); err != nil {
			return nil, fmt.Errorf("%w: jsonrpc: %v", ErrMalformedEnvelope, err)
		}
	}
	if v, ok := fields["id"]; ok {
		resp.ID = v
	}
	if v, ok := fields["error"]; ok && !isNull(v) {
		rpcErr := new(Error)
		if err := json.Unmarshal(v, rpcErr); err != nil {
			return nil, fmt.Errorf("%w: error: %v", ErrMalformedEnvelope, err)
		}
		resp.Error = rpcErr
		return resp, rpcErr
	}
	v, ok := fields["result"]
	if !ok {
		return nil, ErrMissingResult
	}
	resp.Result = v
	return resp, nil
}

// DecodeResult decodes a result into v, which can be any JSON-decodable
// value including scalar types. Failures are returned as *DecodeError with
// the path of the failed field.
func DecodeResult(raw json.RawMessage, v any) error {
	if raw == nil {
		return ErrMissingResult
	}
	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	var (
		path  []string
		inner = err
		fe    *alias.FieldError
	)
	for errors.As(inner, &fe) {
		path = append(path, fe.Field)
		inner = fe.Err
	}
	if len(path) == 0 {
		path = []string{"result"}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			path = append(path, te.Field)
		}
	}
	return &DecodeError{Field: joinPath(path), Reason: inner.Error(), Err: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
