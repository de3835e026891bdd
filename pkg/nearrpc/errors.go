package nearrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nspcc-dev/near-go/pkg/encoding/jsonval"
)

// Standard JSON-RPC 2.0 error codes plus the generic server error code NEAR
// nodes use for everything that happens after the request is parsed.
const (
	ParseErrorCode          = -32700
	InvalidRequestCode      = -32600
	MethodNotFoundCode      = -32601
	InvalidParamsCode       = -32602
	InternalServerErrorCode = -32603
	ServerErrorCode         = -32000
)

var (
	// ErrMalformedEnvelope is returned when the response body is not JSON or
	// is not a JSON-RPC response object at all.
	ErrMalformedEnvelope = errors.New("malformed JSON-RPC response")
	// ErrMissingResult is returned when the response has neither result
	// nor error.
	ErrMissingResult = errors.New("no result returned")
)

type (
	// Error is a JSON-RPC 2.0 error object returned by the node (protocol
	// error). NEAR nodes add structured Name and Cause to the standard
	// fields.
	Error struct {
		Code    int64
		Message string
		Data    jsonval.Value
		Name    string
		Cause   jsonval.Value
	}

	errorAux struct {
		Code    int64          `json:"code"`
		Message string         `json:"message"`
		Data    *jsonval.Value `json:"data,omitempty"`
		Name    string         `json:"name,omitempty"`
		Cause   *jsonval.Value `json:"cause,omitempty"`
	}
)

// NewError is an Error constructor that takes Error contents from its
// parameters.
func NewError(code int64, message string, data jsonval.Value) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewParseError creates a new error with code -32700.
func NewParseError(data string) *Error {
	return NewError(ParseErrorCode, "Parse error", jsonval.String(data))
}

// NewInvalidRequestError creates a new error with code -32600.
func NewInvalidRequestError(data string) *Error {
	return NewError(InvalidRequestCode, "Invalid request", jsonval.String(data))
}

// NewMethodNotFoundError creates a new error with code -32601.
func NewMethodNotFoundError(data string) *Error {
	return NewError(MethodNotFoundCode, "Method not found", jsonval.String(data))
}

// NewInvalidParamsError creates a new error with code -32602.
func NewInvalidParamsError(data string) *Error {
	return NewError(InvalidParamsCode, "Invalid params", jsonval.String(data))
}

// NewInternalServerError creates a new error with code -32603.
func NewInternalServerError(data string) *Error {
	return NewError(InternalServerErrorCode, "Internal error", jsonval.String(data))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Data.IsNull() {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	if s, err := e.Data.AsString(); err == nil {
		return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, s)
	}
	data, _ := json.Marshal(e.Data)
	return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, data)
}

// Is denotes whether the error matches the target one. Errors with the same
// code are considered equal, as well as errors with the same non-empty name.
func (e *Error) Is(target error) bool {
	var clTarget *Error
	if !errors.As(target, &clTarget) {
		return false
	}
	if e.Name != "" && clTarget.Name != "" {
		return e.Name == clTarget.Name
	}
	return e.Code == clTarget.Code
}

// MarshalJSON implements the json.Marshaler interface.
func (e *Error) MarshalJSON() ([]byte, error) {
	aux := errorAux{Code: e.Code, Message: e.Message, Name: e.Name}
	if !e.Data.IsNull() {
		aux.Data = &e.Data
	}
	if !e.Cause.IsNull() {
		aux.Cause = &e.Cause
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Error) UnmarshalJSON(data []byte) error {
	aux := new(errorAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	*e = Error{Code: aux.Code, Message: aux.Message, Name: aux.Name}
	if aux.Data != nil {
		e.Data = *aux.Data
	}
	if aux.Cause != nil {
		e.Cause = *aux.Cause
	}
	return nil
}

// TransportErrorKind classifies transport failures.
type TransportErrorKind byte

// Transport failure kinds.
const (
	// NetworkFailure is a connection or I/O failure.
	NetworkFailure TransportErrorKind = iota
	// BadStatus is a non-2xx HTTP response.
	BadStatus
	// Timeout is an expired per-call deadline.
	Timeout
	// Canceled is a call canceled by the caller.
	Canceled
)

// String implements the fmt.Stringer interface.
func (k TransportErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case BadStatus:
		return "bad HTTP status"
	case Timeout:
		return "timeout"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("transport error kind %d", byte(k))
	}
}

// TransportError is returned when the request didn't reach the node or the
// node didn't answer with a 2xx status. The body of such responses is never
// decoded.
type TransportError struct {
	Kind       TransportErrorKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Kind == BadStatus {
		return fmt.Sprintf("HTTP %d/%s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the result is present, but can't be mapped
// into the requested type.
type DecodeError struct {
	// Field is a dot-separated path of the field that failed, "result" for
	// the result itself.
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransport checks whether err is a TransportError and returns it.
func IsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	ok := errors.As(err, &te)
	return te, ok
}

// IsTimeout checks whether err is a TransportError of the Timeout kind.
func IsTimeout(err error) bool {
	te, ok := IsTransport(err)
	return ok && te.Kind == Timeout
}

// IsProtocol checks whether err is an error returned by the node and
// returns it.
func IsProtocol(err error) (*Error, bool) {
	var pe *Error
	ok := errors.As(err, &pe)
	return pe, ok
}

func joinPath(parts []string) string {
	return strings.Join(parts, ".")
}
