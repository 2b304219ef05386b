package c8y

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// ServerError is a non-2xx response whose body is the platform error
// envelope.
type ServerError struct {
	StatusCode int             `json:"-"                 yaml:"-"`
	ErrorCode  string          `json:"error"             yaml:"error"`
	Message    string          `json:"message"           yaml:"message"`
	Info       string          `json:"info,omitempty"    yaml:"info,omitempty"`
	Details    json.RawMessage `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status: %d)", e.ErrorCode, e.StatusCode)
	}

	if e.ErrorCode == "" {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.ErrorCode, e.Message, e.StatusCode)
}

// Unwrap returns the errdefs class of the status code.
func (e *ServerError) Unwrap() error {
	return errorClass(e.StatusCode)
}

// HTTPError is a non-2xx response whose body is not the platform error
// envelope. The raw body is kept for inspection.
type HTTPError struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	if len(e.Body) == 0 {
		return "request returned " + status
	}

	return fmt.Sprintf("request returned %s: %s", status, truncate(e.Body, maxErrorBodyInMessage))
}

// Unwrap returns the errdefs class of the status code.
func (e *HTTPError) Unwrap() error {
	return errorClass(e.StatusCode)
}

// TransportError is a failure to complete the HTTP exchange.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a 2xx response body that could not be decoded into the
// expected type.
type DecodeError struct {
	Target string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is a request body that could not be encoded. No request was
// sent.
type EncodeError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

const maxErrorBodyInMessage = 512

// Static errors that can be wrapped with context.
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrMissingPathParameter = errors.New("missing path parameter")
	ErrUnknownPathParameter = errors.New("unknown path parameter")
	ErrVersionOrTagRequired = errors.New("exactly one of version or tag is required")
	ErrConfigRequired       = errors.New("config is required")
	ErrBaseURLRequired      = errors.New("base URL is required")
	ErrNoHostInURL          = errors.New("no host specified in URL")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidCount         = errors.New("invalid count response")
)

// errorClass maps an HTTP status code to an errdefs error class.
func errorClass(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errdefs.ErrInvalidArgument
	case http.StatusUnauthorized:
		return errdefs.ErrUnauthenticated
	case http.StatusForbidden:
		return errdefs.ErrPermissionDenied
	case http.StatusNotFound:
		return errdefs.ErrNotFound
	case http.StatusConflict:
		return errdefs.ErrConflict
	case http.StatusPreconditionFailed:
		return errdefs.ErrFailedPrecondition
	case http.StatusTooManyRequests:
		return errdefs.ErrResourceExhausted
	case http.StatusNotImplemented:
		return errdefs.ErrNotImplemented
	case http.StatusServiceUnavailable:
		return errdefs.ErrUnavailable
	}

	if statusCode >= http.StatusInternalServerError {
		return errdefs.ErrInternal
	}

	return errdefs.ErrUnknown
}

// ParseServerError decodes body as the platform error envelope. It reports
// false when the body is not JSON or carries neither an error code nor a
// message.
func ParseServerError(statusCode int, body []byte) (*ServerError, bool) {
	if len(body) == 0 {
		return nil, false
	}

	var serverErr ServerError

	err := json.Unmarshal(body, &serverErr)
	if err != nil {
		return nil, false
	}

	if serverErr.ErrorCode == "" && serverErr.Message == "" {
		return nil, false
	}

	serverErr.StatusCode = statusCode

	return &serverErr, true
}

// StatusCode returns the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode
	}

	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}

// ErrorCode returns the platform error code ("inventory/Not Found", ...)
// carried by err, or "".
func ErrorCode(err error) string {
	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.ErrorCode
	}

	return ""
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errdefs.IsNotFound(err)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errdefs.IsUnauthorized(err)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errdefs.IsPermissionDenied(err)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return errdefs.IsConflict(err)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}
