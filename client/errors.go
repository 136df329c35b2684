package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrSessionInvalid marks an unrecoverable auth failure: the refresh
// endpoint rejected the stored credentials. The stored session has
// already been cleared by the time callers see this error.
var ErrSessionInvalid = errors.New("blogclient: session invalid")

// TransportError wraps a failure where no server response was
// obtained: connection refused, DNS failure, client-side timeout.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("blogclient: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a client-side timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// APIError is any server-issued error status the pipeline does not
// recover. It is passed through to callers unmodified so they can
// render domain-specific messaging.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blogclient: server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func newAPIError(resp *resty.Response) *APIError {
	body := resp.Body()

	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    msg,
		Body:       append([]byte(nil), body...),
	}
}

// DecodeError reports a response body that did not match the shape a
// call site expected. Shape mismatches fail loudly instead of leaking
// zero values into the application.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("blogclient: decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
