package c8y_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

func TestParseServerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		ok     bool
		code   string
	}{
		{name: "envelope", status: 404, body: `{"error":"inventory/notFound","message":"missing"}`, ok: true, code: "inventory/notFound"},
		{name: "message only", status: 500, body: `{"message":"boom"}`, ok: true},
		{name: "empty body", status: 502, body: ``, ok: false},
		{name: "html", status: 502, body: `<html></html>`, ok: false},
		{name: "unrelated json", status: 400, body: `{"id":"1"}`, ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			serverErr, ok := c8y.ParseServerError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				require.NotNil(t, serverErr)
				assert.Equal(t, tt.status, serverErr.StatusCode)
				assert.Equal(t, tt.code, serverErr.ErrorCode)
			}
		})
	}
}

func TestServerError_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		check  func(error) bool
	}{
		{status: http.StatusBadRequest, check: errdefs.IsInvalidArgument},
		{status: http.StatusUnprocessableEntity, check: errdefs.IsInvalidArgument},
		{status: http.StatusUnauthorized, check: c8y.IsUnauthorized},
		{status: http.StatusForbidden, check: c8y.IsForbidden},
		{status: http.StatusNotFound, check: c8y.IsNotFound},
		{status: http.StatusConflict, check: c8y.IsConflict},
		{status: http.StatusTooManyRequests, check: errdefs.IsResourceExhausted},
		{status: http.StatusServiceUnavailable, check: errdefs.IsUnavailable},
		{status: http.StatusInternalServerError, check: errdefs.IsInternal},
		{status: http.StatusGatewayTimeout, check: errdefs.IsInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			serverErr := &c8y.ServerError{StatusCode: tt.status, ErrorCode: "general/error"}
			wrapped := fmt.Errorf("listing alarms: %w", serverErr)

			assert.True(t, tt.check(wrapped))
			assert.Equal(t, tt.status, c8y.StatusCode(wrapped))
			assert.Equal(t, "general/error", c8y.ErrorCode(wrapped))

			httpErr := &c8y.HTTPError{StatusCode: tt.status}
			assert.True(t, tt.check(httpErr))
			assert.Equal(t, tt.status, c8y.StatusCode(httpErr))
			assert.Empty(t, c8y.ErrorCode(httpErr))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inventory/notFound: missing (status: 404)",
		(&c8y.ServerError{StatusCode: 404, ErrorCode: "inventory/notFound", Message: "missing"}).Error())
	assert.Equal(t, "security/Unauthorized (status: 401)",
		(&c8y.ServerError{StatusCode: 401, ErrorCode: "security/Unauthorized"}).Error())
	assert.Equal(t, "request returned 502 Bad Gateway",
		(&c8y.HTTPError{StatusCode: 502}).Error())

	cause := errors.New("connection refused")
	transportErr := &c8y.TransportError{Method: "GET", URL: "https://t1.example.com/alarm/alarms", Err: cause}
	require.ErrorIs(t, transportErr, cause)
	assert.Equal(t, 0, c8y.StatusCode(transportErr))
	assert.Contains(t, transportErr.Error(), "GET https://t1.example.com/alarm/alarms")
}
