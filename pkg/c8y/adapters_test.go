package c8y_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

type staticSource string

func (s staticSource) GetToken(context.Context) (string, error) {
	return string(s), nil
}

func newRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, target, nil)
	require.NoError(t, err)

	return req
}

func TestBasicAuthAdapter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tenant   string
		expected string
	}{
		{name: "with tenant", tenant: "t100", expected: "t100/admin:secret"},
		{name: "without tenant", tenant: "", expected: "admin:secret"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := c8y.BasicAuthAdapter(tt.tenant, "admin", "secret").Adapt(newRequest(t, "/inventory/managedObjects"))
			require.NoError(t, err)
			assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte(tt.expected)), req.Header.Get("Authorization"))
		})
	}
}

func TestTokenAdapters(t *testing.T) {
	t.Parallel()

	req, err := c8y.BearerTokenAdapter("abc").Adapt(newRequest(t, "/user/currentUser"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))

	req, err = c8y.TokenSourceAdapter(staticSource("xyz")).Adapt(newRequest(t, "/user/currentUser"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer xyz", req.Header.Get("Authorization"))
}

func TestBaseURLAdapter(t *testing.T) {
	t.Parallel()

	adapter, err := c8y.BaseURLAdapter("https://t1.example.com/prefix/")
	require.NoError(t, err)

	req, err := adapter.Adapt(newRequest(t, "/inventory/managedObjects/1?withChildren=false"))
	require.NoError(t, err)
	assert.Equal(t, "https://t1.example.com/prefix/inventory/managedObjects/1?withChildren=false", req.URL.String())

	_, err = c8y.BaseURLAdapter("not a url")
	require.ErrorIs(t, err, c8y.ErrNoHostInURL)
}

func TestChainAdapters(t *testing.T) {
	t.Parallel()

	var order []string

	step := func(name string) c8y.Adapter {
		return c8y.AdapterFunc(func(req *http.Request) (*http.Request, error) {
			order = append(order, name)

			return req, nil
		})
	}

	_, err := c8y.ChainAdapters(step("auth"), nil, step("headers")).Adapt(newRequest(t, "/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"auth", "headers"}, order)

	failure := errors.New("no token")
	_, err = c8y.ChainAdapters(c8y.AdapterFunc(func(*http.Request) (*http.Request, error) {
		return nil, failure
	}), step("never")).Adapt(newRequest(t, "/"))
	require.ErrorIs(t, err, failure)
	assert.Equal(t, []string{"auth", "headers"}, order)
}

func TestHeaderAdapter(t *testing.T) {
	t.Parallel()

	req, err := c8y.HeaderAdapter(map[string]string{
		"X-Cumulocity-Application-Key": "key-1",
		"X-Empty":                      "",
	}).Adapt(newRequest(t, "/"))
	require.NoError(t, err)
	assert.Equal(t, "key-1", req.Header.Get("X-Cumulocity-Application-Key"))
	assert.Empty(t, req.Header.Values("X-Empty"))
}
