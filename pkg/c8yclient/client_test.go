package c8yclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
	"github.com/fivetwenty-io/c8y-client/pkg/c8yclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := c8yclient.New(context.Background(), nil)
		require.ErrorIs(t, err, c8y.ErrConfigRequired)
	})

	t.Run("requires base url", func(t *testing.T) {
		t.Parallel()

		_, err := c8yclient.New(context.Background(), &c8y.Config{})
		require.ErrorIs(t, err, c8y.ErrBaseURLRequired)
	})

	t.Run("normalizes base url", func(t *testing.T) {
		t.Parallel()

		config := &c8y.Config{BaseURL: "example.cumulocity.com/"}

		client, err := c8yclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "https://example.cumulocity.com", client.BaseURL())
		assert.Equal(t, "https://example.cumulocity.com", config.BaseURL)
	})

	t.Run("keeps explicit scheme", func(t *testing.T) {
		t.Parallel()

		client, err := c8yclient.New(context.Background(), &c8y.Config{BaseURL: "http://localhost:8111//"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8111", client.BaseURL())
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenant/currentTenant", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Accept"), c8y.MediaTypeError))

		_ = json.NewEncoder(w).Encode(map[string]string{"name": "t100", "domainName": "t100.example.com"})
	}))
	defer server.Close()

	client, err := c8yclient.NewWithToken(context.Background(), server.URL, "test-token")
	require.NoError(t, err)

	tenant, err := client.CurrentTenant().Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "t100", tenant.Name)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "t100/admin", user)
		assert.Equal(t, "secret", password)

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "admin", "userName": "admin"})
	}))
	defer server.Close()

	client, err := c8yclient.NewWithPassword(context.Background(), server.URL, "t100", "admin", "secret")
	require.NoError(t, err)

	user, err := client.CurrentUser().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", user.UserName)
}

func TestNewWithOAuthInternal(t *testing.T) {
	t.Parallel()

	client, err := c8yclient.NewWithOAuthInternal(context.Background(), "https://example.cumulocity.com", "t100", "admin", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client.ManagedObjects())
}
