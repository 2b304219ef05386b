package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
)

// useTempConfig points viper at an empty config file in a temp directory.
// Tests using it share the global viper instance and must not run in
// parallel.
func useTempConfig(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}\n"), constants.ConfigFilePerm))

	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	return configFile
}

func TestSessionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		baseURL  string
		expected string
	}{
		{baseURL: "https://t100.cumulocity.com", expected: "t100.cumulocity.com"},
		{baseURL: "http://localhost:8111", expected: "localhost"},
		{baseURL: "https://example.cumulocity.com/proxy", expected: "example.cumulocity.com"},
		{baseURL: "example.cumulocity.com", expected: "example.cumulocity.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.baseURL, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sessionName(tt.baseURL))
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	configFile := useTempConfig(t)

	expiresAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{
		URL:            "https://t100.cumulocity.com",
		Tenant:         "t100",
		Username:       "admin",
		Token:          "token-1",
		TokenExpiresAt: &expiresAt,
	}
	config.CurrentSession = "t100.cumulocity.com"

	require.NoError(t, saveConfigStruct(config))

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "current_session: t100.cumulocity.com")
	assert.NotContains(t, string(data), "password")

	reloaded := loadConfig()
	assert.Equal(t, "t100.cumulocity.com", reloaded.CurrentSession)

	session := currentSession(reloaded)
	require.NotNil(t, session)
	assert.Equal(t, "token-1", session.Token)
	assert.Equal(t, "admin", session.Username)
	require.NotNil(t, session.TokenExpiresAt)
	assert.True(t, expiresAt.Equal(*session.TokenExpiresAt))
}

func TestConfigPersister_UpdateToken(t *testing.T) {
	useTempConfig(t)

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{URL: "https://t100.cumulocity.com", Token: "old"}
	config.CurrentSession = "t100.cumulocity.com"
	require.NoError(t, saveConfigStruct(config))

	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	persister := NewConfigPersister()
	require.NoError(t, persister.UpdateToken("https://t100.cumulocity.com", "new", expiresAt))

	session := loadConfig().Sessions["t100.cumulocity.com"]
	require.NotNil(t, session)
	assert.Equal(t, "new", session.Token)
	require.NotNil(t, session.TokenExpiresAt)
	assert.True(t, expiresAt.Equal(*session.TokenExpiresAt))
	assert.NotNil(t, session.LastRefreshed)

	err := persister.UpdateToken("https://other.cumulocity.com", "x", expiresAt)
	require.ErrorIs(t, err, constants.ErrSessionNotFound)
}

func TestBuildClientConfig_FlagsWinOverSession(t *testing.T) {
	useTempConfig(t)

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{
		URL:      "https://t100.cumulocity.com",
		Tenant:   "t100",
		Username: "admin",
	}
	config.CurrentSession = "t100.cumulocity.com"
	require.NoError(t, saveConfigStruct(config))

	viper.Set("user", "operator")

	clientConfig, session, err := buildClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://t100.cumulocity.com", clientConfig.BaseURL)
	assert.Equal(t, "t100", clientConfig.Tenant)
	assert.Equal(t, "operator", clientConfig.Username)
	assert.Equal(t, "admin", session.Username)
}

func TestCreateClient_Errors(t *testing.T) {
	useTempConfig(t)

	_, err := CreateClient(context.Background())
	require.ErrorIs(t, err, constants.ErrNoBaseURLConfigured)

	viper.Set("url", "https://t100.cumulocity.com")

	_, err = CreateClient(context.Background())
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)

	viper.Set("token", "static-token")

	client, err := CreateClient(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://t100.cumulocity.com", client.BaseURL())
}

func TestCreateClient_SessionToken(t *testing.T) {
	useTempConfig(t)

	token := testSessionToken(t, "t100", "admin")

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{URL: "https://t100.cumulocity.com", Token: token}
	config.CurrentSession = "t100.cumulocity.com"
	require.NoError(t, saveConfigStruct(config))

	client, err := CreateClient(context.Background())
	require.NoError(t, err)

	current, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, current)
}

func testSessionToken(t *testing.T, tenant, user string) string {
	t.Helper()

	claims, err := json.Marshal(map[string]interface{}{
		"exp": time.Now().Add(time.Hour).Unix(),
		"ten": tenant,
		"sub": user,
	})
	require.NoError(t, err)

	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(claims) + ".sig"
}

func TestCreateClient_URLOverrideDropsSessionToken(t *testing.T) {
	useTempConfig(t)

	var authorization atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"t200","domainName":"t200.example.com"}`))
	}))
	t.Cleanup(server.Close)

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{
		URL:   "https://t100.cumulocity.com",
		Token: testSessionToken(t, "t100", "admin"),
	}
	config.CurrentSession = "t100.cumulocity.com"
	require.NoError(t, saveConfigStruct(config))

	viper.Set("url", server.URL)

	_, err := CreateClient(context.Background())
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)

	viper.Set("user", "operator")
	viper.Set("password", "secret")

	client, err := CreateClient(context.Background())
	require.NoError(t, err)

	_, err = client.CurrentTenant().Get(context.Background(), nil)
	require.NoError(t, err)

	sent, _ := authorization.Load().(string)
	assert.True(t, strings.HasPrefix(sent, "Basic "), "unexpected Authorization %q", sent)
	assert.NotContains(t, sent, "Bearer")
}

func TestCreateClient_URLOverrideUsesMatchingSession(t *testing.T) {
	useTempConfig(t)

	t200Token := testSessionToken(t, "t200", "operator")

	config := loadConfig()
	config.Sessions["t100.cumulocity.com"] = &SessionConfig{
		URL:   "https://t100.cumulocity.com",
		Token: testSessionToken(t, "t100", "admin"),
	}
	config.Sessions["t200.cumulocity.com"] = &SessionConfig{
		URL:   "https://t200.cumulocity.com",
		Token: t200Token,
	}
	config.CurrentSession = "t100.cumulocity.com"
	require.NoError(t, saveConfigStruct(config))

	viper.Set("url", "https://T200.cumulocity.com")

	client, err := CreateClient(context.Background())
	require.NoError(t, err)

	current, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, t200Token, current)
}

func TestFindSession(t *testing.T) {
	t.Parallel()

	config := &Config{
		Sessions: map[string]*SessionConfig{
			"localhost": {URL: "http://localhost:8111", Token: "local"},
			"t100":      {URL: "https://t100.cumulocity.com", Token: "t100"},
		},
	}

	tests := []struct {
		baseURL  string
		expected string
	}{
		{baseURL: "https://t100.cumulocity.com", expected: "t100"},
		{baseURL: "t100.cumulocity.com", expected: "t100"},
		{baseURL: "http://localhost:8111", expected: "local"},
		{baseURL: "http://localhost:9000", expected: ""},
		{baseURL: "https://t200.cumulocity.com", expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.baseURL, func(t *testing.T) {
			t.Parallel()

			session := findSession(config, tt.baseURL)
			if tt.expected == "" {
				assert.Nil(t, session)

				return
			}

			require.NotNil(t, session)
			assert.Equal(t, tt.expected, session.Token)
		})
	}
}
