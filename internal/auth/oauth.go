package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// OAuthInternalConfig configures the OAI-Secure login of a tenant.
type OAuthInternalConfig struct {
	// BaseURL is the tenant URL.
	BaseURL string
	// Tenant is sent as tenant_id when set.
	Tenant   string
	Username string
	Password string
	// TFACode is the two-factor code, when the user has TFA enabled.
	TFACode string
	// AccessToken is an initial token, e.g. loaded from a config file.
	AccessToken string
	// HTTPClient sends the login request. A client with a short timeout is
	// used when nil.
	HTTPClient *http.Client
}

// OAuthInternalTokenManager logs in with username and password and renews
// the token shortly before it expires.
type OAuthInternalTokenManager struct {
	config     *OAuthInternalConfig
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewOAuthInternalTokenManager creates a token manager for config.
func NewOAuthInternalTokenManager(config *OAuthInternalConfig) *OAuthInternalTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	manager := &OAuthInternalTokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.setToken(config.AccessToken)
	}

	return manager
}

// GetToken returns a valid access token, logging in if necessary.
func (m *OAuthInternalTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// another caller may have logged in while we waited
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.login(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a new login.
func (m *OAuthInternalTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.login(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuthInternalTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt})
}

// Token returns the current token or nil.
func (m *OAuthInternalTokenManager) Token() *Token {
	return m.store.Get()
}

func (m *OAuthInternalTokenManager) setToken(accessToken string) *Token {
	expiresAt, err := ParseJWTExpiry(accessToken)
	if err != nil {
		expiresAt = time.Now().Add(constants.DefaultTokenLifetime)
	}

	token := &Token{AccessToken: accessToken, TokenType: "bearer", ExpiresAt: expiresAt}
	m.store.Set(token)

	return token
}

func (m *OAuthInternalTokenManager) login(ctx context.Context) (*Token, error) {
	if m.config.Username == "" || m.config.Password == "" {
		return nil, ErrNoCredentials
	}

	form := url.Values{}
	form.Set("grant_type", constants.GrantTypePassword)
	form.Set("username", m.config.Username)
	form.Set("password", m.config.Password)

	if m.config.TFACode != "" {
		form.Set("tfa_code", m.config.TFACode)
	}

	tokenURL := strings.TrimSuffix(m.config.BaseURL, "/") + constants.OAuthTokenPath
	if m.config.Tenant != "" {
		tokenURL += "?tenant_id=" + url.QueryEscape(m.config.Tenant)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set(constants.HeaderContentType, "application/x-www-form-urlencoded")
	req.Header.Set(constants.HeaderAccept, c8y.MediaTypeJSON)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &c8y.TransportError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &c8y.TransportError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		serverErr, ok := c8y.ParseServerError(resp.StatusCode, body)
		if ok {
			return nil, fmt.Errorf("%w: %w", constants.ErrTokenRequestFailed, serverErr)
		}

		return nil, fmt.Errorf("%w: %w", constants.ErrTokenRequestFailed, &c8y.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       body,
		})
	}

	var tokenResp Token

	err = json.Unmarshal(body, &tokenResp)
	if err != nil {
		return nil, &c8y.DecodeError{Target: "token response", Err: err}
	}

	if tokenResp.AccessToken == "" {
		return nil, constants.ErrEmptyAccessToken
	}

	return m.setToken(tokenResp.AccessToken), nil
}
