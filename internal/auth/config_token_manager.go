package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateToken(baseURL, token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps OAuthInternalTokenManager and persists every new
// token to the CLI configuration.
type ConfigTokenManager struct {
	manager         *OAuthInternalTokenManager
	configPersister ConfigPersister
	baseURL         string
	mutex           sync.Mutex
	lastToken       string
}

// NewConfigTokenManager creates a new config-persisting token manager.
func NewConfigTokenManager(config *OAuthInternalConfig, configPersister ConfigPersister) *ConfigTokenManager {
	return &ConfigTokenManager{
		manager:         NewOAuthInternalTokenManager(config),
		configPersister: configPersister,
		baseURL:         config.BaseURL,
		lastToken:       config.AccessToken,
	}
}

// GetToken returns a valid access token, logging in if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a new login.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.manager.SetToken(token, expiresAt)
	m.lastToken = token
}

// GetTokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	token := m.manager.Token()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistIfChanged() {
	token := m.manager.Token()
	if token == nil {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if token.AccessToken == m.lastToken {
		return
	}

	m.lastToken = token.AccessToken

	err := m.persistToken(token)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist token: %v\n", err)
	}
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateToken(m.baseURL, token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	return nil
}
