package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
)

// ConfigPersister implements the auth.ConfigPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken stores a renewed token in the session of baseURL.
func (p *ConfigPersister) UpdateToken(baseURL, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	session := findPersistedSession(config, baseURL)
	if session == nil {
		return fmt.Errorf("session for '%s': %w", baseURL, constants.ErrSessionNotFound)
	}

	session.Token = token
	if !expiresAt.IsZero() {
		session.TokenExpiresAt = &expiresAt
	}

	now := time.Now()
	session.LastRefreshed = &now

	return saveConfigStruct(config)
}

// findPersistedSession returns the session saved for baseURL.
func findPersistedSession(config *Config, baseURL string) *SessionConfig {
	if session, exists := config.Sessions[sessionName(baseURL)]; exists {
		return session
	}

	for _, session := range config.Sessions {
		if session.URL == baseURL {
			return session
		}
	}

	return nil
}
