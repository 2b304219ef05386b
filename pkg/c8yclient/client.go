// Package c8yclient provides the main entry point for creating Cumulocity IoT API clients
package c8yclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/c8y-client/internal/client"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// New creates a new Cumulocity API client.
func New(ctx context.Context, config *c8y.Config) (c8y.Client, error) {
	if config == nil {
		return nil, c8y.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, c8y.ErrBaseURLRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithToken creates a client that authenticates with a bearer token.
func NewWithToken(ctx context.Context, baseURL, token string) (c8y.Client, error) {
	return New(ctx, &c8y.Config{
		BaseURL: baseURL,
		Token:   token,
	})
}

// NewWithPassword creates a client that authenticates with basic credentials
// of a tenant user.
func NewWithPassword(ctx context.Context, baseURL, tenant, username, password string) (c8y.Client, error) {
	return New(ctx, &c8y.Config{
		BaseURL:  baseURL,
		Tenant:   tenant,
		Username: username,
		Password: password,
	})
}

// NewWithOAuthInternal creates a client that logs in through the tenant's
// OAI-Secure endpoint and sends the issued token as a bearer token. The login
// happens on the first request and is repeated when the token expires.
func NewWithOAuthInternal(ctx context.Context, baseURL, tenant, username, password string) (c8y.Client, error) {
	return New(ctx, &c8y.Config{
		BaseURL:          baseURL,
		Tenant:           tenant,
		Username:         username,
		Password:         password,
		UseOAuthInternal: true,
	})
}
