package c8y

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Adapter prepares an outgoing request before it is sent. The pipeline
// invokes its adapter exactly once per call, after the request is fully
// built.
type Adapter interface {
	Adapt(req *http.Request) (*http.Request, error)
}

// AdapterFunc adapts an ordinary function to the Adapter interface.
type AdapterFunc func(req *http.Request) (*http.Request, error)

// Adapt calls f(req).
func (f AdapterFunc) Adapt(req *http.Request) (*http.Request, error) {
	return f(req)
}

// ChainAdapters composes adapters into one that runs them in order. Nil
// adapters are skipped. The first error stops the chain.
func ChainAdapters(adapters ...Adapter) Adapter {
	chain := make([]Adapter, 0, len(adapters))

	for _, adapter := range adapters {
		if adapter != nil {
			chain = append(chain, adapter)
		}
	}

	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		var err error

		for _, adapter := range chain {
			req, err = adapter.Adapt(req)
			if err != nil {
				return nil, fmt.Errorf("adapter failed: %w", err)
			}
		}

		return req, nil
	})
}

// BaseURLAdapter binds requests built with a relative path to baseURL. A path
// prefix on baseURL ("https://host/proxy") is kept in front of the request
// path.
func BaseURLAdapter(baseURL string) (Adapter, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	if base.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoHostInURL, baseURL)
	}

	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		u := *req.URL
		u.Scheme = base.Scheme
		u.Host = base.Host
		u.User = base.User

		if base.Path != "" {
			u.Path = base.Path + u.Path
			if u.RawPath != "" {
				u.RawPath = base.EscapedPath() + u.RawPath
			}
		}

		req.URL = &u
		req.Host = ""

		return req, nil
	}), nil
}

// HeaderAdapter sets fixed headers on every request.
func HeaderAdapter(headers map[string]string) Adapter {
	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		for key, value := range headers {
			if value != "" {
				req.Header.Set(key, value)
			}
		}

		return req, nil
	})
}

// BasicAuthAdapter authenticates with HTTP basic credentials. The platform
// expects the user as "<tenant>/<username>"; the tenant prefix is dropped
// when tenant is empty.
func BasicAuthAdapter(tenant, username, password string) Adapter {
	user := username
	if tenant != "" {
		user = tenant + "/" + username
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))

	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		req.Header.Set("Authorization", "Basic "+credentials)

		return req, nil
	})
}

// BearerTokenAdapter authenticates with a fixed bearer token.
func BearerTokenAdapter(token string) Adapter {
	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		req.Header.Set("Authorization", "Bearer "+token)

		return req, nil
	})
}

// TokenSource supplies bearer tokens.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// TokenSourceAdapter authenticates with a token fetched from source using the
// request context.
func TokenSourceAdapter(source TokenSource) Adapter {
	return AdapterFunc(func(req *http.Request) (*http.Request, error) {
		token, err := source.GetToken(req.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to get authentication token: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+token)

		return req, nil
	})
}
