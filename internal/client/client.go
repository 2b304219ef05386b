package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/c8y-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/c8y-client/internal/http"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// Client implements the c8y.Client interface.
type Client struct {
	httpClient  *internalhttp.Client
	tokenSource c8y.TokenSource
	baseURL     string
	logger      c8y.Logger

	// Resource clients
	managedObjects      c8y.ManagedObjectsClient
	childReferences     c8y.ChildReferencesClient
	inventoryBinaries   c8y.InventoryBinariesClient
	externalIDs         c8y.ExternalIDsClient
	measurements        c8y.MeasurementsClient
	events              c8y.EventsClient
	eventBinaries       c8y.EventBinariesClient
	alarms              c8y.AlarmsClient
	operations          c8y.OperationsClient
	applications        c8y.ApplicationsClient
	applicationVersions c8y.ApplicationVersionsClient
	auditRecords        c8y.AuditRecordsClient
	currentUser         c8y.CurrentUserClient
	tenantOptions       c8y.TenantOptionsClient
	currentTenant       c8y.CurrentTenantClient
}

// New creates a new Cumulocity API client. config.BaseURL must be an
// absolute URL.
func New(ctx context.Context, config *c8y.Config) (*Client, error) {
	if config == nil {
		return nil, c8y.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, c8y.ErrBaseURLRequired
	}

	authAdapter, tokenSource := createAuthAdapter(config)

	httpClient, err := internalhttp.NewClient(
		config.BaseURL,
		c8y.ChainAdapters(authAdapter, config.Adapter),
		createHTTPClientOptions(config)...,
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	client := &Client{
		httpClient:  httpClient,
		tokenSource: tokenSource,
		baseURL:     config.BaseURL,
		logger:      config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createAuthAdapter selects the authentication adapter for config. The token
// source is returned when the client authenticates with bearer tokens.
func createAuthAdapter(config *c8y.Config) (c8y.Adapter, c8y.TokenSource) {
	switch {
	case config.TokenSource != nil:
		return c8y.TokenSourceAdapter(config.TokenSource), config.TokenSource
	case config.Token != "":
		manager := auth.NewStaticTokenManager(config.Token)

		return c8y.TokenSourceAdapter(manager), manager
	case config.UseOAuthInternal && config.Username != "" && config.Password != "":
		manager := auth.NewOAuthInternalTokenManager(&auth.OAuthInternalConfig{
			BaseURL:    config.BaseURL,
			Tenant:     config.Tenant,
			Username:   config.Username,
			Password:   config.Password,
			TFACode:    config.TFACode,
			HTTPClient: config.HTTPClient,
		})

		return c8y.TokenSourceAdapter(manager), manager
	case config.Username != "" && config.Password != "":
		return c8y.BasicAuthAdapter(config.Tenant, config.Username, config.Password), nil
	}

	return nil, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *c8y.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.Transport != nil {
		httpOpts = append(httpOpts, internalhttp.WithTransport(config.Transport))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// BaseURL returns the tenant URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetToken returns the current bearer token. It fails with
// c8y.ErrNotAuthenticated when the client does not use bearer tokens.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenSource == nil {
		return "", c8y.ErrNotAuthenticated
	}

	token, err := c.tokenSource.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// ManagedObjects implements c8y.Client.ManagedObjects.
func (c *Client) ManagedObjects() c8y.ManagedObjectsClient {
	return c.managedObjects
}

// ChildReferences implements c8y.Client.ChildReferences.
func (c *Client) ChildReferences() c8y.ChildReferencesClient {
	return c.childReferences
}

// InventoryBinaries implements c8y.Client.InventoryBinaries.
func (c *Client) InventoryBinaries() c8y.InventoryBinariesClient {
	return c.inventoryBinaries
}

// ExternalIDs implements c8y.Client.ExternalIDs.
func (c *Client) ExternalIDs() c8y.ExternalIDsClient {
	return c.externalIDs
}

// Measurements implements c8y.Client.Measurements.
func (c *Client) Measurements() c8y.MeasurementsClient {
	return c.measurements
}

// Events implements c8y.Client.Events.
func (c *Client) Events() c8y.EventsClient {
	return c.events
}

// EventBinaries implements c8y.Client.EventBinaries.
func (c *Client) EventBinaries() c8y.EventBinariesClient {
	return c.eventBinaries
}

// Alarms implements c8y.Client.Alarms.
func (c *Client) Alarms() c8y.AlarmsClient {
	return c.alarms
}

// Operations implements c8y.Client.Operations.
func (c *Client) Operations() c8y.OperationsClient {
	return c.operations
}

// Applications implements c8y.Client.Applications.
func (c *Client) Applications() c8y.ApplicationsClient {
	return c.applications
}

// ApplicationVersions implements c8y.Client.ApplicationVersions.
func (c *Client) ApplicationVersions() c8y.ApplicationVersionsClient {
	return c.applicationVersions
}

// AuditRecords implements c8y.Client.AuditRecords.
func (c *Client) AuditRecords() c8y.AuditRecordsClient {
	return c.auditRecords
}

// CurrentUser implements c8y.Client.CurrentUser.
func (c *Client) CurrentUser() c8y.CurrentUserClient {
	return c.currentUser
}

// TenantOptions implements c8y.Client.TenantOptions.
func (c *Client) TenantOptions() c8y.TenantOptionsClient {
	return c.tenantOptions
}

// CurrentTenant implements c8y.Client.CurrentTenant.
func (c *Client) CurrentTenant() c8y.CurrentTenantClient {
	return c.currentTenant
}

// initializeResourceClients initializes all resource-specific clients. They
// share one pipeline.
func (c *Client) initializeResourceClients() {
	c.managedObjects = NewManagedObjectsClient(c.httpClient)
	c.childReferences = NewChildReferencesClient(c.httpClient)
	c.inventoryBinaries = NewInventoryBinariesClient(c.httpClient)
	c.externalIDs = NewExternalIDsClient(c.httpClient)
	c.measurements = NewMeasurementsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
	c.eventBinaries = NewEventBinariesClient(c.httpClient)
	c.alarms = NewAlarmsClient(c.httpClient)
	c.operations = NewOperationsClient(c.httpClient)
	c.applications = NewApplicationsClient(c.httpClient)
	c.applicationVersions = NewApplicationVersionsClient(c.httpClient)
	c.auditRecords = NewAuditRecordsClient(c.httpClient)
	c.currentUser = NewCurrentUserClient(c.httpClient)
	c.tenantOptions = NewTenantOptionsClient(c.httpClient)
	c.currentTenant = NewCurrentTenantClient(c.httpClient)
}

// loggerAdapter adapts c8y.Logger to http.Logger.
type loggerAdapter struct {
	logger c8y.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ c8y.Client = (*Client)(nil)
