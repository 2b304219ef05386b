package c8y

import (
	"context"
	"net/http"
	"time"
)

// InventoryClients provides access to inventory and identity resource
// clients.
type InventoryClients interface {
	ManagedObjects() ManagedObjectsClient
	ChildReferences() ChildReferencesClient
	InventoryBinaries() InventoryBinariesClient
	ExternalIDs() ExternalIDsClient
}

// DeviceDataClients provides access to the device data resource clients.
type DeviceDataClients interface {
	Measurements() MeasurementsClient
	Events() EventsClient
	EventBinaries() EventBinariesClient
	Alarms() AlarmsClient
	Operations() OperationsClient
}

// ApplicationClients provides access to application resource clients.
type ApplicationClients interface {
	Applications() ApplicationsClient
	ApplicationVersions() ApplicationVersionsClient
}

// AdministrationClients provides access to tenant and user resource clients.
type AdministrationClients interface {
	AuditRecords() AuditRecordsClient
	CurrentUser() CurrentUserClient
	TenantOptions() TenantOptionsClient
	CurrentTenant() CurrentTenantClient
}

// SessionClient exposes the connection details of a client.
type SessionClient interface {
	// BaseURL returns the tenant URL.
	BaseURL() string
	// GetToken returns the current bearer token, or ErrNotAuthenticated when
	// the client does not authenticate with tokens.
	GetToken(ctx context.Context) (string, error)
}

// Client is the Cumulocity API client.
type Client interface {
	InventoryClients
	DeviceDataClients
	ApplicationClients
	AdministrationClients
	SessionClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a c8y.Client.
//
// # Authentication precedence
//
// The following precedence is applied by c8yclient.New:
//  1. TokenSource: every request asks it for a bearer token.
//  2. Token: used directly as a static bearer token.
//  3. Username/Password with UseOAuthInternal: the client logs in through
//     the tenant OAI-Secure endpoint ("/tenant/oauth/token") and sends the
//     returned token as a bearer token, logging in again shortly before the
//     token expires.
//  4. Username/Password: HTTP basic authentication as "<tenant>/<username>".
//  5. No credentials: requests are sent without authentication.
//
// Adapter, when set, runs after the authentication adapter on every request.
//
// # Timeouts and retries
//
// Requests are sent exactly once. Per-request deadlines should be set on the
// context passed to client methods; HTTPTimeout only bounds the default HTTP
// client and is ignored when HTTPClient is provided.
type Config struct {
	// BaseURL is the tenant URL (e.g., "https://example.cumulocity.com").
	// c8yclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	BaseURL string

	// Tenant is the tenant id used as the basic auth user prefix.
	Tenant string
	// Username and Password are the user credentials.
	Username string
	Password string
	// TFACode is the two-factor code sent with the OAuth internal login.
	TFACode string
	// Token is a static bearer token.
	Token string
	// TokenSource supplies bearer tokens on every request.
	TokenSource TokenSource
	// UseOAuthInternal selects the OAI-Secure login for Username/Password.
	UseOAuthInternal bool

	// Adapter is an additional request adapter chained after authentication.
	Adapter Adapter

	// HTTPClient replaces the default HTTP client. Its Transport is wrapped
	// for tracing.
	HTTPClient *http.Client
	// Transport replaces the default transport of the default HTTP client.
	Transport http.RoundTripper
	// HTTPTimeout bounds the default HTTP client.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request and response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
}
