package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as logins.
	ShortHTTPTimeout = 10 * time.Second
)

// HTTP headers.
const (
	// HeaderAccept is the Accept header name.
	HeaderAccept = "Accept"

	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderAuthorization is the Authorization header name.
	HeaderAuthorization = "Authorization"

	// HeaderUserAgent is the User-Agent header name.
	HeaderUserAgent = "User-Agent"

	// HeaderProcessingMode selects how the platform processes inbound data.
	HeaderProcessingMode = "X-Cumulocity-Processing-Mode"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "c8y-client-go/1.0"
)

// Time formats.
const (
	// TimeFormat is the timestamp layout used in query parameters.
	TimeFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Paging.
const (
	// StandardPageSize is the page size used by the CLI.
	StandardPageSize = 50

	// MaxPageSize is the largest page size the platform accepts.
	MaxPageSize = 2000
)

// Authentication.
const (
	// OAuthTokenPath is the OAI-Secure login endpoint of a tenant.
	OAuthTokenPath = "/tenant/oauth/token"

	// GrantTypePassword is the grant type of the OAI-Secure login.
	GrantTypePassword = "PASSWORD"

	// DefaultTokenLifetime is assumed when a token carries no expiry claim.
	DefaultTokenLifetime = 15 * time.Minute

	// JWTPartsCount is the number of dot separated parts of a JWT.
	JWTPartsCount = 3
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent requests issued by the CLI.
	DefaultConcurrencyLimit = 4
)

// Output formats.
const (
	// FormatTable renders tables.
	FormatTable = "table"

	// FormatJSON renders indented JSON.
	FormatJSON = "json"

	// FormatYAML renders YAML.
	FormatYAML = "yaml"
)

// Display values.
const (
	// NotAvailable is shown for empty table cells.
	NotAvailable = "N/A"

	// MaxTextDisplayLength truncates long text in tables.
	MaxTextDisplayLength = 60

	// JSONIndent is the indentation used for JSON output.
	JSONIndent = "  "
)

// CLI argument counts.
const (
	// OneArgument is the argument count of single resource commands.
	OneArgument = 1

	// TwoArguments is the argument count of commands addressing a pair.
	TwoArguments = 2

	// ThreeArguments is the argument count of commands writing a keyed value.
	ThreeArguments = 3
)
