package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURLConfigured = errors.New("no base URL configured, use 'c8y login --url <url>' or set C8Y_URL")
	ErrNotAuthenticated    = errors.New("not authenticated. Use 'c8y login' first")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Token errors.
var (
	ErrInvalidJWTFormat   = errors.New("invalid JWT format")
	ErrNoExpirationClaim  = errors.New("no expiration claim found")
	ErrTokenRequestFailed = errors.New("token request failed")
	ErrEmptyAccessToken   = errors.New("token response carries no access token")
)

// Validation errors.
var (
	ErrInvalidChildKind = errors.New("invalid child kind, expected childDevices, childAssets, or childAdditions")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidDate      = errors.New("invalid date, expected RFC3339 or a relative duration such as -1h")
)

// Session errors.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoSessions        = errors.New("no sessions configured")
	ErrCredentialsNeeded = errors.New("username and password are required")
)
