package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
)

type jwtClaims struct {
	Exp    float64 `json:"exp"`
	Tenant string  `json:"ten,omitempty"`
	User   string  `json:"sub,omitempty"`
}

// ParseJWTExpiry returns the expiry of a JWT access token. The signature is
// not verified.
func ParseJWTExpiry(token string) (time.Time, error) {
	claims, err := parseJWTClaims(token)
	if err != nil {
		return time.Time{}, err
	}

	if claims.Exp == 0 {
		return time.Time{}, constants.ErrNoExpirationClaim
	}

	return time.Unix(int64(claims.Exp), 0), nil
}

// ParseJWTSubject returns the tenant and user a token was issued for.
func ParseJWTSubject(token string) (string, string, error) {
	claims, err := parseJWTClaims(token)
	if err != nil {
		return "", "", err
	}

	return claims.Tenant, claims.User, nil
}

func parseJWTClaims(token string) (*jwtClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != constants.JWTPartsCount {
		return nil, constants.ErrInvalidJWTFormat
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	var claims jwtClaims

	err = json.Unmarshal(payload, &claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	return &claims, nil
}
