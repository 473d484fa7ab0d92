package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "bearer "

var (
	// ErrTokenExpired is returned when a JWT bearer credential carries an exp in the past.
	ErrTokenExpired = errors.New("bearer token expired")
	// ErrNotJWT marks credentials that are opaque to the storefront.
	ErrNotJWT = errors.New("bearer token is not a jwt")
)

// Claims is the subset of the backend-issued token the storefront inspects.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// InspectToken decodes the JWT without verifying its signature. The backend owns
// verification; the storefront only rejects credentials that are already expired.
func InspectToken(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrNotJWT
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}
