// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of a backend-issued token the client cares about.
// The client has no signing key, so claims are read but never verified;
// the backend stays the authority on whether a token is accepted.
type Claims struct {
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// ParseUnverified decodes a token's claims without checking its signature
func ParseUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// Expired reports whether tokenString is a JWT whose expiry is at or before now.
// Opaque tokens and JWTs without an expiry are left to the backend to judge.
func Expired(tokenString string, now time.Time) bool {
	claims, err := ParseUnverified(tokenString)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// BearerHeader formats an Authorization header value
func BearerHeader(token string) string {
	return "Bearer " + token
}
