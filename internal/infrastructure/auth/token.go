package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The client treats the bearer credential as opaque: only the server decides
// whether a token is valid. Introspection here is best-effort decoding of the
// token's claims for display ("erpcli auth status") and early expiry warnings.
// It never verifies a signature and its result must not gate any request.

// Common errors
var (
	ErrNotAToken = errors.New("credential is not a decodable token")
)

// Claims mirrors the claims the backend embeds in access tokens.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// TokenInfo summarizes the claims of a bearer token.
type TokenInfo struct {
	UserID    string
	Username  string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes a bearer token without verifying its signature. Returns
// ErrNotAToken when the credential is not a JWT at all.
func Inspect(token string) (*TokenInfo, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrNotAToken
	}

	info := &TokenInfo{
		UserID:   claims.UserID,
		Username: claims.Username,
		Issuer:   claims.Issuer,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the token's expiry claim has passed. Tokens without
// an expiry claim never report as expired.
func (i *TokenInfo) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return now.After(i.ExpiresAt)
}

// RemainingTTL returns the time until the token expires, zero when already
// expired or when no expiry claim is present.
func (i *TokenInfo) RemainingTTL(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() {
		return 0
	}
	remaining := i.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
