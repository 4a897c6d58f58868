// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	Username  string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
// The application has a single administrative user, so tokens carry only
// the username and an expiry.
type TokenService interface {
	// GenerateAccessToken generates a signed access token for the admin user.
	GenerateAccessToken(ctx context.Context, username string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
