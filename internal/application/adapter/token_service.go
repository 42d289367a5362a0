package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims of a dealer access token.
// Session issuance and refresh live in the upstream auth service; this
// backend only validates access tokens it is handed.
type TokenClaims struct {
	DealerID  uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService validates dealer access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for a dealer.
	// Used by tests and tooling; production tokens come from the auth service.
	GenerateAccessToken(ctx context.Context, dealerID uuid.UUID, email string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
