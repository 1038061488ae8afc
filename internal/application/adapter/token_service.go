package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims is what the API trusts from a verified token.
type TokenClaims struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService signs and verifies tenant-scoped access tokens. Production
// tokens come from the identity provider sharing the secret; GenerateAccessToken
// serves operators and tests.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, tenantID uuid.UUID, email string) (string, error)

	// ValidateAccessToken fails with ErrExpiredToken, ErrMissingTenant or ErrInvalidToken.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
