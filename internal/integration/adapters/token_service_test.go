package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID, tenantID := uuid.New(), uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID, tenantID, "ops@agency.test")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "ops@agency.test", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	signer := svc.(*tokenService)
	other := NewTokenService("other-secret", time.Hour)

	foreign, err := other.GenerateAccessToken(context.Background(), uuid.New(), uuid.New(), "")
	require.NoError(t, err)

	expired, err := signer.sign(uuid.New(), uuid.New(), "", tokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	refresh, err := signer.sign(uuid.New(), uuid.New(), "", "refresh", time.Hour)
	require.NoError(t, err)

	noTenant, err := signer.sign(uuid.New(), uuid.Nil, "", tokenTypeAccess, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{TokenType: tokenTypeAccess}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"wrong secret", foreign, domainerror.ErrInvalidToken},
		{"expired", expired, domainerror.ErrExpiredToken},
		{"refresh type", refresh, domainerror.ErrInvalidToken},
		{"no tenant", noTenant, domainerror.ErrMissingTenant},
		{"alg none", none, domainerror.ErrInvalidToken},
		{"garbage", "not.a.token", domainerror.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
