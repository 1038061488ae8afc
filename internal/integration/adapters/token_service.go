// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

const (
	defaultAccessTokenDuration = 15 * time.Minute
	clockSkew                  = 10 * time.Second

	tokenTypeAccess = "access"
	tokenIssuer     = "agency-crm"
)

// AccessClaims is the JWT body. The user ID travels in the subject.
type AccessClaims struct {
	TenantID  string `json:"tenant_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret   []byte
	duration time.Duration
	parser   *jwt.Parser
}

// NewTokenService returns an HS256 token service. A zero duration uses 15 minutes.
func NewTokenService(secret string, duration time.Duration) adapter.TokenService {
	if duration <= 0 {
		duration = defaultAccessTokenDuration
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

func (s *tokenService) GenerateAccessToken(_ context.Context, userID, tenantID uuid.UUID, email string) (string, error) {
	token, err := s.sign(userID, tenantID, email, tokenTypeAccess, s.duration)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

func (s *tokenService) sign(userID, tenantID uuid.UUID, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		TenantID:  tenantID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateAccessToken returns ErrExpiredToken for expired tokens, ErrMissingTenant
// for tokens without a tenant and ErrInvalidToken for everything else.
func (s *tokenService) ValidateAccessToken(_ context.Context, raw string) (*adapter.TokenClaims, error) {
	var claims AccessClaims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: unexpected token type %q", domainerror.ErrInvalidToken, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domainerror.ErrInvalidToken)
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil || tenantID == uuid.Nil {
		return nil, domainerror.ErrMissingTenant
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		TenantID:  tenantID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
