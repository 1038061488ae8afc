package error

import "errors"

// Token validation outcomes. The auth middleware maps each to its own code.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingTenant = errors.New("token has no tenant")
)

// AuthErrorCode is the code of a 401 or 429 answered before a handler runs.
type AuthErrorCode string

const (
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"

	ErrCodeInvalidToken  AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken  AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken  AuthErrorCode = "AUTH-030003"
	ErrCodeMissingTenant AuthErrorCode = "AUTH-030004"
)
