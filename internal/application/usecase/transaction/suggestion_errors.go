package transaction

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// classifySuggestionError maps a provider failure onto a coded error the API can answer with.
func classifySuggestionError(err error) *domainerror.AISuggestionError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.NewAISuggestionError(
			domainerror.ErrCodeAITimeout,
			"category suggestion took too long, retry with fewer transactions",
			domainerror.ErrAITimeout,
		)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "rate limit", "quota", "429", "resource exhausted"):
		return domainerror.NewAISuggestionError(
			domainerror.ErrCodeAIRateLimited,
			"category suggestion is rate limited, retry in a few minutes",
			domainerror.ErrAIRateLimited,
		)
	case containsAny(errStr, "401", "403", "invalid api key", "unauthorized", "authentication"):
		return domainerror.NewAISuggestionError(
			domainerror.ErrCodeAIAuthError,
			"category suggestion provider rejected the configured credentials",
			domainerror.ErrAIAuth,
		)
	case containsAny(errStr, "connection", "network", "dial", "timeout", "unavailable", "503"):
		return domainerror.NewAISuggestionError(
			domainerror.ErrCodeAIServiceUnavailable,
			"category suggestion service is temporarily unavailable",
			domainerror.ErrAIServiceUnavailable,
		)
	default:
		return domainerror.NewAISuggestionError(
			domainerror.ErrCodeAIServiceError,
			"category suggestion failed",
			domainerror.ErrAIServiceError,
		)
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
