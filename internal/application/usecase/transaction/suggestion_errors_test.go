package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

func TestClassifySuggestionError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AISuggestionErrorCode
	}{
		// Timeout/cancellation errors
		{
			name:         "context deadline exceeded",
			err:          context.DeadlineExceeded,
			expectedCode: domainerror.ErrCodeAITimeout,
		},
		{
			name:         "wrapped context canceled",
			err:          fmt.Errorf("gemini call: %w", context.Canceled),
			expectedCode: domainerror.ErrCodeAITimeout,
		},
		// Rate limiting errors
		{
			name:         "quota error",
			err:          errors.New("quota exceeded"),
			expectedCode: domainerror.ErrCodeAIRateLimited,
		},
		{
			name:         "429 status code error",
			err:          errors.New("HTTP 429: too many requests"),
			expectedCode: domainerror.ErrCodeAIRateLimited,
		},
		// Authentication errors
		{
			name:         "403 forbidden",
			err:          errors.New("403 forbidden"),
			expectedCode: domainerror.ErrCodeAIAuthError,
		},
		{
			name:         "invalid api key",
			err:          errors.New("Invalid API Key supplied"),
			expectedCode: domainerror.ErrCodeAIAuthError,
		},
		// Network errors
		{
			name:         "dial error",
			err:          errors.New("dial tcp: connection refused"),
			expectedCode: domainerror.ErrCodeAIServiceUnavailable,
		},
		{
			name:         "503 error",
			err:          errors.New("googleapi: Error 503"),
			expectedCode: domainerror.ErrCodeAIServiceUnavailable,
		},
		// Everything else
		{
			name:         "unparseable answer",
			err:          errors.New("failed to parse suggestions"),
			expectedCode: domainerror.ErrCodeAIServiceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifySuggestionError(tt.err)
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.NotEmpty(t, result.Message)
		})
	}
}
