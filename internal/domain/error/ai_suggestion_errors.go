package error

import "errors"

// Category suggestion errors.
var (
	// ErrAIServiceUnavailable is returned when no suggestion provider is configured.
	ErrAIServiceUnavailable = errors.New("category suggestion service is not configured")

	// ErrAIServiceError is returned when the AI service encounters an error.
	ErrAIServiceError = errors.New("ai service error")

	// ErrAINoCategories is returned when the tenant has no categories to choose from.
	ErrAINoCategories = errors.New("no categories available for suggestion")

	// ErrAIEmptyDescription is returned when there is nothing to classify.
	ErrAIEmptyDescription = errors.New("description cannot be empty")

	// ErrAIRateLimited is returned when the provider throttles the request.
	ErrAIRateLimited = errors.New("ai service rate limited")

	// ErrAITimeout is returned when the provider did not answer in time.
	ErrAITimeout = errors.New("ai service timed out")

	// ErrAIAuth is returned when the provider rejects the configured credentials.
	ErrAIAuth = errors.New("ai service rejected credentials")
)

// AISuggestionErrorCode defines error codes for AI categorization errors.
// Format: AIC-XXYYYY where XX is category and YYYY is specific error.
type AISuggestionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAIEmptyDescription AISuggestionErrorCode = "AIC-010001"
	ErrCodeAINoCategories     AISuggestionErrorCode = "AIC-010002"

	// External service errors (02XXXX)
	ErrCodeAIServiceError       AISuggestionErrorCode = "AIC-020001"
	ErrCodeAIServiceUnavailable AISuggestionErrorCode = "AIC-020002"
	ErrCodeAIRateLimited        AISuggestionErrorCode = "AIC-020003"
	ErrCodeAITimeout            AISuggestionErrorCode = "AIC-020004"
	ErrCodeAIAuthError          AISuggestionErrorCode = "AIC-020005"
)

// AISuggestionError represents an AI categorization error with code and message.
type AISuggestionError struct {
	Code    AISuggestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AISuggestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AISuggestionError) Unwrap() error {
	return e.Err
}

// NewAISuggestionError creates a new AISuggestionError with the given code and message.
func NewAISuggestionError(code AISuggestionErrorCode, message string, err error) *AISuggestionError {
	return &AISuggestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
