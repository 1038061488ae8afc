package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client is not found in the tenant.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientNameRequired is returned when a client has no name.
	ErrClientNameRequired = errors.New("client name is required")

	// ErrClientNameTooLong is returned when the client name exceeds the maximum length.
	ErrClientNameTooLong = errors.New("client name too long")

	// ErrInvalidClientEmail is returned when the client email is malformed.
	ErrInvalidClientEmail = errors.New("invalid client email")

	// ErrClientHasInvoices is returned when deleting a client that still has invoices.
	ErrClientHasInvoices = errors.New("client has invoices")
)

// ClientErrorCode defines error codes for client errors.
// Format: CLI-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeClientNameRequired  ClientErrorCode = "CLI-010001"
	ErrCodeClientNameTooLong   ClientErrorCode = "CLI-010002"
	ErrCodeInvalidClientEmail  ClientErrorCode = "CLI-010003"
	ErrCodeMissingClientFields ClientErrorCode = "CLI-010004"

	// Lookup errors (02XXXX)
	ErrCodeClientNotFound ClientErrorCode = "CLI-020001"

	// Conflict errors (03XXXX)
	ErrCodeClientHasInvoices ClientErrorCode = "CLI-030001"
)

// ClientError represents a client error with code and message.
type ClientError struct {
	Code    ClientErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError with the given code and message.
func NewClientError(code ClientErrorCode, message string, err error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
