package error

import "errors"

// Invoice delivery errors.
var (
	// ErrEmailQueueFailed is returned when a delivery job cannot be stored.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrEmailJobNotFound is returned when a delivery job does not exist.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrUnknownEmailTemplate is returned for a job whose template the worker cannot render.
	ErrUnknownEmailTemplate = errors.New("unknown email template")

	// ErrEmailAttachmentFailed is returned when the invoice PDF cannot be attached.
	ErrEmailAttachmentFailed = errors.New("failed to attach invoice document")
)

// EmailErrorCode defines error codes for invoice delivery.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EML-010001"
	ErrCodeEmailJobNotFound EmailErrorCode = "EML-010002"

	// Content errors (02XXXX)
	ErrCodeUnknownEmailTemplate  EmailErrorCode = "EML-020001"
	ErrCodeEmailAttachmentFailed EmailErrorCode = "EML-020002"

	// Provider errors (03XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-030001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-030002"
)

// EmailError carries a delivery failure and whether it is worth retrying.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Permanent reports whether retrying the job cannot succeed.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeUnknownEmailTemplate
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether err is a delivery failure that must not be retried.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Permanent()
}
