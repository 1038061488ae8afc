package error

import "errors"

// Recurring schedule errors.
var (
	// ErrRecurringTemplateNotFound is returned when a recurring invoice template is not found.
	ErrRecurringTemplateNotFound = errors.New("recurring invoice template not found")

	// ErrRecurringTaskNotFound is returned when a recurring task is not found.
	ErrRecurringTaskNotFound = errors.New("recurring task not found")

	// ErrInvalidRecurrence is returned when frequency or interval is invalid.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrInvalidRecurrenceDates is returned when the end date precedes the start date.
	ErrInvalidRecurrenceDates = errors.New("end date must not precede start date")

	// ErrTemplateHasNoLineItems is returned when a template has nothing to bill.
	ErrTemplateHasNoLineItems = errors.New("recurring template needs at least one line item")
)

// RecurringErrorCode defines error codes for recurring schedule errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRecurrence        RecurringErrorCode = "REC-010001"
	ErrCodeInvalidRecurrenceDates   RecurringErrorCode = "REC-010002"
	ErrCodeTemplateHasNoLineItems   RecurringErrorCode = "REC-010003"
	ErrCodeMissingRecurringFields   RecurringErrorCode = "REC-010004"
	ErrCodeInvalidRecurringTemplate RecurringErrorCode = "REC-010005"

	// Lookup errors (02XXXX)
	ErrCodeRecurringTemplateNotFound RecurringErrorCode = "REC-020001"
	ErrCodeRecurringTaskNotFound     RecurringErrorCode = "REC-020002"
	ErrCodeRecurringClientNotFound   RecurringErrorCode = "REC-020003"
	ErrCodeRecurringProjectNotFound  RecurringErrorCode = "REC-020004"
)

// RecurringError represents a recurring schedule error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
