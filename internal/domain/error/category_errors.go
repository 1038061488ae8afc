package error

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameExists  = errors.New("category name already exists")
	ErrCategoryNameTooLong = errors.New("category name too long")
	ErrInvalidColorFormat  = errors.New("invalid color format")
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrCategoryInUse is returned when deleting a category that transactions still reference.
	ErrCategoryInUse = errors.New("category is in use")
)

// CategoryErrorCode identifies a category failure as CAT-XXYYYY.
type CategoryErrorCode string

const (
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"

	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-020001"

	ErrCodeCategoryInUse CategoryErrorCode = "CAT-030001"
)

// CategoryError carries a CategoryErrorCode for the HTTP layer.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{Code: code, Message: message, Err: err}
}
