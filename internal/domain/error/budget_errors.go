package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a project has no budget.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetCategoryNotFound is returned when a budget category is not found.
	ErrBudgetCategoryNotFound = errors.New("budget category not found")

	// ErrInvalidBudgetAmount is returned when an allocation is negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must not be negative")

	// ErrInvalidExpenseAmount is returned when an expense is zero or negative.
	ErrInvalidExpenseAmount = errors.New("expense amount must be greater than zero")

	// ErrBudgetCategoryNameRequired is returned when a budget category has no name.
	ErrBudgetCategoryNameRequired = errors.New("budget category name is required")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount        BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidExpenseAmount       BudgetErrorCode = "BGT-010002"
	ErrCodeBudgetCategoryNameRequired BudgetErrorCode = "BGT-010003"
	ErrCodeMissingBudgetFields        BudgetErrorCode = "BGT-010004"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound         BudgetErrorCode = "BGT-020001"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BGT-020002"
	ErrCodeBudgetProjectNotFound  BudgetErrorCode = "BGT-020003"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
