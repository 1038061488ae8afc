package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrInvalidDateRange is returned when a summary or report range ends before it starts.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrInvalidUpdateColumn is returned when a partial update names a column outside the allow-list.
	ErrInvalidUpdateColumn = errors.New("column cannot be updated")

	// ErrCategoryTypeMismatch is returned when an income transaction is filed under an expense category or the reverse.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidDateRange         TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidTransactionFilter TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidUpdateColumn      TransactionErrorCode = "TXN-010009"
	ErrCodeCategoryTypeMismatch     TransactionErrorCode = "TXN-010010"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"
	ErrCodeTxnClientNotFound   TransactionErrorCode = "TXN-020003"
	ErrCodeTxnProjectNotFound  TransactionErrorCode = "TXN-020004"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
