package error

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Payment domain errors.
var (
	// ErrInvalidPaymentAmount is returned when a payment amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrMissingPaymentFields is returned when date or method is missing.
	ErrMissingPaymentFields = errors.New("payment date and method are required")

	// ErrPaymentOnCancelledInvoice is returned when paying a cancelled invoice.
	ErrPaymentOnCancelledInvoice = errors.New("cannot record payment on a cancelled invoice")

	// ErrOverpayment is returned when a payment would exceed the invoice total.
	ErrOverpayment = errors.New("payment exceeds remaining balance")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount      PaymentErrorCode = "PAY-010001"
	ErrCodeMissingPaymentFields      PaymentErrorCode = "PAY-010002"
	ErrCodePaymentOnCancelledInvoice PaymentErrorCode = "PAY-010003"
	ErrCodeOverpayment               PaymentErrorCode = "PAY-010004"

	// Lookup errors (02XXXX)
	ErrCodePaymentInvoiceNotFound PaymentErrorCode = "PAY-020001"
)

// PaymentError represents a payment error with code and message.
// MaxAllowed is set on overpayment errors and holds the remaining balance.
type PaymentError struct {
	Code       PaymentErrorCode
	Message    string
	Err        error
	MaxAllowed *decimal.Decimal
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewOverpaymentError creates the overpayment error carrying the remaining balance.
func NewOverpaymentError(maxAllowed decimal.Decimal) *PaymentError {
	return &PaymentError{
		Code:       ErrCodeOverpayment,
		Message:    "payment exceeds remaining balance, maximum allowed is " + maxAllowed.StringFixed(2),
		Err:        ErrOverpayment,
		MaxAllowed: &maxAllowed,
	}
}
