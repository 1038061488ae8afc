// Package error defines domain-specific errors for the agency CRM.
package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found in the system.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidLineItem is returned when a line item has a negative quantity or rate.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrInvalidTaxRate is returned when a tax rate is negative.
	ErrInvalidTaxRate = errors.New("invalid tax rate")

	// ErrInvalidDiscount is returned when a discount is negative or a percentage exceeds 100.
	ErrInvalidDiscount = errors.New("invalid discount")

	// ErrInvalidShipping is returned when the shipping amount is negative.
	ErrInvalidShipping = errors.New("invalid shipping amount")

	// ErrInvalidInvoiceDates is returned when the due date precedes the issue date.
	ErrInvalidInvoiceDates = errors.New("due date must not precede issue date")

	// ErrInvalidStatusTransition is returned when a lifecycle transition is not allowed.
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")

	// ErrInvoiceNotEditable is returned when a paid or cancelled invoice is edited.
	ErrInvoiceNotEditable = errors.New("invoice cannot be edited in its current status")

	// ErrTotalBelowAmountPaid is returned when an edit would drop the total below what was already paid.
	ErrTotalBelowAmountPaid = errors.New("invoice total cannot be lower than the amount already paid")

	// ErrInvoiceNotDeletable is returned when deleting an invoice that is not draft or cancelled.
	ErrInvoiceNotDeletable = errors.New("only draft or cancelled invoices can be deleted")

	// ErrMissingRecipient is returned when an invoice is sent without a recipient email.
	ErrMissingRecipient = errors.New("invoice has no recipient email")

	// ErrInvoiceConcurrentUpdate is returned when the invoice row changed under an update.
	ErrInvoiceConcurrentUpdate = errors.New("invoice was modified concurrently")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLineItem         InvoiceErrorCode = "INV-010001"
	ErrCodeInvalidTaxRate          InvoiceErrorCode = "INV-010002"
	ErrCodeInvalidDiscount         InvoiceErrorCode = "INV-010003"
	ErrCodeInvalidShipping         InvoiceErrorCode = "INV-010004"
	ErrCodeMissingInvoiceFields    InvoiceErrorCode = "INV-010005"
	ErrCodeInvalidInvoiceDates     InvoiceErrorCode = "INV-010006"
	ErrCodeInvalidStatusTransition InvoiceErrorCode = "INV-010007"
	ErrCodeInvoiceNotEditable      InvoiceErrorCode = "INV-010008"
	ErrCodeTotalBelowAmountPaid    InvoiceErrorCode = "INV-010009"
	ErrCodeInvoiceNotDeletable     InvoiceErrorCode = "INV-010010"
	ErrCodeMissingRecipient        InvoiceErrorCode = "INV-010011"
	ErrCodeInvalidInvoiceFilter    InvoiceErrorCode = "INV-010012"

	// Lookup errors (02XXXX)
	ErrCodeInvoiceNotFound        InvoiceErrorCode = "INV-020001"
	ErrCodeInvoiceClientNotFound  InvoiceErrorCode = "INV-020002"
	ErrCodeInvoiceProjectNotFound InvoiceErrorCode = "INV-020003"

	// Processing errors (03XXXX)
	ErrCodeInvoiceNumberFailed     InvoiceErrorCode = "INV-030001"
	ErrCodeInvoiceConcurrentUpdate InvoiceErrorCode = "INV-030002"
	ErrCodeInvoicePDFFailed        InvoiceErrorCode = "INV-030003"
	ErrCodeInvoiceEmailFailed      InvoiceErrorCode = "INV-030004"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
