package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmailAttachment is a file sent along with an email.
type EmailAttachment struct {
	Filename string
	Content  []byte
}

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To          string
	Name        string
	Subject     string
	HTML        string
	Text        string
	Attachments []EmailAttachment
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueInvoiceEmail queues an invoice email and returns the job ID.
	QueueInvoiceEmail(ctx context.Context, input QueueInvoiceEmailInput) (uuid.UUID, error)

	// QueuePaymentReceipt queues a receipt for a recorded payment and returns the job ID.
	QueuePaymentReceipt(ctx context.Context, input QueuePaymentReceiptInput) (uuid.UUID, error)
}

// QueueInvoiceEmailInput represents the input for queueing an invoice email.
type QueueInvoiceEmailInput struct {
	TenantID       uuid.UUID
	InvoiceID      uuid.UUID
	InvoiceNumber  string
	RecipientEmail string
	RecipientName  string
	Total          decimal.Decimal
	AmountDue      decimal.Decimal
	Currency       string
	DueDate        string
	Message        string
}

// QueuePaymentReceiptInput represents the input for queueing a payment receipt.
type QueuePaymentReceiptInput struct {
	TenantID       uuid.UUID
	InvoiceID      uuid.UUID
	InvoiceNumber  string
	RecipientEmail string
	RecipientName  string
	Amount         decimal.Decimal
	AmountDue      decimal.Decimal
	Currency       string
	PaymentDate    string
	Method         string
}
