// Package email queues and delivers invoice mail.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service. appBaseURL is used to link invoices
// from the email body and may be empty.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// QueueInvoiceEmail queues an invoice email. The worker attaches the PDF when it is sent.
func (s *Service) QueueInvoiceEmail(ctx context.Context, input adapter.QueueInvoiceEmailInput) (uuid.UUID, error) {
	subject := fmt.Sprintf("Invoice %s", input.InvoiceNumber)

	templateData := map[string]interface{}{
		"invoice_number": input.InvoiceNumber,
		"total":          formatMoney(input.Currency, input.Total),
		"amount_due":     formatMoney(input.Currency, input.AmountDue),
		"due_date":       input.DueDate,
		"message":        input.Message,
	}
	if s.appBaseURL != "" {
		templateData["invoice_url"] = fmt.Sprintf("%s/invoices/%s", s.appBaseURL, input.InvoiceID)
	}

	invoiceID := input.InvoiceID
	job := entity.NewEmailJob(
		input.TenantID,
		&invoiceID,
		entity.TemplateInvoice,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return uuid.Nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue invoice email",
			err,
		)
	}

	return job.ID, nil
}

// QueuePaymentReceipt queues a receipt for a recorded payment.
func (s *Service) QueuePaymentReceipt(ctx context.Context, input adapter.QueuePaymentReceiptInput) (uuid.UUID, error) {
	subject := fmt.Sprintf("Payment received for invoice %s", input.InvoiceNumber)

	templateData := map[string]interface{}{
		"invoice_number": input.InvoiceNumber,
		"amount":         formatMoney(input.Currency, input.Amount),
		"amount_due":     formatMoney(input.Currency, input.AmountDue),
		"payment_date":   input.PaymentDate,
		"method":         input.Method,
		"paid_in_full":   !input.AmountDue.IsPositive(),
	}

	invoiceID := input.InvoiceID
	job := entity.NewEmailJob(
		input.TenantID,
		&invoiceID,
		entity.TemplatePaymentReceipt,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return uuid.Nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue payment receipt",
			err,
		)
	}

	return job.ID, nil
}

func formatMoney(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(2)
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
