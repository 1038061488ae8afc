package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// SendInvoiceInput represents the input for sending an invoice.
type SendInvoiceInput struct {
	TenantID       uuid.UUID
	InvoiceID      uuid.UUID
	RecipientEmail string // Overrides the client's email when set
	Message        string
}

// SendInvoiceOutput represents the output of sending an invoice.
type SendInvoiceOutput struct {
	Invoice    *entity.Invoice
	EmailJobID uuid.UUID
	Recipient  string
}

// SendInvoiceUseCase marks an invoice sent and queues it for delivery.
type SendInvoiceUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	clientRepo   adapter.ClientRepository
	emailService adapter.EmailService
}

// NewSendInvoiceUseCase creates a new SendInvoiceUseCase instance.
func NewSendInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	clientRepo adapter.ClientRepository,
	emailService adapter.EmailService,
) *SendInvoiceUseCase {
	return &SendInvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		emailService: emailService,
	}
}

// Execute sends the invoice. Drafts become sent; invoices further along keep their status.
func (uc *SendInvoiceUseCase) Execute(ctx context.Context, input SendInvoiceInput) (*SendInvoiceOutput, error) {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	client, err := findClient(ctx, uc.clientRepo, input.TenantID, invoice.ClientID)
	if err != nil {
		return nil, err
	}

	recipient := strings.TrimSpace(input.RecipientEmail)
	if recipient == "" {
		recipient = client.Email
	}
	if recipient == "" {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingRecipient,
			"client has no email address, provide a recipient",
			domainerror.ErrMissingRecipient,
		)
	}

	if invoice.Status == entity.InvoiceStatusPaid {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidStatusTransition,
			"paid invoices cannot be sent",
			domainerror.ErrInvalidStatusTransition,
		)
	}

	if err := invoice.MarkSent(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.Update(ctx, invoice, false); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	jobID, err := uc.emailService.QueueInvoiceEmail(ctx, adapter.QueueInvoiceEmailInput{
		TenantID:       invoice.TenantID,
		InvoiceID:      invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		RecipientEmail: recipient,
		RecipientName:  client.Name,
		Total:          invoice.Total,
		AmountDue:      invoice.AmountDue(),
		Currency:       invoice.Currency,
		DueDate:        invoice.DueDate.Format(valueobject.DateLayout),
		Message:        input.Message,
	})
	if err != nil {
		slog.Error("Failed to queue invoice email",
			"invoice_id", invoice.ID,
			"recipient", recipient,
			"error", err,
		)
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceEmailFailed,
			"failed to queue invoice email",
			err,
		)
	}

	entry := entity.NewInvoiceEmailHistory(invoice.TenantID, invoice.ID, entity.InvoiceEventSent, recipient, &jobID, input.Message)
	if err := uc.invoiceRepo.AddHistory(ctx, entry); err != nil {
		slog.Warn("Failed to record invoice history", "invoice_id", invoice.ID, "event", entry.Event, "error", err)
	} else {
		invoice.EmailHistory = append([]*entity.InvoiceEmailHistory{entry}, invoice.EmailHistory...)
	}

	slog.Info("Invoice sent",
		"tenant_id", invoice.TenantID,
		"invoice_id", invoice.ID,
		"invoice_number", invoice.InvoiceNumber,
		"email_job_id", jobID,
	)

	return &SendInvoiceOutput{
		Invoice:    invoice,
		EmailJobID: jobID,
		Recipient:  recipient,
	}, nil
}
