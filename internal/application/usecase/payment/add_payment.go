// Package payment contains invoice payment use cases.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// AddPaymentInput represents the input for recording a payment.
type AddPaymentInput struct {
	TenantID    uuid.UUID
	InvoiceID   uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Method      string
	Reference   string
	Notes       string
	SendReceipt bool
}

// AddPaymentOutput represents the output of recording a payment.
type AddPaymentOutput struct {
	Payment *entity.InvoicePayment
	Invoice *entity.Invoice
}

// AddPaymentUseCase records a payment against an invoice.
type AddPaymentUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	clientRepo   adapter.ClientRepository
	emailService adapter.EmailService
}

// NewAddPaymentUseCase creates a new AddPaymentUseCase instance.
// emailService may be nil, in which case receipts are never sent.
func NewAddPaymentUseCase(
	invoiceRepo adapter.InvoiceRepository,
	clientRepo adapter.ClientRepository,
	emailService adapter.EmailService,
) *AddPaymentUseCase {
	return &AddPaymentUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		emailService: emailService,
	}
}

// Execute applies the payment. The balance check, the invoice update and the payment
// insert happen in one database transaction against the locked invoice row.
func (uc *AddPaymentUseCase) Execute(ctx context.Context, input AddPaymentInput) (*AddPaymentOutput, error) {
	method := strings.TrimSpace(input.Method)
	if input.Date.IsZero() || method == "" {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			"payment date and method are required",
			domainerror.ErrMissingPaymentFields,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	payment := entity.NewInvoicePayment(
		input.TenantID,
		input.InvoiceID,
		input.Amount,
		valueobject.DateOnly(input.Date),
		method,
		input.Reference,
		input.Notes,
	)

	invoice, err := uc.invoiceRepo.ApplyPayment(ctx, input.TenantID, input.InvoiceID, payment,
		func(invoice *entity.Invoice) error {
			return invoice.ApplyPayment(payment.Amount, time.Now().UTC())
		},
	)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		var paymentErr *domainerror.PaymentError
		var invoiceErr *domainerror.InvoiceError
		if errors.As(err, &paymentErr) || errors.As(err, &invoiceErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	slog.Info("Payment recorded",
		"tenant_id", input.TenantID,
		"invoice_id", invoice.ID,
		"payment_id", payment.ID,
		"amount", payment.Amount.StringFixed(2),
		"status", invoice.Status,
	)

	if input.SendReceipt {
		uc.queueReceipt(ctx, invoice, payment)
	}

	return &AddPaymentOutput{
		Payment: payment,
		Invoice: invoice,
	}, nil
}

// queueReceipt is best effort; the payment stands even when the receipt cannot be queued.
func (uc *AddPaymentUseCase) queueReceipt(ctx context.Context, invoice *entity.Invoice, payment *entity.InvoicePayment) {
	if uc.emailService == nil {
		return
	}

	client, err := uc.clientRepo.FindByID(ctx, invoice.TenantID, invoice.ClientID)
	if err != nil || client.Email == "" {
		slog.Warn("Skipping payment receipt, client has no email", "invoice_id", invoice.ID, "error", err)
		return
	}

	jobID, err := uc.emailService.QueuePaymentReceipt(ctx, adapter.QueuePaymentReceiptInput{
		TenantID:       invoice.TenantID,
		InvoiceID:      invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		RecipientEmail: client.Email,
		RecipientName:  client.Name,
		Amount:         payment.Amount,
		AmountDue:      invoice.AmountDue(),
		Currency:       invoice.Currency,
		PaymentDate:    payment.Date.Format(valueobject.DateLayout),
		Method:         payment.Method,
	})
	if err != nil {
		slog.Warn("Failed to queue payment receipt", "invoice_id", invoice.ID, "error", err)
		return
	}

	entry := entity.NewInvoiceEmailHistory(invoice.TenantID, invoice.ID, entity.InvoiceEventReceipt, client.Email, &jobID, "")
	if err := uc.invoiceRepo.AddHistory(ctx, entry); err != nil {
		slog.Warn("Failed to record invoice history", "invoice_id", invoice.ID, "event", entry.Event, "error", err)
	}
}
