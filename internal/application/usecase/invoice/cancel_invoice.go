package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// CancelInvoiceInput represents the input for cancelling an invoice.
type CancelInvoiceInput struct {
	TenantID  uuid.UUID
	InvoiceID uuid.UUID
	Reason    string
}

// CancelInvoiceUseCase voids an unpaid invoice.
type CancelInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewCancelInvoiceUseCase creates a new CancelInvoiceUseCase instance.
func NewCancelInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute cancels the invoice. Cancelled invoices accept no further payments.
func (uc *CancelInvoiceUseCase) Execute(ctx context.Context, input CancelInvoiceInput) (*entity.Invoice, error) {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.Update(ctx, invoice, false); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	entry := entity.NewInvoiceEmailHistory(input.TenantID, invoice.ID, entity.InvoiceEventCancelled, "", nil, input.Reason)
	if err := uc.invoiceRepo.AddHistory(ctx, entry); err != nil {
		slog.Warn("Failed to record invoice history", "invoice_id", invoice.ID, "event", entry.Event, "error", err)
	}

	slog.Info("Invoice cancelled", "tenant_id", input.TenantID, "invoice_id", invoice.ID)
	return invoice, nil
}
