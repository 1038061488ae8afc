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

// MarkViewedUseCase records that the client opened an invoice.
type MarkViewedUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewMarkViewedUseCase creates a new MarkViewedUseCase instance.
func NewMarkViewedUseCase(invoiceRepo adapter.InvoiceRepository) *MarkViewedUseCase {
	return &MarkViewedUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute moves a sent invoice to viewed. Repeat views only refresh the history.
func (uc *MarkViewedUseCase) Execute(ctx context.Context, tenantID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	firstView := invoice.ViewedAt == nil
	if err := invoice.MarkViewed(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.Update(ctx, invoice, false); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if firstView {
		entry := entity.NewInvoiceEmailHistory(tenantID, invoice.ID, entity.InvoiceEventViewed, "", nil, "")
		if err := uc.invoiceRepo.AddHistory(ctx, entry); err != nil {
			slog.Warn("Failed to record invoice history", "invoice_id", invoice.ID, "event", entry.Event, "error", err)
		}
	}

	return invoice, nil
}
