package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// DeleteInvoiceUseCase removes draft or cancelled invoices.
type DeleteInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute deletes the invoice along with its line items, payments and history.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, tenantID, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != entity.InvoiceStatusDraft && invoice.Status != entity.InvoiceStatusCancelled {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotDeletable,
			"only draft or cancelled invoices can be deleted",
			domainerror.ErrInvoiceNotDeletable,
		)
	}

	if err := uc.invoiceRepo.Delete(ctx, tenantID, invoiceID); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return invoiceNotFound()
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	slog.Info("Invoice deleted", "tenant_id", tenantID, "invoice_id", invoiceID, "invoice_number", invoice.InvoiceNumber)
	return nil
}
