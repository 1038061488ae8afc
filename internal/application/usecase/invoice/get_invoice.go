package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// GetInvoiceUseCase loads an invoice with its line items, payments and history.
type GetInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute retrieves the invoice.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, tenantID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	return loadInvoice(ctx, uc.invoiceRepo, tenantID, invoiceID)
}
