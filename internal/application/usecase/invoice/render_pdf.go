package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// RenderPDFOutput is a rendered invoice document.
type RenderPDFOutput struct {
	Filename string
	Content  []byte
}

// RenderPDFUseCase renders an invoice as a PDF.
type RenderPDFUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	clientRepo  adapter.ClientRepository
	renderer    adapter.InvoiceRenderer
}

// NewRenderPDFUseCase creates a new RenderPDFUseCase instance.
func NewRenderPDFUseCase(
	invoiceRepo adapter.InvoiceRepository,
	clientRepo adapter.ClientRepository,
	renderer adapter.InvoiceRenderer,
) *RenderPDFUseCase {
	return &RenderPDFUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		renderer:    renderer,
	}
}

// Execute renders the invoice with its client, line items, totals and payments.
func (uc *RenderPDFUseCase) Execute(ctx context.Context, tenantID, invoiceID uuid.UUID) (*RenderPDFOutput, error) {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	client, err := findClient(ctx, uc.clientRepo, tenantID, invoice.ClientID)
	if err != nil {
		return nil, err
	}

	content, err := uc.renderer.RenderPDF(ctx, invoice, client)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoicePDFFailed,
			"failed to render invoice",
			err,
		)
	}

	return &RenderPDFOutput{
		Filename: invoice.InvoiceNumber + ".pdf",
		Content:  content,
	}, nil
}
