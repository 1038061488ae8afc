package adapter

import (
	"context"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// InvoiceRenderer turns an invoice into a printable document.
type InvoiceRenderer interface {
	// RenderPDF renders the invoice, with its line items and payments, for the given client.
	RenderPDF(ctx context.Context, invoice *entity.Invoice, client *entity.Client) ([]byte, error)
}
