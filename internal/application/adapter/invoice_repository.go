package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// InvoiceFilter defines filter options for listing invoices.
// Dates bound the issue date and are inclusive.
type InvoiceFilter struct {
	TenantID  uuid.UUID
	Status    *entity.InvoiceStatus
	ClientID  *uuid.UUID
	ProjectID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Search    string // Matches the invoice number
}

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create persists a new invoice with its line items. The invoice number is drawn
	// from the tenant's monthly sequence inside the same transaction and set on invoice.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice with line items, payments and email history.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Invoice, error)

	// FindByFilter retrieves invoices (without children) based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter InvoiceFilter, pagination Pagination) (*entity.InvoiceListResult, error)

	// Update saves header fields and, when replaceLineItems is set, swaps the line items.
	// It fails with ErrInvoiceConcurrentUpdate when the stored version moved on.
	Update(ctx context.Context, invoice *entity.Invoice, replaceLineItems bool) error

	// Delete removes an invoice together with its line items, payments and history.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ApplyPayment locks the invoice, lets apply mutate it and persists the invoice and
	// payment in a single transaction. Nothing is written when apply returns an error.
	ApplyPayment(
		ctx context.Context,
		tenantID, invoiceID uuid.UUID,
		payment *entity.InvoicePayment,
		apply func(invoice *entity.Invoice) error,
	) (*entity.Invoice, error)

	// ListPayments retrieves the payments of an invoice ordered by date descending.
	ListPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]*entity.InvoicePayment, error)

	// AddHistory appends an entry to the invoice's email history.
	AddHistory(ctx context.Context, entry *entity.InvoiceEmailHistory) error

	// FindOverdueCandidates retrieves sent, viewed or partial invoices of every tenant due before today.
	FindOverdueCandidates(ctx context.Context, today time.Time, limit int) ([]*entity.Invoice, error)

	// CountByClient counts the invoices that reference a client.
	CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error)
}
