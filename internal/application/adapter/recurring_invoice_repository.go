package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// RecurringInvoiceRepository defines the interface for recurring invoice template persistence.
type RecurringInvoiceRepository interface {
	// Create creates a new template with its line items.
	Create(ctx context.Context, template *entity.RecurringInvoiceTemplate) error

	// FindByID retrieves a template of the tenant with its line items.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.RecurringInvoiceTemplate, error)

	// FindByTenant retrieves the tenant's templates.
	FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*entity.RecurringInvoiceTemplate, error)

	// Update saves the template and, when replaceLineItems is set, swaps its line items.
	Update(ctx context.Context, template *entity.RecurringInvoiceTemplate, replaceLineItems bool) error

	// Delete removes a template. Invoices it generated keep existing.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindDue retrieves active templates whose next generation date is at or before now.
	// A nil tenantID searches every tenant.
	FindDue(ctx context.Context, tenantID *uuid.UUID, now time.Time, limit int) ([]*entity.RecurringInvoiceTemplate, error)

	// RecordGeneration creates invoice (numbered from the sequence) and saves the advanced
	// template in one transaction. When the occurrence was already generated only the
	// template is saved and created is false.
	RecordGeneration(ctx context.Context, template *entity.RecurringInvoiceTemplate, invoice *entity.Invoice) (created bool, err error)
}
