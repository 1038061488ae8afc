package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// ListTemplatesUseCase handles listing recurring invoice templates.
type ListTemplatesUseCase struct {
	templateRepo adapter.RecurringInvoiceRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(templateRepo adapter.RecurringInvoiceRepository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		templateRepo: templateRepo,
	}
}

// Execute lists the tenant's templates.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*entity.RecurringInvoiceTemplate, error) {
	templates, err := uc.templateRepo.FindByTenant(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}
	return templates, nil
}

// GetTemplateUseCase handles fetching one template.
type GetTemplateUseCase struct {
	templateRepo adapter.RecurringInvoiceRepository
}

// NewGetTemplateUseCase creates a new GetTemplateUseCase instance.
func NewGetTemplateUseCase(templateRepo adapter.RecurringInvoiceRepository) *GetTemplateUseCase {
	return &GetTemplateUseCase{
		templateRepo: templateRepo,
	}
}

// Execute returns the template.
func (uc *GetTemplateUseCase) Execute(ctx context.Context, tenantID, templateID uuid.UUID) (*entity.RecurringInvoiceTemplate, error) {
	return findTemplate(ctx, uc.templateRepo, tenantID, templateID)
}
