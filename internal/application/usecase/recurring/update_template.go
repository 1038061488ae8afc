package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// UpdateTemplateInput replaces a template's definition. Active pauses or resumes it.
type UpdateTemplateInput struct {
	TenantID   uuid.UUID
	TemplateID uuid.UUID
	Active     *bool
	TemplateInput
}

// UpdateTemplateUseCase handles template replacement.
type UpdateTemplateUseCase struct {
	templateRepo adapter.RecurringInvoiceRepository
	validator    templateValidator
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	templateRepo adapter.RecurringInvoiceRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo: templateRepo,
		validator:    templateValidator{clientRepo: clientRepo, projectRepo: projectRepo},
	}
}

// Execute validates and saves the new definition. Generated invoices are untouched.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*entity.RecurringInvoiceTemplate, error) {
	tpl, err := findTemplate(ctx, uc.templateRepo, input.TenantID, input.TemplateID)
	if err != nil {
		return nil, err
	}

	client, err := uc.validator.check(ctx, input.TenantID, input.ClientID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.Active != nil {
		tpl.Active = *input.Active
	}
	if err := apply(tpl, input.TemplateInput, currencyFor(client)); err != nil {
		return nil, err
	}

	if err := uc.templateRepo.Update(ctx, tpl, true); err != nil {
		return nil, fmt.Errorf("failed to update recurring template: %w", err)
	}
	return tpl, nil
}

// DeleteTemplateUseCase handles template deletion.
type DeleteTemplateUseCase struct {
	templateRepo adapter.RecurringInvoiceRepository
}

// NewDeleteTemplateUseCase creates a new DeleteTemplateUseCase instance.
func NewDeleteTemplateUseCase(templateRepo adapter.RecurringInvoiceRepository) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{
		templateRepo: templateRepo,
	}
}

// Execute removes the template. Invoices it generated keep existing.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, tenantID, templateID uuid.UUID) error {
	if err := uc.templateRepo.Delete(ctx, tenantID, templateID); err != nil {
		if errors.Is(err, domainerror.ErrRecurringTemplateNotFound) {
			return templateNotFound()
		}
		return fmt.Errorf("failed to delete recurring template: %w", err)
	}
	return nil
}
