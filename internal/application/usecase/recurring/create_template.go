package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// CreateTemplateInput represents the input for creating a recurring invoice template.
type CreateTemplateInput struct {
	TenantID uuid.UUID
	TemplateInput
}

// CreateTemplateUseCase handles template creation logic.
type CreateTemplateUseCase struct {
	templateRepo adapter.RecurringInvoiceRepository
	validator    templateValidator
}

// NewCreateTemplateUseCase creates a new CreateTemplateUseCase instance.
func NewCreateTemplateUseCase(
	templateRepo adapter.RecurringInvoiceRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo: templateRepo,
		validator:    templateValidator{clientRepo: clientRepo, projectRepo: projectRepo},
	}
}

// Execute validates and stores a new active template.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input CreateTemplateInput) (*entity.RecurringInvoiceTemplate, error) {
	client, err := uc.validator.check(ctx, input.TenantID, input.ClientID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	tpl := entity.NewRecurringInvoiceTemplate(
		input.TenantID,
		input.ClientID,
		input.ProjectID,
		input.Name,
		valueobject.Recurrence{Frequency: input.Frequency, Interval: input.Interval},
		input.StartDate,
		input.EndDate,
	)
	if err := apply(tpl, input.TemplateInput, currencyFor(client)); err != nil {
		return nil, err
	}

	if err := uc.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}

	slog.Info("Recurring invoice template created",
		"tenant_id", input.TenantID,
		"template_id", tpl.ID,
		"next_generation_date", tpl.NextGenerationDate,
	)
	return tpl, nil
}
