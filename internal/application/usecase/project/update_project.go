package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// UpdateProjectInput is a partial project edit. Nil fields keep their stored value.
type UpdateProjectInput struct {
	TenantID     uuid.UUID
	ProjectID    uuid.UUID
	ClientID     *uuid.UUID
	Name         *string
	Description  *string
	Status       *entity.ProjectStatus
	HourlyRate   *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
}

// UpdateProjectUseCase handles project update logic.
type UpdateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	clientRepo  adapter.ClientRepository
}

// NewUpdateProjectUseCase creates a new UpdateProjectUseCase instance.
func NewUpdateProjectUseCase(projectRepo adapter.ProjectRepository, clientRepo adapter.ClientRepository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

// Execute merges the input into the stored project.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*entity.Project, error) {
	p, err := FindProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.ClientID != nil && *input.ClientID != p.ClientID {
		if err := ensureClient(ctx, uc.clientRepo, input.TenantID, *input.ClientID); err != nil {
			return nil, err
		}
		p.ClientID = *input.ClientID
	}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.HourlyRate != nil {
		p.HourlyRate = *input.HourlyRate
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	if input.ClearEndDate {
		p.EndDate = nil
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now().UTC()
	if err := uc.projectRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	slog.Debug("Project updated", "tenant_id", input.TenantID, "project_id", p.ID, "status", p.Status)
	return p, nil
}
