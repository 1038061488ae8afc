// Package project contains project management use cases.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

func validate(p *entity.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return domainerror.NewProjectError(
			domainerror.ErrCodeProjectNameRequired,
			"project name is required",
			domainerror.ErrProjectNameRequired,
		)
	}
	if !p.Status.IsValid() {
		return invalidStatus(p.Status)
	}
	if p.HourlyRate.IsNegative() {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidHourlyRate,
			"hourly_rate must not be negative",
			nil,
		)
	}
	return validateDates(p.StartDate, p.EndDate)
}

func invalidStatus(s entity.ProjectStatus) error {
	return domainerror.NewProjectError(
		domainerror.ErrCodeInvalidProjectStatus,
		fmt.Sprintf("invalid project status %q", s),
		domainerror.ErrInvalidProjectStatus,
	)
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domainerror.NewProjectError(
			domainerror.ErrCodeInvalidProjectDates,
			"end_date must not precede start_date",
			domainerror.ErrInvalidProjectDates,
		)
	}
	return nil
}

func notFound() error {
	return domainerror.NewProjectError(
		domainerror.ErrCodeProjectNotFound,
		"project not found",
		domainerror.ErrProjectNotFound,
	)
}

// FindProject returns the project or a coded not-found error. Other use case
// packages scope their routes under a project through it.
func FindProject(ctx context.Context, repo adapter.ProjectRepository, tenantID, projectID uuid.UUID) (*entity.Project, error) {
	p, err := repo.FindByID(ctx, tenantID, projectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return p, nil
}

func ensureClient(ctx context.Context, repo adapter.ClientRepository, tenantID, clientID uuid.UUID) error {
	if _, err := repo.FindByID(ctx, tenantID, clientID); err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return domainerror.NewProjectError(
				domainerror.ErrCodeProjectClientNotFound,
				"client not found",
				domainerror.ErrProjectClientNotFound,
			)
		}
		return fmt.Errorf("failed to find client: %w", err)
	}
	return nil
}

// CreateProjectInput represents the input for creating a project.
type CreateProjectInput struct {
	TenantID    uuid.UUID
	ClientID    uuid.UUID
	Name        string
	Description string
	Status      entity.ProjectStatus
	HourlyRate  decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProjectUseCase handles project creation logic.
type CreateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	clientRepo  adapter.ClientRepository
}

// NewCreateProjectUseCase creates a new CreateProjectUseCase instance.
func NewCreateProjectUseCase(projectRepo adapter.ProjectRepository, clientRepo adapter.ClientRepository) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

// Execute creates a project for an existing client of the tenant.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	if input.ClientID == uuid.Nil {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeMissingProjectFields,
			"client_id is required",
			nil,
		)
	}

	p := entity.NewProject(
		input.TenantID,
		input.ClientID,
		strings.TrimSpace(input.Name),
		input.Description,
		input.HourlyRate,
		input.StartDate,
		input.EndDate,
	)
	if input.Status != "" {
		p.Status = input.Status
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := ensureClient(ctx, uc.clientRepo, input.TenantID, input.ClientID); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}
