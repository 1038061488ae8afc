package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// GetProjectUseCase handles fetching one project.
type GetProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewGetProjectUseCase creates a new GetProjectUseCase instance.
func NewGetProjectUseCase(projectRepo adapter.ProjectRepository) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute returns the project.
func (uc *GetProjectUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID) (*entity.Project, error) {
	return FindProject(ctx, uc.projectRepo, tenantID, projectID)
}
