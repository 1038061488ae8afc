package project

import (
	"context"
	"fmt"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// ListProjectsUseCase handles listing projects.
type ListProjectsUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewListProjectsUseCase creates a new ListProjectsUseCase instance.
func NewListProjectsUseCase(projectRepo adapter.ProjectRepository) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
	}
}

// Execute lists projects matching the filter.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, filter adapter.ProjectFilter) ([]*entity.Project, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, invalidStatus(*filter.Status)
	}

	projects, err := uc.projectRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
