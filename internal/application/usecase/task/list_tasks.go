package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// ListTasksUseCase handles listing the tasks of a project.
type ListTasksUseCase struct {
	taskRepo    adapter.TaskRepository
	projectRepo adapter.ProjectRepository
}

// NewListTasksUseCase creates a new ListTasksUseCase instance.
func NewListTasksUseCase(taskRepo adapter.TaskRepository, projectRepo adapter.ProjectRepository) *ListTasksUseCase {
	return &ListTasksUseCase{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// Execute lists the project's tasks, optionally only those in status.
func (uc *ListTasksUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error) {
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
	}
	if err := ensureProject(ctx, uc.projectRepo, tenantID, projectID); err != nil {
		return nil, err
	}

	tasks, err := uc.taskRepo.FindByProject(ctx, tenantID, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
