package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// CreateTaskInput represents the input for creating a task.
type CreateTaskInput struct {
	TenantID    uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    entity.TaskPriority
	Status      entity.TaskStatus
	DueDate     *time.Time
}

// CreateTaskUseCase handles task creation logic.
type CreateTaskUseCase struct {
	taskRepo    adapter.TaskRepository
	projectRepo adapter.ProjectRepository
}

// NewCreateTaskUseCase creates a new CreateTaskUseCase instance.
func NewCreateTaskUseCase(taskRepo adapter.TaskRepository, projectRepo adapter.ProjectRepository) *CreateTaskUseCase {
	return &CreateTaskUseCase{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// Execute creates a task on the project.
func (uc *CreateTaskUseCase) Execute(ctx context.Context, input CreateTaskInput) (*entity.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validatePriority(input.Priority); err != nil {
		return nil, err
	}
	if input.Status != "" {
		if err := validateStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if err := ensureProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	var due *time.Time
	if input.DueDate != nil {
		d := valueobject.DateOnly(*input.DueDate)
		due = &d
	}

	task := entity.NewTask(input.TenantID, input.ProjectID, strings.TrimSpace(input.Title), input.Description, input.Priority, due)
	if input.Status != "" && input.Status != task.Status {
		task.SetStatus(input.Status)
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}
