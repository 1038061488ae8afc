package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// UpdateTaskInput is a partial task edit. Nil fields keep their stored value.
type UpdateTaskInput struct {
	TenantID     uuid.UUID
	ProjectID    uuid.UUID
	TaskID       uuid.UUID
	Title        *string
	Description  *string
	Status       *entity.TaskStatus
	Priority     *entity.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTaskUseCase handles task update logic.
type UpdateTaskUseCase struct {
	taskRepo adapter.TaskRepository
}

// NewUpdateTaskUseCase creates a new UpdateTaskUseCase instance.
func NewUpdateTaskUseCase(taskRepo adapter.TaskRepository) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{
		taskRepo: taskRepo,
	}
}

// Execute merges the input into the stored task.
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, input UpdateTaskInput) (*entity.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, input.TenantID, input.ProjectID, input.TaskID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTaskNotFound) {
			return nil, domainerror.NewTaskError(
				domainerror.ErrCodeTaskNotFound,
				"task not found",
				domainerror.ErrTaskNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		if *input.Priority != "" {
			task.Priority = *input.Priority
		}
	}
	if input.DueDate != nil {
		d := valueobject.DateOnly(*input.DueDate)
		task.DueDate = &d
	}
	if input.ClearDueDate {
		task.DueDate = nil
	}
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		if *input.Status != task.Status {
			task.SetStatus(*input.Status)
		}
	}

	task.UpdatedAt = time.Now().UTC()
	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}
