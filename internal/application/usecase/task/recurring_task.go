package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// CreateRecurringTaskInput represents the input for scheduling a recurring task.
type CreateRecurringTaskInput struct {
	TenantID    uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    entity.TaskPriority
	Frequency   valueobject.Frequency
	Interval    int
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateRecurringTaskUseCase handles recurring task creation.
type CreateRecurringTaskUseCase struct {
	recurringRepo adapter.RecurringTaskRepository
	projectRepo   adapter.ProjectRepository
}

// NewCreateRecurringTaskUseCase creates a new CreateRecurringTaskUseCase instance.
func NewCreateRecurringTaskUseCase(recurringRepo adapter.RecurringTaskRepository, projectRepo adapter.ProjectRepository) *CreateRecurringTaskUseCase {
	return &CreateRecurringTaskUseCase{
		recurringRepo: recurringRepo,
		projectRepo:   projectRepo,
	}
}

// Execute validates the schedule and stores the recurring task.
func (uc *CreateRecurringTaskUseCase) Execute(ctx context.Context, input CreateRecurringTaskInput) (*entity.RecurringTask, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validatePriority(input.Priority); err != nil {
		return nil, err
	}

	recurrence, err := valueobject.NewRecurrence(input.Frequency, input.Interval)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrence,
			err.Error(),
			domainerror.ErrInvalidRecurrence,
		)
	}
	if input.StartDate.IsZero() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"start_date is required",
			nil,
		)
	}

	start := valueobject.DateOnly(input.StartDate)
	var end *time.Time
	if input.EndDate != nil {
		e := valueobject.DateOnly(*input.EndDate)
		if e.Before(start) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurrenceDates,
				"end_date must not precede start_date",
				domainerror.ErrInvalidRecurrenceDates,
			)
		}
		end = &e
	}

	if err := ensureProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	recurring := entity.NewRecurringTask(
		input.TenantID,
		input.ProjectID,
		strings.TrimSpace(input.Title),
		input.Description,
		input.Priority,
		recurrence,
		start,
		end,
	)
	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring task: %w", err)
	}

	slog.Info("Recurring task scheduled",
		"tenant_id", input.TenantID,
		"recurring_task_id", recurring.ID,
		"frequency", recurrence.Frequency,
		"interval", recurrence.Interval,
	)
	return recurring, nil
}

// ListRecurringTasksUseCase handles listing the recurring tasks of a project.
type ListRecurringTasksUseCase struct {
	recurringRepo adapter.RecurringTaskRepository
	projectRepo   adapter.ProjectRepository
}

// NewListRecurringTasksUseCase creates a new ListRecurringTasksUseCase instance.
func NewListRecurringTasksUseCase(recurringRepo adapter.RecurringTaskRepository, projectRepo adapter.ProjectRepository) *ListRecurringTasksUseCase {
	return &ListRecurringTasksUseCase{
		recurringRepo: recurringRepo,
		projectRepo:   projectRepo,
	}
}

// Execute lists the project's recurring tasks.
func (uc *ListRecurringTasksUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.RecurringTask, error) {
	if err := ensureProject(ctx, uc.projectRepo, tenantID, projectID); err != nil {
		return nil, err
	}

	recurring, err := uc.recurringRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring tasks: %w", err)
	}
	return recurring, nil
}
