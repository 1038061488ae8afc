package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// TaskRepository defines the interface for task persistence operations.
type TaskRepository interface {
	// Create creates a new task in the database.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID retrieves a task of a project by its ID.
	FindByID(ctx context.Context, tenantID, projectID, id uuid.UUID) (*entity.Task, error)

	// FindByProject retrieves the tasks of a project, optionally filtered by status.
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error)

	// Update updates an existing task in the database.
	Update(ctx context.Context, task *entity.Task) error
}

// RecurringTaskRepository defines the interface for recurring task persistence operations.
type RecurringTaskRepository interface {
	// Create creates a new recurring task in the database.
	Create(ctx context.Context, recurring *entity.RecurringTask) error

	// FindByProject retrieves the recurring tasks of a project.
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.RecurringTask, error)

	// FindDue retrieves active recurring tasks whose next due date is at or before now.
	// A nil tenantID searches every tenant.
	FindDue(ctx context.Context, tenantID *uuid.UUID, now time.Time, limit int) ([]*entity.RecurringTask, error)

	// RecordGeneration inserts task and saves the advanced recurring task in one transaction.
	// When a task already exists for the occurrence only the schedule is saved and created is false.
	RecordGeneration(ctx context.Context, recurring *entity.RecurringTask, task *entity.Task) (created bool, err error)
}
