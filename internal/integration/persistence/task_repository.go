package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

// taskRepository implements the adapter.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *gorm.DB) adapter.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

// Create creates a new task in the database.
func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(model.TaskFromEntity(task)).Error
}

// FindByID retrieves a task of a project by its ID.
func (r *taskRepository) FindByID(ctx context.Context, tenantID, projectID, id uuid.UUID) (*entity.Task, error) {
	var taskModel model.TaskModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ? AND id = ?", tenantID, projectID, id).
		First(&taskModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTaskNotFound
		}
		return nil, result.Error
	}
	return taskModel.ToEntity(), nil
}

// FindByProject retrieves the tasks of a project, optionally filtered by status.
func (r *taskRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND project_id = ?", tenantID, projectID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var models []model.TaskModel
	if err := query.Order("due_date ASC, created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	tasks := make([]*entity.Task, len(models))
	for i := range models {
		tasks[i] = models[i].ToEntity()
	}
	return tasks, nil
}

// Update updates an existing task in the database.
func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Save(model.TaskFromEntity(task)).Error
}

// recurringTaskRepository implements the adapter.RecurringTaskRepository interface.
type recurringTaskRepository struct {
	db *gorm.DB
}

// NewRecurringTaskRepository creates a new recurring task repository instance.
func NewRecurringTaskRepository(db *gorm.DB) adapter.RecurringTaskRepository {
	return &recurringTaskRepository{
		db: db,
	}
}

// Create creates a new recurring task in the database.
func (r *recurringTaskRepository) Create(ctx context.Context, recurring *entity.RecurringTask) error {
	return r.db.WithContext(ctx).Create(model.RecurringTaskFromEntity(recurring)).Error
}

// FindByProject retrieves the recurring tasks of a project.
func (r *recurringTaskRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.RecurringTask, error) {
	var models []model.RecurringTaskModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("next_due_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recurring := make([]*entity.RecurringTask, len(models))
	for i := range models {
		recurring[i] = models[i].ToEntity()
	}
	return recurring, nil
}

// FindDue retrieves active recurring tasks whose next due date is at or before now.
func (r *recurringTaskRepository) FindDue(ctx context.Context, tenantID *uuid.UUID, now time.Time, limit int) ([]*entity.RecurringTask, error) {
	query := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("next_due_date <= ?", now)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}

	var models []model.RecurringTaskModel
	if err := query.Order("next_due_date ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	recurring := make([]*entity.RecurringTask, len(models))
	for i := range models {
		recurring[i] = models[i].ToEntity()
	}
	return recurring, nil
}

// RecordGeneration inserts the occurrence's task unless it already exists and saves the schedule.
func (r *recurringTaskRepository) RecordGeneration(ctx context.Context, recurring *entity.RecurringTask, task *entity.Task) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.TaskModel{}).
			Where("recurring_task_id = ? AND due_date = ?", recurring.ID, *task.DueDate).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing == 0 {
			if err := tx.Create(model.TaskFromEntity(task)).Error; err != nil {
				return fmt.Errorf("failed to create recurring task occurrence: %w", err)
			}
			created = true
		}

		return tx.Save(model.RecurringTaskFromEntity(recurring)).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
