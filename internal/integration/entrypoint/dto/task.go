package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateTaskRequest represents the request body for task creation.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status      string  `json:"status,omitempty" binding:"omitempty,oneof=todo in_progress review done"`
	Priority    string  `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the request body for a partial task update.
type UpdateTaskRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=todo in_progress review done"`
	Priority     *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	DueDate      *string `json:"due_date,omitempty"`
	ClearDueDate bool    `json:"clear_due_date,omitempty"`
}

// CreateRecurringTaskRequest represents the request body for a recurring task.
type CreateRecurringTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Priority    string  `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	Frequency   string  `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Interval    int     `json:"interval,omitempty" binding:"omitempty,min=1"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date,omitempty"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	DueDate         *string    `json:"due_date,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	RecurringTaskID *string    `json:"recurring_task_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// RecurringTaskResponse represents a recurring task in API responses.
type RecurringTaskResponse struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Priority          string    `json:"priority"`
	Frequency         string    `json:"frequency"`
	Interval          int       `json:"interval"`
	StartDate         string    `json:"start_date"`
	EndDate           *string   `json:"end_date,omitempty"`
	NextDueDate       string    `json:"next_due_date"`
	LastGeneratedDate *string   `json:"last_generated_date,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToTaskResponse converts a task entity.
func ToTaskResponse(t *entity.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID.String(),
		ProjectID:       t.ProjectID.String(),
		Title:           t.Title,
		Description:     t.Description,
		Status:          string(t.Status),
		Priority:        string(t.Priority),
		DueDate:         formatOptionalDate(t.DueDate),
		CompletedAt:     t.CompletedAt,
		RecurringTaskID: formatOptionalID(t.RecurringTaskID),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTaskResponses converts task entities.
func ToTaskResponses(tasks []*entity.Task) []TaskResponse {
	return lo.Map(tasks, func(t *entity.Task, _ int) TaskResponse { return ToTaskResponse(t) })
}

// ToRecurringTaskResponse converts a recurring task entity.
func ToRecurringTaskResponse(r *entity.RecurringTask) RecurringTaskResponse {
	return RecurringTaskResponse{
		ID:                r.ID.String(),
		ProjectID:         r.ProjectID.String(),
		Title:             r.Title,
		Description:       r.Description,
		Priority:          string(r.Priority),
		Frequency:         string(r.Recurrence.Frequency),
		Interval:          r.Recurrence.Interval,
		StartDate:         formatDate(r.StartDate),
		EndDate:           formatOptionalDate(r.EndDate),
		NextDueDate:       formatDate(r.NextDueDate),
		LastGeneratedDate: formatOptionalDate(r.LastGeneratedDate),
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
	}
}

// ToRecurringTaskResponses converts recurring task entities.
func ToRecurringTaskResponses(items []*entity.RecurringTask) []RecurringTaskResponse {
	return lo.Map(items, func(r *entity.RecurringTask, _ int) RecurringTaskResponse { return ToRecurringTaskResponse(r) })
}
