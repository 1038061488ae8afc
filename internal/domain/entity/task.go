package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority ranks tasks.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of project work.
type Task struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	ProjectID       uuid.UUID
	Title           string
	Description     string
	Status          TaskStatus
	Priority        TaskPriority
	DueDate         *time.Time
	CompletedAt     *time.Time
	RecurringTaskID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTask creates a new task in todo status.
func NewTask(tenantID, projectID uuid.UUID, title, description string, priority TaskPriority, dueDate *time.Time) *Task {
	now := time.Now().UTC()
	if priority == "" {
		priority = TaskPriorityMedium
	}

	return &Task{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetStatus changes status and tracks completion time.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status
	if status == TaskStatusDone {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = time.Now().UTC()
}

// RecurringTask is a template that spawns a task on every occurrence.
type RecurringTask struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	ProjectID         uuid.UUID
	Title             string
	Description       string
	Priority          TaskPriority
	Recurrence        valueobject.Recurrence
	StartDate         time.Time
	EndDate           *time.Time
	AnchorDay         int
	NextDueDate       time.Time
	LastGeneratedDate *time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRecurringTask creates an active recurring task whose first occurrence is startDate.
func NewRecurringTask(
	tenantID, projectID uuid.UUID,
	title, description string,
	priority TaskPriority,
	recurrence valueobject.Recurrence,
	startDate time.Time,
	endDate *time.Time,
) *RecurringTask {
	now := time.Now().UTC()
	if priority == "" {
		priority = TaskPriorityMedium
	}

	return &RecurringTask{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Recurrence:  recurrence,
		StartDate:   startDate,
		EndDate:     endDate,
		AnchorDay:   startDate.Day(),
		NextDueDate: startDate,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsDue reports whether a task should be generated at now.
func (r *RecurringTask) IsDue(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.EndDate != nil && r.NextDueDate.After(*r.EndDate) {
		return false
	}
	return valueobject.IsDue(r.NextDueDate, now)
}

// BuildTask materializes the task for the current occurrence.
func (r *RecurringTask) BuildTask() *Task {
	due := r.NextDueDate
	task := NewTask(r.TenantID, r.ProjectID, r.Title, r.Description, r.Priority, &due)
	task.RecurringTaskID = &r.ID
	return task
}

// Advance moves to the next occurrence, deactivating past EndDate.
func (r *RecurringTask) Advance() {
	generated := r.NextDueDate
	r.LastGeneratedDate = &generated
	r.NextDueDate = r.Recurrence.Next(generated, r.AnchorDay)
	if r.EndDate != nil && r.NextDueDate.After(*r.EndDate) {
		r.Active = false
	}
	r.UpdatedAt = time.Now().UTC()
}
