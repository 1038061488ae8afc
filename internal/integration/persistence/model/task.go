package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// TaskModel represents the tasks table in the database.
type TaskModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title           string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	Priority        string     `gorm:"type:varchar(10);not null"`
	DueDate         *time.Time `gorm:"type:date;uniqueIndex:idx_tasks_recurrence,priority:2"`
	CompletedAt     *time.Time `gorm:"type:timestamp"`
	RecurringTaskID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_tasks_recurrence,priority:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the TaskModel.
func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity converts a TaskModel to a domain Task entity.
func (m *TaskModel) ToEntity() *entity.Task {
	return &entity.Task{
		ID:              m.ID,
		TenantID:        m.TenantID,
		ProjectID:       m.ProjectID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          entity.TaskStatus(m.Status),
		Priority:        entity.TaskPriority(m.Priority),
		DueDate:         m.DueDate,
		CompletedAt:     m.CompletedAt,
		RecurringTaskID: m.RecurringTaskID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TaskFromEntity creates a TaskModel from a domain Task entity.
func TaskFromEntity(task *entity.Task) *TaskModel {
	return &TaskModel{
		ID:              task.ID,
		TenantID:        task.TenantID,
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          string(task.Status),
		Priority:        string(task.Priority),
		DueDate:         task.DueDate,
		CompletedAt:     task.CompletedAt,
		RecurringTaskID: task.RecurringTaskID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// RecurringTaskModel represents the recurring_tasks table in the database.
type RecurringTaskModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title             string     `gorm:"type:varchar(255);not null"`
	Description       string     `gorm:"type:text"`
	Priority          string     `gorm:"type:varchar(10);not null"`
	Frequency         string     `gorm:"type:varchar(20);not null"`
	Interval          int        `gorm:"column:interval_count;not null"`
	StartDate         time.Time  `gorm:"type:date;not null"`
	EndDate           *time.Time `gorm:"type:date"`
	AnchorDay         int        `gorm:"not null"`
	NextDueDate       time.Time  `gorm:"type:date;not null;index"`
	LastGeneratedDate *time.Time `gorm:"type:date"`
	Active            bool       `gorm:"not null;index"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

// TableName returns the table name for the RecurringTaskModel.
func (RecurringTaskModel) TableName() string {
	return "recurring_tasks"
}

// ToEntity converts a RecurringTaskModel to a domain RecurringTask entity.
func (m *RecurringTaskModel) ToEntity() *entity.RecurringTask {
	return &entity.RecurringTask{
		ID:          m.ID,
		TenantID:    m.TenantID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    entity.TaskPriority(m.Priority),
		Recurrence: valueobject.Recurrence{
			Frequency: valueobject.Frequency(m.Frequency),
			Interval:  m.Interval,
		},
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		AnchorDay:         m.AnchorDay,
		NextDueDate:       m.NextDueDate,
		LastGeneratedDate: m.LastGeneratedDate,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// RecurringTaskFromEntity creates a RecurringTaskModel from a domain RecurringTask entity.
func RecurringTaskFromEntity(r *entity.RecurringTask) *RecurringTaskModel {
	return &RecurringTaskModel{
		ID:                r.ID,
		TenantID:          r.TenantID,
		ProjectID:         r.ProjectID,
		Title:             r.Title,
		Description:       r.Description,
		Priority:          string(r.Priority),
		Frequency:         string(r.Recurrence.Frequency),
		Interval:          r.Recurrence.Interval,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		AnchorDay:         r.AnchorDay,
		NextDueDate:       r.NextDueDate,
		LastGeneratedDate: r.LastGeneratedDate,
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
