package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the delivery state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// IsValid reports whether s is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is a piece of client work that tasks, budgets and invoices hang off.
type Project struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ClientID    uuid.UUID
	Name        string
	Description string
	Status      ProjectStatus
	HourlyRate  decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewProject creates a new Project entity in planning status.
func NewProject(tenantID, clientID uuid.UUID, name, description string, hourlyRate decimal.Decimal, startDate, endDate *time.Time) *Project {
	now := time.Now().UTC()

	return &Project{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ClientID:    clientID,
		Name:        name,
		Description: description,
		Status:      ProjectStatusPlanning,
		HourlyRate:  hourlyRate,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
