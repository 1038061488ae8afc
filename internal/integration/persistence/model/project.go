package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	HourlyRate  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	StartDate   *time.Time      `gorm:"type:date"`
	EndDate     *time.Time      `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
func (m *ProjectModel) ToEntity() *entity.Project {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Project{
		ID:          m.ID,
		TenantID:    m.TenantID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		Description: m.Description,
		Status:      entity.ProjectStatus(m.Status),
		HourlyRate:  m.HourlyRate,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// ProjectFromEntity creates a ProjectModel from a domain Project entity.
func ProjectFromEntity(project *entity.Project) *ProjectModel {
	var deletedAt gorm.DeletedAt
	if project.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *project.DeletedAt, Valid: true}
	}

	return &ProjectModel{
		ID:          project.ID,
		TenantID:    project.TenantID,
		ClientID:    project.ClientID,
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		HourlyRate:  project.HourlyRate,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
