package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// CategoryModel is a row of the categories table.
type CategoryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_categories_tenant_type"`
	Type        string         `gorm:"type:varchar(10);not null;index:idx_categories_tenant_type"`
	Name        string         `gorm:"type:varchar(50);not null"`
	Description string         `gorm:"type:varchar(255)"`
	Color       string         `gorm:"type:varchar(7);not null"`
	Icon        string         `gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	c := &entity.Category{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Icon:        m.Icon,
		Type:        entity.CategoryType(m.Type),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		c.DeletedAt = &deletedAt
	}
	return c
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(c *entity.Category) *CategoryModel {
	m := &CategoryModel{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Type:        string(c.Type),
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	}
	return m
}
