package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ProjectBudgetModel represents the project_budgets table in the database.
type ProjectBudgetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	TotalAllocated decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ProjectBudgetModel.
func (ProjectBudgetModel) TableName() string {
	return "project_budgets"
}

// ToEntity converts a ProjectBudgetModel to a domain ProjectBudget entity.
func (m *ProjectBudgetModel) ToEntity() *entity.ProjectBudget {
	return &entity.ProjectBudget{
		ID:             m.ID,
		TenantID:       m.TenantID,
		ProjectID:      m.ProjectID,
		TotalAllocated: m.TotalAllocated,
		Currency:       m.Currency,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ProjectBudgetFromEntity creates a ProjectBudgetModel from a domain ProjectBudget entity.
func ProjectBudgetFromEntity(b *entity.ProjectBudget) *ProjectBudgetModel {
	return &ProjectBudgetModel{
		ID:             b.ID,
		TenantID:       b.TenantID,
		ProjectID:      b.ProjectID,
		TotalAllocated: b.TotalAllocated,
		Currency:       b.Currency,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// BudgetCategoryModel represents the budget_categories table in the database.
type BudgetCategoryModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Allocated decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Color     string          `gorm:"type:varchar(7)"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetCategoryModel.
func (BudgetCategoryModel) TableName() string {
	return "budget_categories"
}

// ToEntity converts a BudgetCategoryModel to a domain BudgetCategory entity.
func (m *BudgetCategoryModel) ToEntity() *entity.BudgetCategory {
	return &entity.BudgetCategory{
		ID:        m.ID,
		TenantID:  m.TenantID,
		ProjectID: m.ProjectID,
		Name:      m.Name,
		Allocated: m.Allocated,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetCategoryFromEntity creates a BudgetCategoryModel from a domain BudgetCategory entity.
func BudgetCategoryFromEntity(c *entity.BudgetCategory) *BudgetCategoryModel {
	return &BudgetCategoryModel{
		ID:        c.ID,
		TenantID:  c.TenantID,
		ProjectID: c.ProjectID,
		Name:      c.Name,
		Allocated: c.Allocated,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// BudgetExpenseModel represents the budget_expenses table in the database.
type BudgetExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	Description string          `gorm:"type:varchar(500)"`
	Vendor      string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetExpenseModel.
func (BudgetExpenseModel) TableName() string {
	return "budget_expenses"
}

// ToEntity converts a BudgetExpenseModel to a domain BudgetExpense entity.
func (m *BudgetExpenseModel) ToEntity() *entity.BudgetExpense {
	return &entity.BudgetExpense{
		ID:          m.ID,
		TenantID:    m.TenantID,
		ProjectID:   m.ProjectID,
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		Vendor:      m.Vendor,
		CreatedAt:   m.CreatedAt,
	}
}

// BudgetExpenseFromEntity creates a BudgetExpenseModel from a domain BudgetExpense entity.
func BudgetExpenseFromEntity(e *entity.BudgetExpense) *BudgetExpenseModel {
	return &BudgetExpenseModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		ProjectID:   e.ProjectID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		Vendor:      e.Vendor,
		CreatedAt:   e.CreatedAt,
	}
}
