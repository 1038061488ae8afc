// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// TransactionModel is a ledger row. Listing and the reports filter on
// tenant and date first, hence the composite index.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_tenant_date,priority:1"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_transactions_tenant_date,priority:2"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProjectID   *uuid.UUID      `gorm:"type:uuid;index"`
	InvoiceID   *uuid.UUID      `gorm:"type:uuid;index"`
	Reference   string          `gorm:"type:varchar(255)"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.Type),
		CategoryID:  m.CategoryID,
		ClientID:    m.ClientID,
		ProjectID:   m.ProjectID,
		InvoiceID:   m.InvoiceID,
		Reference:   m.Reference,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// ToEntityWithCategory expects Category to be preloaded; a nil Category means uncategorized.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	out := &entity.TransactionWithCategory{Transaction: m.ToEntity()}
	if m.Category != nil {
		out.Category = m.Category.ToEntity()
	}
	return out
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:          transaction.ID,
		TenantID:    transaction.TenantID,
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Type:        string(transaction.Type),
		CategoryID:  transaction.CategoryID,
		ClientID:    transaction.ClientID,
		ProjectID:   transaction.ProjectID,
		InvoiceID:   transaction.InvoiceID,
		Reference:   transaction.Reference,
		Notes:       transaction.Notes,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
