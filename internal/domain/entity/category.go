package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType tells whether a category books money in or out.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether t is expense or income.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Matches reports whether a transaction of type tx may be filed under the category.
func (t CategoryType) Matches(tx TransactionType) bool {
	return string(t) == string(tx)
}

const (
	DefaultCategoryColor = "#6366F1"
	DefaultCategoryIcon  = "tag"
)

// Category classifies ledger transactions of a tenant. The description is a
// hint for automatic categorization.
type Category struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Description string
	Color       string
	Icon        string
	Type        CategoryType
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewCategory creates a category, falling back to the default color and icon.
func NewCategory(tenantID uuid.UUID, name, description, color, icon string, categoryType CategoryType) *Category {
	now := time.Now().UTC()
	if color == "" {
		color = DefaultCategoryColor
	}
	if icon == "" {
		icon = DefaultCategoryIcon
	}

	return &Category{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Color:       color,
		Icon:        icon,
		Type:        categoryType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
