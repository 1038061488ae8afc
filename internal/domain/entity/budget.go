package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// ProjectBudget is the money allocated to a project. A project has at most one.
type ProjectBudget struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ProjectID      uuid.UUID
	TotalAllocated decimal.Decimal
	Currency       string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProjectBudget creates a budget for a project.
func NewProjectBudget(tenantID, projectID uuid.UUID, allocated decimal.Decimal, currency, notes string) *ProjectBudget {
	now := time.Now().UTC()

	return &ProjectBudget{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProjectID:      projectID,
		TotalAllocated: allocated,
		Currency:       currency,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// BudgetCategory is an allocation bucket inside a project budget.
type BudgetCategory struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Allocated decimal.Decimal
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudgetCategory creates an allocation bucket.
func NewBudgetCategory(tenantID, projectID uuid.UUID, name string, allocated decimal.Decimal, color string) *BudgetCategory {
	now := time.Now().UTC()

	return &BudgetCategory{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ProjectID: projectID,
		Name:      name,
		Allocated: allocated,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BudgetExpense is money spent against a project budget.
type BudgetExpense struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ProjectID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Vendor      string
	CreatedAt   time.Time
}

// NewBudgetExpense creates an expense record.
func NewBudgetExpense(tenantID, projectID uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, date time.Time, description, vendor string) *BudgetExpense {
	return &BudgetExpense{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProjectID:   projectID,
		CategoryID:  categoryID,
		Amount:      amount,
		Date:        date,
		Description: description,
		Vendor:      vendor,
		CreatedAt:   time.Now().UTC(),
	}
}

// Utilization is allocated versus spent for a budget or one of its categories.
type Utilization struct {
	Allocated             decimal.Decimal
	Spent                 decimal.Decimal
	Remaining             decimal.Decimal
	UtilizationPercentage decimal.Decimal
}

// NewUtilization derives remaining and spent/allocated*100. A zero allocation yields 0%.
func NewUtilization(allocated, spent decimal.Decimal) Utilization {
	pct := decimal.Zero
	if allocated.IsPositive() {
		pct = valueobject.RoundMoney(spent.Div(allocated).Mul(decimal.NewFromInt(100)))
	}

	return Utilization{
		Allocated:             allocated,
		Spent:                 spent,
		Remaining:             allocated.Sub(spent),
		UtilizationPercentage: pct,
	}
}

// CategoryUtilization is the utilization of one budget category.
type CategoryUtilization struct {
	Category    *BudgetCategory
	Utilization Utilization
}

// BudgetOverview is a project budget with its spending.
type BudgetOverview struct {
	Budget        *ProjectBudget
	Utilization   Utilization
	Categories    []CategoryUtilization
	Uncategorized decimal.Decimal
}
