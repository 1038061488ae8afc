// Package report contains reporting use cases backed by aggregate SQL queries.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ReportRepository defines the read-only aggregate queries used for reporting.
type ReportRepository interface {
	// GetTransactionSummary returns totals and a per-category breakdown for a date range.
	// Nil bounds leave that side of the range open.
	GetTransactionSummary(ctx context.Context, tenantID uuid.UUID, startDate, endDate *time.Time) (*entity.TransactionSummary, error)

	// GetBudgetSpending sums the expenses recorded against a project budget.
	GetBudgetSpending(ctx context.Context, tenantID, projectID uuid.UUID) (*BudgetSpending, error)

	// GetInvoiceTotals aggregates invoices issued within the range by status.
	GetInvoiceTotals(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (*InvoiceTotals, error)

	// GetCollected sums payments received within the range.
	GetCollected(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error)
}

// BudgetSpending is what has been spent against a project budget.
type BudgetSpending struct {
	Total         decimal.Decimal
	ByCategory    map[uuid.UUID]decimal.Decimal
	Uncategorized decimal.Decimal
}

// InvoiceStatusTotals is one status bucket of an invoice aggregate.
type InvoiceStatusTotals struct {
	Status     entity.InvoiceStatus
	Count      int
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
}

// InvoiceTotals groups invoice aggregates by status.
type InvoiceTotals struct {
	ByStatus []InvoiceStatusTotals
}
