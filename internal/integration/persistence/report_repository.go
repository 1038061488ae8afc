package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/usecase/report"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// reportRepository implements report.ReportRepository with hand-written aggregate SQL.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *sqlx.DB) report.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

type categoryTotalRow struct {
	CategoryID   uuid.NullUUID   `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Type         string          `db:"type"`
	Total        decimal.Decimal `db:"total"`
	Count        int             `db:"count"`
}

// GetTransactionSummary returns totals and a per-category breakdown for a date range.
func (r *reportRepository) GetTransactionSummary(ctx context.Context, tenantID uuid.UUID, startDate, endDate *time.Time) (*entity.TransactionSummary, error) {
	var where whereClause
	where.add("t.tenant_id = ?", tenantID)
	where.add("t.deleted_at IS NULL")
	if startDate != nil {
		where.add("t.date >= ?", *startDate)
	}
	if endDate != nil {
		where.add("t.date <= ?", *endDate)
	}

	query := `SELECT t.category_id, COALESCE(c.name, '') AS category_name, t.type,
		COALESCE(SUM(t.amount), 0) AS total, COUNT(*) AS count
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id` +
		where.String() +
		` GROUP BY t.category_id, c.name, t.type
		ORDER BY total DESC`

	var rows []categoryTotalRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), where.args...); err != nil {
		return nil, fmt.Errorf("failed to query transaction summary: %w", err)
	}

	summary := &entity.TransactionSummary{
		StartDate: startDate,
		EndDate:   endDate,
		Totals: entity.TransactionTotals{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
		},
		ByCategory: make([]entity.CategoryTotal, 0, len(rows)),
	}

	for _, row := range rows {
		item := entity.CategoryTotal{
			CategoryName: row.CategoryName,
			Type:         entity.TransactionType(row.Type),
			Total:        row.Total,
			Count:        row.Count,
		}
		if row.CategoryID.Valid {
			id := row.CategoryID.UUID
			item.CategoryID = &id
		}
		summary.ByCategory = append(summary.ByCategory, item)
		summary.Count += row.Count

		switch item.Type {
		case entity.TransactionTypeIncome:
			summary.Totals.IncomeTotal = summary.Totals.IncomeTotal.Add(row.Total)
		case entity.TransactionTypeExpense:
			summary.Totals.ExpenseTotal = summary.Totals.ExpenseTotal.Add(row.Total)
		}
	}
	summary.Totals.NetTotal = summary.Totals.IncomeTotal.Sub(summary.Totals.ExpenseTotal)

	return summary, nil
}

// GetBudgetSpending sums the expenses recorded against a project budget.
func (r *reportRepository) GetBudgetSpending(ctx context.Context, tenantID, projectID uuid.UUID) (*report.BudgetSpending, error) {
	var where whereClause
	where.add("tenant_id = ?", tenantID)
	where.add("project_id = ?", projectID)

	query := `SELECT category_id, COALESCE(SUM(amount), 0) AS spent FROM budget_expenses` +
		where.String() +
		` GROUP BY category_id`

	var rows []struct {
		CategoryID uuid.NullUUID   `db:"category_id"`
		Spent      decimal.Decimal `db:"spent"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), where.args...); err != nil {
		return nil, fmt.Errorf("failed to query budget spending: %w", err)
	}

	spending := &report.BudgetSpending{
		Total:         decimal.Zero,
		ByCategory:    make(map[uuid.UUID]decimal.Decimal, len(rows)),
		Uncategorized: decimal.Zero,
	}
	for _, row := range rows {
		spending.Total = spending.Total.Add(row.Spent)
		if row.CategoryID.Valid {
			spending.ByCategory[row.CategoryID.UUID] = row.Spent
		} else {
			spending.Uncategorized = spending.Uncategorized.Add(row.Spent)
		}
	}
	return spending, nil
}

// GetInvoiceTotals aggregates invoices issued within the range by status.
func (r *reportRepository) GetInvoiceTotals(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (*report.InvoiceTotals, error) {
	var where whereClause
	where.add("tenant_id = ?", tenantID)
	where.add("issue_date >= ?", startDate)
	where.add("issue_date <= ?", endDate)

	query := `SELECT status, COUNT(*) AS count,
		COALESCE(SUM(total), 0) AS total, COALESCE(SUM(amount_paid), 0) AS amount_paid
		FROM invoices` +
		where.String() +
		` GROUP BY status`

	var rows []struct {
		Status     string          `db:"status"`
		Count      int             `db:"count"`
		Total      decimal.Decimal `db:"total"`
		AmountPaid decimal.Decimal `db:"amount_paid"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), where.args...); err != nil {
		return nil, fmt.Errorf("failed to query invoice totals: %w", err)
	}

	totals := &report.InvoiceTotals{ByStatus: make([]report.InvoiceStatusTotals, len(rows))}
	for i, row := range rows {
		totals.ByStatus[i] = report.InvoiceStatusTotals{
			Status:     entity.InvoiceStatus(row.Status),
			Count:      row.Count,
			Total:      row.Total,
			AmountPaid: row.AmountPaid,
		}
	}
	return totals, nil
}

// GetCollected sums payments received within the range.
func (r *reportRepository) GetCollected(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	var where whereClause
	where.add("tenant_id = ?", tenantID)
	where.add("date >= ?", startDate)
	where.add("date <= ?", endDate)

	query := `SELECT COALESCE(SUM(amount), 0) FROM invoice_payments` + where.String()

	var collected decimal.Decimal
	if err := r.db.GetContext(ctx, &collected, r.db.Rebind(query), where.args...); err != nil {
		return decimal.Zero, fmt.Errorf("failed to query collected payments: %w", err)
	}
	return collected, nil
}
