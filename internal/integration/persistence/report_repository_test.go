package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
)

func newMockReportRepository(t *testing.T) (*reportRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &reportRepository{db: sqlx.NewDb(mockDB, "postgres")}, mock
}

func TestReportRepository_GetTransactionSummary(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID := uuid.New()
	categoryID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"category_id", "category_name", "type", "total", "count"}).
		AddRow(categoryID.String(), "Retainers", "income", "1500.00", 3).
		AddRow(nil, "", "expense", "250.50", 2)

	mock.ExpectQuery(`FROM transactions t\s+LEFT JOIN categories c ON c.id = t.category_id WHERE t.tenant_id = \$1 AND t.deleted_at IS NULL AND t.date >= \$2 AND t.date <= \$3 GROUP BY`).
		WithArgs(tenantID, start, end).
		WillReturnRows(rows)

	summary, err := repo.GetTransactionSummary(context.Background(), tenantID, &start, &end)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1500").Equal(summary.Totals.IncomeTotal))
	assert.True(t, decimal.RequireFromString("250.5").Equal(summary.Totals.ExpenseTotal))
	assert.True(t, decimal.RequireFromString("1249.5").Equal(summary.Totals.NetTotal))
	assert.Equal(t, 5, summary.Count)
	require.Len(t, summary.ByCategory, 2)
	require.NotNil(t, summary.ByCategory[0].CategoryID)
	assert.Equal(t, categoryID, *summary.ByCategory[0].CategoryID)
	assert.Nil(t, summary.ByCategory[1].CategoryID)
	assert.Equal(t, entity.TransactionTypeExpense, summary.ByCategory[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetTransactionSummary_OpenRange(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID := uuid.New()

	mock.ExpectQuery(`WHERE t.tenant_id = \$1 AND t.deleted_at IS NULL GROUP BY`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name", "type", "total", "count"}))

	summary, err := repo.GetTransactionSummary(context.Background(), tenantID, nil, nil)
	require.NoError(t, err)
	assert.True(t, summary.Totals.NetTotal.IsZero())
	assert.Empty(t, summary.ByCategory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetBudgetSpending(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID, projectID, categoryID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT category_id, COALESCE\(SUM\(amount\), 0\) AS spent FROM budget_expenses WHERE tenant_id = \$1 AND project_id = \$2 GROUP BY category_id`).
		WithArgs(tenantID, projectID).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "spent"}).
			AddRow(categoryID.String(), "300.00").
			AddRow(nil, "20.00"))

	spending, err := repo.GetBudgetSpending(context.Background(), tenantID, projectID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("320").Equal(spending.Total))
	assert.True(t, decimal.RequireFromString("300").Equal(spending.ByCategory[categoryID]))
	assert.True(t, decimal.RequireFromString("20").Equal(spending.Uncategorized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetInvoiceTotals(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM invoices WHERE tenant_id = \$1 AND issue_date >= \$2 AND issue_date <= \$3 GROUP BY status`).
		WithArgs(tenantID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "total", "amount_paid"}).
			AddRow("paid", 2, "220.00", "220.00").
			AddRow("overdue", 1, "90.00", "40.00"))

	totals, err := repo.GetInvoiceTotals(context.Background(), tenantID, start, end)
	require.NoError(t, err)
	require.Len(t, totals.ByStatus, 2)
	assert.Equal(t, entity.InvoiceStatusPaid, totals.ByStatus[0].Status)
	assert.Equal(t, 2, totals.ByStatus[0].Count)
	assert.True(t, decimal.RequireFromString("40").Equal(totals.ByStatus[1].AmountPaid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetCollected(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM invoice_payments WHERE tenant_id = \$1 AND date >= \$2 AND date <= \$3`).
		WithArgs(tenantID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("110.00"))

	collected, err := repo.GetCollected(context.Background(), tenantID, start, end)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("110").Equal(collected))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_QueryError(t *testing.T) {
	repo, mock := newMockReportRepository(t)
	tenantID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM invoice_payments`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetCollected(context.Background(), tenantID, start, start)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query collected payments")
}
