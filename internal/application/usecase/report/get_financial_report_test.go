package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

type stubReportRepository struct {
	invoiceTotals *InvoiceTotals
	collected     decimal.Decimal
	summary       *entity.TransactionSummary
	err           error
}

func (s *stubReportRepository) GetTransactionSummary(ctx context.Context, tenantID uuid.UUID, startDate, endDate *time.Time) (*entity.TransactionSummary, error) {
	return s.summary, s.err
}

func (s *stubReportRepository) GetBudgetSpending(ctx context.Context, tenantID, projectID uuid.UUID) (*BudgetSpending, error) {
	return nil, s.err
}

func (s *stubReportRepository) GetInvoiceTotals(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (*InvoiceTotals, error) {
	return s.invoiceTotals, s.err
}

func (s *stubReportRepository) GetCollected(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	return s.collected, s.err
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetFinancialReport_Aggregates(t *testing.T) {
	repo := &stubReportRepository{
		invoiceTotals: &InvoiceTotals{ByStatus: []InvoiceStatusTotals{
			{Status: entity.InvoiceStatusDraft, Count: 2, Total: money("500"), AmountPaid: decimal.Zero},
			{Status: entity.InvoiceStatusSent, Count: 1, Total: money("110"), AmountPaid: decimal.Zero},
			{Status: entity.InvoiceStatusPartial, Count: 1, Total: money("200"), AmountPaid: money("50")},
			{Status: entity.InvoiceStatusPaid, Count: 3, Total: money("300"), AmountPaid: money("300")},
			{Status: entity.InvoiceStatusOverdue, Count: 1, Total: money("90"), AmountPaid: money("40")},
			{Status: entity.InvoiceStatusCancelled, Count: 1, Total: money("70"), AmountPaid: decimal.Zero},
		}},
		collected: money("390"),
		summary: &entity.TransactionSummary{Totals: entity.TransactionTotals{
			IncomeTotal:  money("1000"),
			ExpenseTotal: money("400"),
			NetTotal:     money("600"),
		}},
	}

	uc := NewGetFinancialReportUseCase(repo)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	report, err := uc.Execute(context.Background(), GetFinancialReportInput{
		TenantID:  uuid.New(),
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	assert.True(t, money("700").Equal(report.Invoiced), "invoiced = %s", report.Invoiced)
	assert.True(t, money("390").Equal(report.Collected))
	assert.True(t, money("310").Equal(report.Outstanding), "outstanding = %s", report.Outstanding)
	assert.Equal(t, 1, report.OverdueCount)
	assert.True(t, money("50").Equal(report.OverdueAmount))
	assert.Equal(t, 9, report.InvoiceCount)
	assert.Equal(t, 2, report.InvoicesByStatus[entity.InvoiceStatusDraft])
	assert.True(t, money("600").Equal(report.Net))
}

func TestGetFinancialReport_InvalidRange(t *testing.T) {
	uc := NewGetFinancialReportUseCase(&stubReportRepository{})

	_, err := uc.Execute(context.Background(), GetFinancialReportInput{
		TenantID:  uuid.New(),
		StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var txErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, domainerror.ErrCodeInvalidDateRange, txErr.Code)
}

func TestGetFinancialReport_RepositoryError(t *testing.T) {
	uc := NewGetFinancialReportUseCase(&stubReportRepository{err: errors.New("connection reset")})

	_, err := uc.Execute(context.Background(), GetFinancialReportInput{
		TenantID:  uuid.New(),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to aggregate invoices")
}
