package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// GetFinancialReportInput represents the input for the financial report.
type GetFinancialReportInput struct {
	TenantID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// GetFinancialReportUseCase combines billing and bookkeeping aggregates for a period.
type GetFinancialReportUseCase struct {
	reportRepo ReportRepository
}

// NewGetFinancialReportUseCase creates a new GetFinancialReportUseCase instance.
func NewGetFinancialReportUseCase(reportRepo ReportRepository) *GetFinancialReportUseCase {
	return &GetFinancialReportUseCase{
		reportRepo: reportRepo,
	}
}

// Execute builds the report. Drafts and cancelled invoices count towards the status
// breakdown only.
func (uc *GetFinancialReportUseCase) Execute(ctx context.Context, input GetFinancialReportInput) (*entity.FinancialReport, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	invoiceTotals, err := uc.reportRepo.GetInvoiceTotals(ctx, input.TenantID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate invoices: %w", err)
	}

	collected, err := uc.reportRepo.GetCollected(ctx, input.TenantID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	start, end := input.StartDate, input.EndDate
	summary, err := uc.reportRepo.GetTransactionSummary(ctx, input.TenantID, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	report := &entity.FinancialReport{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Invoiced:         decimal.Zero,
		Collected:        collected,
		Outstanding:      decimal.Zero,
		OverdueAmount:    decimal.Zero,
		Income:           summary.Totals.IncomeTotal,
		Expense:          summary.Totals.ExpenseTotal,
		Net:              summary.Totals.NetTotal,
		InvoicesByStatus: make(map[entity.InvoiceStatus]int),
	}

	for _, bucket := range invoiceTotals.ByStatus {
		report.InvoicesByStatus[bucket.Status] += bucket.Count
		report.InvoiceCount += bucket.Count

		if bucket.Status == entity.InvoiceStatusDraft || bucket.Status == entity.InvoiceStatusCancelled {
			continue
		}
		report.Invoiced = report.Invoiced.Add(bucket.Total)

		due := bucket.Total.Sub(bucket.AmountPaid)
		if due.IsPositive() {
			report.Outstanding = report.Outstanding.Add(due)
		}
		if bucket.Status == entity.InvoiceStatusOverdue {
			report.OverdueCount += bucket.Count
			if due.IsPositive() {
				report.OverdueAmount = report.OverdueAmount.Add(due)
			}
		}
	}

	return report, nil
}
