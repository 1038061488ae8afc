package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// GetTransactionSummaryInput represents the input for the transaction summary.
type GetTransactionSummaryInput struct {
	TenantID  uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetTransactionSummaryUseCase returns income, expense and net with a per-category breakdown.
type GetTransactionSummaryUseCase struct {
	reportRepo ReportRepository
}

// NewGetTransactionSummaryUseCase creates a new GetTransactionSummaryUseCase instance.
func NewGetTransactionSummaryUseCase(reportRepo ReportRepository) *GetTransactionSummaryUseCase {
	return &GetTransactionSummaryUseCase{
		reportRepo: reportRepo,
	}
}

// Execute runs the summary query.
func (uc *GetTransactionSummaryUseCase) Execute(ctx context.Context, input GetTransactionSummaryInput) (*entity.TransactionSummary, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	summary, err := uc.reportRepo.GetTransactionSummary(ctx, input.TenantID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction summary: %w", err)
	}
	return summary, nil
}
