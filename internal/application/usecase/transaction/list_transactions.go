package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	TenantID    uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	Type        *entity.TransactionType
	Search      string
	Page        int
	Limit       int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}

	filter := adapter.TransactionFilter{
		TenantID:    input.TenantID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CategoryIDs: input.CategoryIDs,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
		Type:        input.Type,
		Search:      input.Search,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		slog.Warn("Failed to compute transaction totals", "tenant_id", input.TenantID, "error", err)
		totals = &entity.TransactionTotals{}
	}

	return &ListTransactionsOutput{
		Transactions: lo.Map(result.Transactions, func(t *entity.TransactionWithCategory, _ int) *TransactionOutput {
			return toTransactionOutput(t.Transaction, t.Category)
		}),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}, nil
}
