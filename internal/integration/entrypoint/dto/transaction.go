package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/usecase/transaction"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string         `json:"category_id,omitempty"`
	ClientID    *string         `json:"client_id,omitempty"`
	ProjectID   *string         `json:"project_id,omitempty"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	Reference   string          `json:"reference,omitempty" binding:"omitempty,max=255"`
	Notes       string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string          `json:"date,omitempty"`
	Description   *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Type          *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
	ClientID      *string          `json:"client_id,omitempty"`
	ProjectID     *string          `json:"project_id,omitempty"`
	Reference     *string          `json:"reference,omitempty" binding:"omitempty,max=255"`
	Notes         *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	Date        string                       `json:"date"`
	Description string                       `json:"description"`
	Amount      string                       `json:"amount"`
	Type        string                       `json:"type"`
	CategoryID  *string                      `json:"category_id,omitempty"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	ClientID    *string                      `json:"client_id,omitempty"`
	ProjectID   *string                      `json:"project_id,omitempty"`
	InvoiceID   *string                      `json:"invoice_id,omitempty"`
	Reference   string                       `json:"reference,omitempty"`
	Notes       string                       `json:"notes"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Pagination   PaginationResponse        `json:"pagination"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// CategoryTotalResponse is one row of the per-category breakdown.
type CategoryTotalResponse struct {
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Type         string  `json:"type"`
	Total        string  `json:"total"`
	Count        int     `json:"count"`
}

// TransactionSummaryResponse represents the response for the transaction summary.
type TransactionSummaryResponse struct {
	StartDate  *string                   `json:"start_date,omitempty"`
	EndDate    *string                   `json:"end_date,omitempty"`
	Totals     TransactionTotalsResponse `json:"totals"`
	ByCategory []CategoryTotalResponse   `json:"by_category"`
	Count      int                       `json:"count"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		Date:        formatDate(txn.Date),
		Description: txn.Description,
		Amount:      money(txn.Amount),
		Type:        string(txn.Type),
		CategoryID:  formatOptionalID(txn.CategoryID),
		ClientID:    formatOptionalID(txn.ClientID),
		ProjectID:   formatOptionalID(txn.ProjectID),
		InvoiceID:   formatOptionalID(txn.InvoiceID),
		Reference:   txn.Reference,
		Notes:       txn.Notes,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

func toTotalsResponse(t entity.TransactionTotals) TransactionTotalsResponse {
	return TransactionTotalsResponse{
		IncomeTotal:  money(t.IncomeTotal),
		ExpenseTotal: money(t.ExpenseTotal),
		NetTotal:     money(t.NetTotal),
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: lo.Map(output.Transactions, func(t *transaction.TransactionOutput, _ int) TransactionResponse {
			return ToTransactionResponse(t)
		}),
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: toTotalsResponse(entity.TransactionTotals{
			IncomeTotal:  output.Totals.IncomeTotal,
			ExpenseTotal: output.Totals.ExpenseTotal,
			NetTotal:     output.Totals.NetTotal,
		}),
	}
}

// ToTransactionSummaryResponse converts a transaction summary.
func ToTransactionSummaryResponse(s *entity.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		StartDate: formatOptionalDate(s.StartDate),
		EndDate:   formatOptionalDate(s.EndDate),
		Totals:    toTotalsResponse(s.Totals),
		ByCategory: lo.Map(s.ByCategory, func(c entity.CategoryTotal, _ int) CategoryTotalResponse {
			return CategoryTotalResponse{
				CategoryID:   formatOptionalID(c.CategoryID),
				CategoryName: c.CategoryName,
				Type:         string(c.Type),
				Total:        money(c.Total),
				Count:        c.Count,
			}
		}),
		Count: s.Count,
	}
}
