package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction is a bookkeeping entry of the agency, optionally tied to a client, project or invoice.
type Transaction struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always positive, Type carries the sign
	Type        TransactionType
	CategoryID  *uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	InvoiceID   *uuid.UUID
	Reference   string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	tenantID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Type         TransactionType
	Total        decimal.Decimal
	Count        int
}

// TransactionSummary aggregates transactions over a date range.
type TransactionSummary struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Totals     TransactionTotals
	ByCategory []CategoryTotal
	Count      int
}
