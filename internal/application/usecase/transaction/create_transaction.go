package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	TenantID    uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	InvoiceID   *uuid.UUID
	Reference   string
	Notes       string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: references{
			categoryRepo: categoryRepo,
			clientRepo:   clientRepo,
			projectRepo:  projectRepo,
		},
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	if err := validateText(input.Description, input.Notes); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}

	category, err := uc.refs.category(ctx, input.TenantID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := checkCategoryType(category, input.Type); err != nil {
		return nil, err
	}
	if err := uc.refs.client(ctx, input.TenantID, input.ClientID); err != nil {
		return nil, err
	}
	if err := uc.refs.project(ctx, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.TenantID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.Notes,
	)
	transaction.ClientID = input.ClientID
	transaction.ProjectID = input.ProjectID
	transaction.InvoiceID = input.InvoiceID
	transaction.Reference = input.Reference

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Debug("Transaction created",
		"tenant_id", input.TenantID,
		"transaction_id", transaction.ID,
		"type", transaction.Type,
	)

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}
