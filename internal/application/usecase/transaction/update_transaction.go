package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// UpdateTransactionInput represents a partial transaction update. Nil fields are left alone.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	TenantID      uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	ClientID      *uuid.UUID
	ProjectID     *uuid.UUID
	Reference     *string
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: references{
			categoryRepo: categoryRepo,
			clientRepo:   clientRepo,
			projectRepo:  projectRepo,
		},
	}
}

// Execute merges the provided fields and writes only the columns that changed.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TenantID, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	var fields []string

	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"date is required",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		transaction.Date = *input.Date
		fields = append(fields, "date")
	}

	if input.Description != nil {
		transaction.Description = *input.Description
		fields = append(fields, "description")
	}

	if input.Notes != nil {
		transaction.Notes = *input.Notes
		fields = append(fields, "notes")
	}

	if err := validateText(transaction.Description, transaction.Notes); err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *input.Amount
		fields = append(fields, "amount")
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		transaction.Type = *input.Type
		fields = append(fields, "type")
	}

	var category *entity.Category
	switch {
	case input.ClearCategory:
		transaction.CategoryID = nil
		fields = append(fields, "category_id")
	case input.CategoryID != nil:
		category, err = uc.refs.category(ctx, input.TenantID, input.CategoryID)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = input.CategoryID
		fields = append(fields, "category_id")
	default:
		// Best effort, only used to decorate the response.
		category, _ = uc.refs.category(ctx, input.TenantID, transaction.CategoryID)
	}
	if input.Type != nil || input.CategoryID != nil {
		if err := checkCategoryType(category, transaction.Type); err != nil {
			return nil, err
		}
	}

	if input.ClientID != nil {
		if err := uc.refs.client(ctx, input.TenantID, input.ClientID); err != nil {
			return nil, err
		}
		transaction.ClientID = input.ClientID
		fields = append(fields, "client_id")
	}

	if input.ProjectID != nil {
		if err := uc.refs.project(ctx, input.TenantID, input.ProjectID); err != nil {
			return nil, err
		}
		transaction.ProjectID = input.ProjectID
		fields = append(fields, "project_id")
	}

	if input.Reference != nil {
		transaction.Reference = *input.Reference
		fields = append(fields, "reference")
	}

	if len(fields) > 0 {
		if err := uc.transactionRepo.UpdateFields(ctx, transaction, fields); err != nil {
			if errors.Is(err, domainerror.ErrInvalidUpdateColumn) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeInvalidUpdateColumn,
					err.Error(),
					domainerror.ErrInvalidUpdateColumn,
				)
			}
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return nil, notFound()
			}
			return nil, fmt.Errorf("failed to update transaction: %w", err)
		}
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}
