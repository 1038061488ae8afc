// Package transaction contains transaction-related use cases.
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

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Category    *CategoryOutput
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	InvoiceID   *uuid.UUID
	Reference   string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

func toTransactionOutput(t *entity.Transaction, category *entity.Category) *TransactionOutput {
	out := &TransactionOutput{
		ID:          t.ID,
		TenantID:    t.TenantID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		CategoryID:  t.CategoryID,
		ClientID:    t.ClientID,
		ProjectID:   t.ProjectID,
		InvoiceID:   t.InvoiceID,
		Reference:   t.Reference,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if category != nil {
		out.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}
	return out
}

// references resolves the optional links of a transaction inside the tenant.
type references struct {
	categoryRepo adapter.CategoryRepository
	clientRepo   adapter.ClientRepository
	projectRepo  adapter.ProjectRepository
}

func (r references) category(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) (*entity.Category, error) {
	if id == nil {
		return nil, nil
	}
	category, err := r.categoryRepo.FindByID(ctx, tenantID, *id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (r references) client(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := r.clientRepo.FindByID(ctx, tenantID, *id); err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return fmt.Errorf("failed to find client: %w", err)
	}
	return nil
}

func (r references) project(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := r.projectRepo.FindByID(ctx, tenantID, *id); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func validateText(description, notes string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateType(t entity.TransactionType) error {
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func notFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func checkCategoryType(category *entity.Category, txType entity.TransactionType) error {
	if category == nil || category.Type.Matches(txType) {
		return nil
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeCategoryTypeMismatch,
		fmt.Sprintf("%s transactions cannot use the %s category %q", txType, category.Type, category.Name),
		domainerror.ErrCategoryTypeMismatch,
	)
}
