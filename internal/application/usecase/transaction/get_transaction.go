package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// GetTransactionUseCase loads a single transaction with its category.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, tenantID, transactionID uuid.UUID) (*TransactionOutput, error) {
	found, err := uc.transactionRepo.FindByIDWithCategory(ctx, tenantID, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return toTransactionOutput(found.Transaction, found.Category), nil
}
