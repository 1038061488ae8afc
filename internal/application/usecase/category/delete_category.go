package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// DeleteCategoryUseCase removes a category nothing is filed under.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	if _, err := uc.categoryRepo.FindByID(ctx, tenantID, categoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return categoryNotFound()
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	count, err := uc.categoryRepo.CountTransactions(ctx, tenantID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is used by %d transaction(s)", count),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, tenantID, categoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return categoryNotFound()
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("Category deleted", "tenant_id", tenantID, "category_id", categoryID)
	return nil
}

func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}
