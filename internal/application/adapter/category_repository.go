package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category of the tenant by its ID.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Category, error)

	// FindByTenant retrieves the tenant's categories, optionally filtered by type.
	FindByTenant(ctx context.Context, tenantID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks if the tenant already has a category with the given name and type.
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, categoryType entity.CategoryType) (bool, error)

	// CountTransactions counts the live transactions filed under the category.
	CountTransactions(ctx context.Context, tenantID, id uuid.UUID) (int64, error)

	// Delete soft-deletes a category. Returns ErrCategoryNotFound when nothing matched.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
