// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	TenantID    uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	Type        *entity.TransactionType
	Search      string // Case-insensitive description match
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction of the tenant by its ID.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category by ID.
	FindByIDWithCategory(ctx context.Context, tenantID, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination Pagination) (*TransactionListResult, error)

	// GetTotals calculates totals for transactions based on filter criteria.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// UpdateFields writes only the named columns of transaction. Unknown columns are rejected.
	UpdateFields(ctx context.Context, transaction *entity.Transaction, fields []string) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindUncategorized retrieves the tenant's most recent transactions without a category.
	FindUncategorized(ctx context.Context, tenantID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// UpdateCategory assigns a category to one transaction.
	UpdateCategory(ctx context.Context, tenantID, id, categoryID uuid.UUID) error
}
