// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

// transactionUpdatableColumns lists what PATCH /transactions/{id} may touch.
var transactionUpdatableColumns = newColumnSet(
	"date", "description", "amount", "type", "category_id",
	"client_id", "project_id", "invoice_id", "reference", "notes",
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction of the tenant by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithCategory retrieves a transaction with its category by ID.
func (r *transactionRepository) FindByIDWithCategory(ctx context.Context, tenantID, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntityWithCategory(), nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("tenant_id = ?", filter.TenantID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return query
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := pagination.TotalPages(total)
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithCategory()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// GetTotals calculates income, expense and net for transactions matching the filter.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	result := r.filtered(ctx, filter).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = row.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = row.Total
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

// UpdateFields writes only the allow-listed columns named in fields, plus updated_at.
func (r *transactionRepository) UpdateFields(ctx context.Context, transaction *entity.Transaction, fields []string) error {
	columns, err := transactionUpdatableColumns.pick(fields)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}

	transaction.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("tenant_id = ? AND id = ?", transaction.TenantID, transaction.ID).
		Select(append(columns, "updated_at")).
		Updates(model.TransactionFromEntity(transaction))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// FindUncategorized retrieves the tenant's most recent transactions without a category.
func (r *transactionRepository) FindUncategorized(ctx context.Context, tenantID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category_id IS NULL", tenantID).
		Order("date DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// UpdateCategory assigns a category to one transaction.
func (r *transactionRepository) UpdateCategory(ctx context.Context, tenantID, id, categoryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
