package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// FindByProject retrieves the budget of a project.
func (r *budgetRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) (*entity.ProjectBudget, error) {
	var budgetModel model.ProjectBudgetModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Upsert creates the project's budget or replaces its allocation, currency and notes.
func (r *budgetRepository) Upsert(ctx context.Context, budget *entity.ProjectBudget) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_allocated", "currency", "notes", "updated_at"}),
		}).
		Create(model.ProjectBudgetFromEntity(budget)).Error
}

// CreateCategory creates a budget category.
func (r *budgetRepository) CreateCategory(ctx context.Context, category *entity.BudgetCategory) error {
	return r.db.WithContext(ctx).Create(model.BudgetCategoryFromEntity(category)).Error
}

// FindCategoryByID retrieves a budget category of a project.
func (r *budgetRepository) FindCategoryByID(ctx context.Context, tenantID, projectID, id uuid.UUID) (*entity.BudgetCategory, error) {
	var categoryModel model.BudgetCategoryModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ? AND id = ?", tenantID, projectID, id).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// ListCategories retrieves the budget categories of a project ordered by name.
func (r *budgetRepository) ListCategories(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetCategory, error) {
	var models []model.BudgetCategoryModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.BudgetCategory, len(models))
	for i := range models {
		categories[i] = models[i].ToEntity()
	}
	return categories, nil
}

// CreateExpense records an expense against a project budget.
func (r *budgetRepository) CreateExpense(ctx context.Context, expense *entity.BudgetExpense) error {
	return r.db.WithContext(ctx).Create(model.BudgetExpenseFromEntity(expense)).Error
}

// ListExpenses retrieves the expenses of a project, newest first.
func (r *budgetRepository) ListExpenses(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetExpense, error) {
	var models []model.BudgetExpenseModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("date DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.BudgetExpense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses, nil
}
