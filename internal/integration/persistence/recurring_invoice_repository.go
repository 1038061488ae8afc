package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

// recurringInvoiceRepository implements the adapter.RecurringInvoiceRepository interface.
type recurringInvoiceRepository struct {
	db *gorm.DB
}

// NewRecurringInvoiceRepository creates a new recurring invoice repository instance.
func NewRecurringInvoiceRepository(db *gorm.DB) adapter.RecurringInvoiceRepository {
	return &recurringInvoiceRepository{
		db: db,
	}
}

// Create creates a new template with its line items.
func (r *recurringInvoiceRepository) Create(ctx context.Context, template *entity.RecurringInvoiceTemplate) error {
	return r.db.WithContext(ctx).Create(model.RecurringInvoiceFromEntity(template)).Error
}

// FindByID retrieves a template of the tenant.
func (r *recurringInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.RecurringInvoiceTemplate, error) {
	var templateModel model.RecurringInvoiceModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&templateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringTemplateNotFound
		}
		return nil, result.Error
	}
	return templateModel.ToEntity(), nil
}

// FindByTenant retrieves the tenant's templates ordered by next generation date.
func (r *recurringInvoiceRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*entity.RecurringInvoiceTemplate, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []model.RecurringInvoiceModel
	if err := query.Order("next_generation_date ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	templates := make([]*entity.RecurringInvoiceTemplate, len(models))
	for i := range models {
		templates[i] = models[i].ToEntity()
	}
	return templates, nil
}

// Update saves the template. Line items live in the same row so replaceLineItems needs no extra work.
func (r *recurringInvoiceRepository) Update(ctx context.Context, template *entity.RecurringInvoiceTemplate, _ bool) error {
	result := r.db.WithContext(ctx).Save(model.RecurringInvoiceFromEntity(template))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a template. Invoices it generated keep existing.
func (r *recurringInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.RecurringInvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringTemplateNotFound
	}
	return nil
}

// FindDue retrieves active templates whose next generation date is at or before now.
func (r *recurringInvoiceRepository) FindDue(ctx context.Context, tenantID *uuid.UUID, now time.Time, limit int) ([]*entity.RecurringInvoiceTemplate, error) {
	query := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("next_generation_date <= ?", now)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}

	var models []model.RecurringInvoiceModel
	if err := query.Order("next_generation_date ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	templates := make([]*entity.RecurringInvoiceTemplate, len(models))
	for i := range models {
		templates[i] = models[i].ToEntity()
	}
	return templates, nil
}

// RecordGeneration creates the occurrence's invoice unless it already exists and saves the template.
// The insert runs in a savepoint so a concurrent generator winning the unique
// index only skips the occurrence.
func (r *recurringInvoiceRepository) RecordGeneration(
	ctx context.Context,
	template *entity.RecurringInvoiceTemplate,
	invoice *entity.Invoice,
) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := occurrenceExists(tx, template.ID, *invoice.RecurrenceDate)
		if err != nil {
			return err
		}

		if !exists {
			err := tx.Transaction(func(sp *gorm.DB) error {
				return createInvoice(sp, invoice)
			})
			switch {
			case err == nil:
				created = true
			case errors.Is(err, gorm.ErrDuplicatedKey):
				if exists, lookupErr := occurrenceExists(tx, template.ID, *invoice.RecurrenceDate); lookupErr != nil || !exists {
					return err
				}
			default:
				return err
			}
		}

		if err := tx.Save(model.RecurringInvoiceFromEntity(template)).Error; err != nil {
			return fmt.Errorf("failed to advance recurring invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func occurrenceExists(tx *gorm.DB, templateID uuid.UUID, recurrenceDate time.Time) (bool, error) {
	var count int64
	err := tx.Model(&model.InvoiceModel{}).
		Where("recurring_template_id = ? AND recurrence_date = ?", templateID, recurrenceDate).
		Count(&count).Error
	return count > 0, err
}
