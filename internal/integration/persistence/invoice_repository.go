package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

const nextInvoiceSequenceSQL = `
	INSERT INTO invoice_sequences (tenant_id, year_month, last_value)
	VALUES (?, ?, 1)
	ON CONFLICT (tenant_id, year_month)
	DO UPDATE SET last_value = invoice_sequences.last_value + 1
	RETURNING last_value`

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create persists a new invoice and assigns its number from the tenant's monthly sequence.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createInvoice(tx, invoice)
	})
}

// createInvoice numbers and inserts invoice with its line items using tx.
func createInvoice(tx *gorm.DB, invoice *entity.Invoice) error {
	number, err := nextInvoiceNumber(tx, invoice.TenantID, invoice.IssueDate)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = number
	if invoice.Version == 0 {
		invoice.Version = 1
	}

	if err := tx.Create(model.InvoiceFromEntity(invoice)).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return insertLineItems(tx, invoice)
}

// nextInvoiceNumber increments the (tenant, month) counter and formats INV-YYYYMM-NNN.
func nextInvoiceNumber(tx *gorm.DB, tenantID uuid.UUID, issueDate time.Time) (string, error) {
	yearMonth := issueDate.Format("200601")

	var seq int64
	if err := tx.Raw(nextInvoiceSequenceSQL, tenantID, yearMonth).Scan(&seq).Error; err != nil {
		return "", domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNumberFailed,
			"failed to allocate invoice number",
			err,
		)
	}

	return fmt.Sprintf("INV-%s-%03d", yearMonth, seq), nil
}

func insertLineItems(tx *gorm.DB, invoice *entity.Invoice) error {
	if len(invoice.LineItems) == 0 {
		return nil
	}

	items := make([]*model.LineItemModel, len(invoice.LineItems))
	for i, item := range invoice.LineItems {
		item.InvoiceID = invoice.ID
		item.Position = i
		items[i] = model.LineItemFromEntity(item)
	}

	if err := tx.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create invoice line items: %w", err)
	}
	return nil
}

// FindByID retrieves an invoice with line items, payments and email history.
func (r *invoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, created_at DESC")
		}).
		Preload("EmailHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindByFilter retrieves invoices based on filter criteria with pagination.
func (r *invoiceRepository) FindByFilter(ctx context.Context, filter adapter.InvoiceFilter, pagination adapter.Pagination) (*entity.InvoiceListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("tenant_id = ?", filter.TenantID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.StartDate != nil {
		query = query.Where("issue_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("issue_date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(invoice_number) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := pagination.TotalPages(total)
	if totalPages == 0 {
		totalPages = 1
	}

	var invoiceModels []model.InvoiceModel
	result := query.
		Order("issue_date DESC, invoice_number DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}

	return &entity.InvoiceListResult{
		Invoices:   invoices,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update saves the invoice header under an optimistic version check and optionally swaps line items.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice, replaceLineItems bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveInvoiceHeader(tx, invoice); err != nil {
			return err
		}
		if !replaceLineItems {
			return nil
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&model.LineItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete invoice line items: %w", err)
		}
		return insertLineItems(tx, invoice)
	})
	if err != nil {
		return err
	}

	invoice.Version++
	return nil
}

// saveInvoiceHeader writes every header column of invoice where the stored version still
// equals invoice.Version, bumping it by one. The entity itself is not modified.
func saveInvoiceHeader(tx *gorm.DB, invoice *entity.Invoice) error {
	m := model.InvoiceFromEntity(invoice)
	result := tx.Model(&model.InvoiceModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", invoice.ID, invoice.TenantID, invoice.Version).
		Updates(map[string]interface{}{
			"client_id":           m.ClientID,
			"project_id":          m.ProjectID,
			"issue_date":          m.IssueDate,
			"due_date":            m.DueDate,
			"status":              m.Status,
			"currency":            m.Currency,
			"subtotal":            m.Subtotal,
			"tax_rate":            m.TaxRate,
			"tax_amount":          m.TaxAmount,
			"discount_type":       m.DiscountType,
			"discount_value":      m.DiscountValue,
			"discount_amount":     m.DiscountAmount,
			"shipping_amount":     m.ShippingAmount,
			"shipping_tax_rate":   m.ShippingTaxRate,
			"shipping_tax_amount": m.ShippingTaxAmount,
			"total":               m.Total,
			"amount_paid":         m.AmountPaid,
			"notes":               m.Notes,
			"terms":               m.Terms,
			"sent_at":             m.SentAt,
			"viewed_at":           m.ViewedAt,
			"paid_at":             m.PaidAt,
			"cancelled_at":        m.CancelledAt,
			"updated_at":          m.UpdatedAt,
			"version":             gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceConcurrentUpdate,
			"invoice was modified by another request, reload and retry",
			domainerror.ErrInvoiceConcurrentUpdate,
		)
	}
	return nil
}

// Delete removes an invoice together with its line items, payments and history.
func (r *invoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInvoiceNotFound
		}

		// SQLite does not enforce the cascade unless foreign keys are switched on.
		for _, child := range []interface{}{
			&model.LineItemModel{},
			&model.InvoicePaymentModel{},
			&model.InvoiceEmailHistoryModel{},
		} {
			if err := tx.Where("invoice_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyPayment locks the invoice, applies the payment and persists both in one transaction.
func (r *invoiceRepository) ApplyPayment(
	ctx context.Context,
	tenantID, invoiceID uuid.UUID,
	payment *entity.InvoicePayment,
	apply func(invoice *entity.Invoice) error,
) (*entity.Invoice, error) {
	var updated *entity.Invoice

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var invoiceModel model.InvoiceModel
		if err := query.Where("tenant_id = ? AND id = ?", tenantID, invoiceID).First(&invoiceModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvoiceNotFound
			}
			return err
		}

		invoice := invoiceModel.ToEntity()
		if err := apply(invoice); err != nil {
			return err
		}
		if err := saveInvoiceHeader(tx, invoice); err != nil {
			return err
		}

		payment.TenantID = tenantID
		payment.InvoiceID = invoiceID
		if err := tx.Create(model.InvoicePaymentFromEntity(payment)).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		invoice.Version++
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListPayments retrieves the payments of an invoice ordered by date descending.
func (r *invoiceRepository) ListPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]*entity.InvoicePayment, error) {
	var models []model.InvoicePaymentModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		Order("date DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.InvoicePayment, len(models))
	for i := range models {
		payments[i] = models[i].ToEntity()
	}
	return payments, nil
}

// AddHistory appends an entry to the invoice's email history.
func (r *invoiceRepository) AddHistory(ctx context.Context, entry *entity.InvoiceEmailHistory) error {
	return r.db.WithContext(ctx).Create(model.InvoiceEmailHistoryFromEntity(entry)).Error
}

// FindOverdueCandidates retrieves delivered, unpaid invoices of every tenant due before today.
func (r *invoiceRepository) FindOverdueCandidates(ctx context.Context, today time.Time, limit int) ([]*entity.Invoice, error) {
	var models []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(entity.InvoiceStatusSent),
			string(entity.InvoiceStatusViewed),
			string(entity.InvoiceStatusPartial),
		}).
		Where("due_date < ?", today).
		Order("due_date ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(models))
	for i := range models {
		invoices[i] = models[i].ToEntity()
	}
	return invoices, nil
}

// CountByClient counts the invoices that reference a client.
func (r *invoiceRepository) CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
