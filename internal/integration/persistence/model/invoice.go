package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID            uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_tenant_number,priority:1"`
	ClientID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID           *uuid.UUID      `gorm:"type:uuid;index"`
	InvoiceNumber       string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	IssueDate           time.Time       `gorm:"type:date;not null;index"`
	DueDate             time.Time       `gorm:"type:date;not null;index"`
	Status              string          `gorm:"type:varchar(20);not null;index"`
	Currency            string          `gorm:"type:varchar(3);not null"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxRate             decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	TaxAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DiscountType        string          `gorm:"type:varchar(10);not null"`
	DiscountValue       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DiscountAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ShippingAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ShippingTaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	ShippingTaxAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total               decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountPaid          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes               string          `gorm:"type:text"`
	Terms               string          `gorm:"type:text"`
	RecurringTemplateID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_invoices_recurrence,priority:1"`
	RecurrenceDate      *time.Time      `gorm:"type:date;uniqueIndex:idx_invoices_recurrence,priority:2"`
	Version             int             `gorm:"not null"`
	SentAt              *time.Time      `gorm:"type:timestamp"`
	ViewedAt            *time.Time      `gorm:"type:timestamp"`
	PaidAt              *time.Time      `gorm:"type:timestamp"`
	CancelledAt         *time.Time      `gorm:"type:timestamp"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	LineItems    []LineItemModel            `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
	Payments     []InvoicePaymentModel      `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
	EmailHistory []InvoiceEmailHistoryModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel, and whatever children were preloaded, to a domain Invoice.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	invoice := &entity.Invoice{
		ID:                  m.ID,
		TenantID:            m.TenantID,
		ClientID:            m.ClientID,
		ProjectID:           m.ProjectID,
		InvoiceNumber:       m.InvoiceNumber,
		IssueDate:           m.IssueDate,
		DueDate:             m.DueDate,
		Status:              entity.InvoiceStatus(m.Status),
		Currency:            m.Currency,
		Subtotal:            m.Subtotal,
		TaxRate:             m.TaxRate,
		TaxAmount:           m.TaxAmount,
		DiscountType:        valueobject.DiscountType(m.DiscountType),
		DiscountValue:       m.DiscountValue,
		DiscountAmount:      m.DiscountAmount,
		ShippingAmount:      m.ShippingAmount,
		ShippingTaxRate:     m.ShippingTaxRate,
		ShippingTaxAmount:   m.ShippingTaxAmount,
		Total:               m.Total,
		AmountPaid:          m.AmountPaid,
		Notes:               m.Notes,
		Terms:               m.Terms,
		RecurringTemplateID: m.RecurringTemplateID,
		RecurrenceDate:      m.RecurrenceDate,
		Version:             m.Version,
		SentAt:              m.SentAt,
		ViewedAt:            m.ViewedAt,
		PaidAt:              m.PaidAt,
		CancelledAt:         m.CancelledAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}

	invoice.LineItems = make([]*entity.LineItem, len(m.LineItems))
	for i := range m.LineItems {
		invoice.LineItems[i] = m.LineItems[i].ToEntity()
	}
	invoice.Payments = make([]*entity.InvoicePayment, len(m.Payments))
	for i := range m.Payments {
		invoice.Payments[i] = m.Payments[i].ToEntity()
	}
	invoice.EmailHistory = make([]*entity.InvoiceEmailHistory, len(m.EmailHistory))
	for i := range m.EmailHistory {
		invoice.EmailHistory[i] = m.EmailHistory[i].ToEntity()
	}

	return invoice
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice. Children are not copied.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:                  invoice.ID,
		TenantID:            invoice.TenantID,
		ClientID:            invoice.ClientID,
		ProjectID:           invoice.ProjectID,
		InvoiceNumber:       invoice.InvoiceNumber,
		IssueDate:           invoice.IssueDate,
		DueDate:             invoice.DueDate,
		Status:              string(invoice.Status),
		Currency:            invoice.Currency,
		Subtotal:            invoice.Subtotal,
		TaxRate:             invoice.TaxRate,
		TaxAmount:           invoice.TaxAmount,
		DiscountType:        string(invoice.DiscountType),
		DiscountValue:       invoice.DiscountValue,
		DiscountAmount:      invoice.DiscountAmount,
		ShippingAmount:      invoice.ShippingAmount,
		ShippingTaxRate:     invoice.ShippingTaxRate,
		ShippingTaxAmount:   invoice.ShippingTaxAmount,
		Total:               invoice.Total,
		AmountPaid:          invoice.AmountPaid,
		Notes:               invoice.Notes,
		Terms:               invoice.Terms,
		RecurringTemplateID: invoice.RecurringTemplateID,
		RecurrenceDate:      invoice.RecurrenceDate,
		Version:             invoice.Version,
		SentAt:              invoice.SentAt,
		ViewedAt:            invoice.ViewedAt,
		PaidAt:              invoice.PaidAt,
		CancelledAt:         invoice.CancelledAt,
		CreatedAt:           invoice.CreatedAt,
		UpdatedAt:           invoice.UpdatedAt,
	}
}

// LineItemModel represents the invoice_line_items table in the database.
type LineItemModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	InvoiceID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Position       int              `gorm:"not null"`
	Description    string           `gorm:"type:varchar(500);not null"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(15,4);not null"`
	Rate           decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Amount         decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	AmountOverride *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TaxRate        decimal.Decimal  `gorm:"type:decimal(7,4);not null"`
	TaxAmount      decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	DiscountType   string           `gorm:"type:varchar(10);not null"`
	DiscountValue  decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	DiscountAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	ProjectID      *uuid.UUID       `gorm:"type:uuid"`
	TaskID         *uuid.UUID       `gorm:"type:uuid"`
	Category       string           `gorm:"type:varchar(100)"`
	Hours          *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PeriodStart    *time.Time       `gorm:"type:date"`
	PeriodEnd      *time.Time       `gorm:"type:date"`
	Notes          string           `gorm:"type:text"`
}

// TableName returns the table name for the LineItemModel.
func (LineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToEntity converts a LineItemModel to a domain LineItem.
func (m *LineItemModel) ToEntity() *entity.LineItem {
	return &entity.LineItem{
		ID:             m.ID,
		InvoiceID:      m.InvoiceID,
		Position:       m.Position,
		Description:    m.Description,
		Quantity:       m.Quantity,
		Rate:           m.Rate,
		Amount:         m.Amount,
		AmountOverride: m.AmountOverride,
		TaxRate:        m.TaxRate,
		TaxAmount:      m.TaxAmount,
		DiscountType:   valueobject.DiscountType(m.DiscountType),
		DiscountValue:  m.DiscountValue,
		DiscountAmount: m.DiscountAmount,
		ProjectID:      m.ProjectID,
		TaskID:         m.TaskID,
		Category:       m.Category,
		Hours:          m.Hours,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		Notes:          m.Notes,
	}
}

// LineItemFromEntity creates a LineItemModel from a domain LineItem.
func LineItemFromEntity(item *entity.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:             item.ID,
		InvoiceID:      item.InvoiceID,
		Position:       item.Position,
		Description:    item.Description,
		Quantity:       item.Quantity,
		Rate:           item.Rate,
		Amount:         item.Amount,
		AmountOverride: item.AmountOverride,
		TaxRate:        item.TaxRate,
		TaxAmount:      item.TaxAmount,
		DiscountType:   string(item.DiscountType),
		DiscountValue:  item.DiscountValue,
		DiscountAmount: item.DiscountAmount,
		ProjectID:      item.ProjectID,
		TaskID:         item.TaskID,
		Category:       item.Category,
		Hours:          item.Hours,
		PeriodStart:    item.PeriodStart,
		PeriodEnd:      item.PeriodEnd,
		Notes:          item.Notes,
	}
}

// InvoicePaymentModel represents the invoice_payments table in the database.
type InvoicePaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:date;not null;index"`
	Method    string          `gorm:"type:varchar(50);not null"`
	Reference string          `gorm:"type:varchar(255)"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvoicePaymentModel.
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToEntity converts an InvoicePaymentModel to a domain InvoicePayment.
func (m *InvoicePaymentModel) ToEntity() *entity.InvoicePayment {
	return &entity.InvoicePayment{
		ID:        m.ID,
		TenantID:  m.TenantID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Date:      m.Date,
		Method:    m.Method,
		Reference: m.Reference,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// InvoicePaymentFromEntity creates an InvoicePaymentModel from a domain InvoicePayment.
func InvoicePaymentFromEntity(payment *entity.InvoicePayment) *InvoicePaymentModel {
	return &InvoicePaymentModel{
		ID:        payment.ID,
		TenantID:  payment.TenantID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Date:      payment.Date,
		Method:    payment.Method,
		Reference: payment.Reference,
		Notes:     payment.Notes,
		CreatedAt: payment.CreatedAt,
	}
}

// InvoiceEmailHistoryModel represents the invoice_email_history table in the database.
type InvoiceEmailHistoryModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Event          string     `gorm:"type:varchar(20);not null"`
	RecipientEmail string     `gorm:"type:varchar(255)"`
	EmailJobID     *uuid.UUID `gorm:"type:uuid"`
	Message        string     `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the InvoiceEmailHistoryModel.
func (InvoiceEmailHistoryModel) TableName() string {
	return "invoice_email_history"
}

// ToEntity converts an InvoiceEmailHistoryModel to a domain InvoiceEmailHistory.
func (m *InvoiceEmailHistoryModel) ToEntity() *entity.InvoiceEmailHistory {
	return &entity.InvoiceEmailHistory{
		ID:             m.ID,
		TenantID:       m.TenantID,
		InvoiceID:      m.InvoiceID,
		Event:          entity.InvoiceEvent(m.Event),
		RecipientEmail: m.RecipientEmail,
		EmailJobID:     m.EmailJobID,
		Message:        m.Message,
		CreatedAt:      m.CreatedAt,
	}
}

// InvoiceEmailHistoryFromEntity creates an InvoiceEmailHistoryModel from a domain entry.
func InvoiceEmailHistoryFromEntity(entry *entity.InvoiceEmailHistory) *InvoiceEmailHistoryModel {
	return &InvoiceEmailHistoryModel{
		ID:             entry.ID,
		TenantID:       entry.TenantID,
		InvoiceID:      entry.InvoiceID,
		Event:          string(entry.Event),
		RecipientEmail: entry.RecipientEmail,
		EmailJobID:     entry.EmailJobID,
		Message:        entry.Message,
		CreatedAt:      entry.CreatedAt,
	}
}

// InvoiceSequenceModel represents the invoice_sequences table: one counter per tenant and month.
type InvoiceSequenceModel struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	YearMonth string    `gorm:"type:varchar(6);primaryKey"`
	LastValue int64     `gorm:"not null"`
}

// TableName returns the table name for the InvoiceSequenceModel.
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
