package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// RecurringInvoiceModel represents the recurring_invoices table in the database.
// Template line items are kept as a JSON document since they are only ever copied whole.
type RecurringInvoiceModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID          *uuid.UUID      `gorm:"type:uuid"`
	Name               string          `gorm:"type:varchar(255);not null"`
	Frequency          string          `gorm:"type:varchar(20);not null"`
	Interval           int             `gorm:"column:interval_count;not null"`
	StartDate          time.Time       `gorm:"type:date;not null"`
	EndDate            *time.Time      `gorm:"type:date"`
	AnchorDay          int             `gorm:"not null"`
	NextGenerationDate time.Time       `gorm:"type:date;not null;index"`
	LastGeneratedDate  *time.Time      `gorm:"type:date"`
	Active             bool            `gorm:"not null;index"`
	AutoSend           bool            `gorm:"not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	PaymentTermsDays   int             `gorm:"not null"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	DiscountType       string          `gorm:"type:varchar(10);not null"`
	DiscountValue      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ShippingAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ShippingTaxRate    decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Notes              string          `gorm:"type:text"`
	Terms              string          `gorm:"type:text"`
	LineItems          datatypes.JSON  `gorm:"not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecurringInvoiceModel.
func (RecurringInvoiceModel) TableName() string {
	return "recurring_invoices"
}

// templateLineItem is the JSON shape of a template line item.
type templateLineItem struct {
	ID             uuid.UUID        `json:"id"`
	Description    string           `json:"description"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Rate           decimal.Decimal  `json:"rate"`
	AmountOverride *decimal.Decimal `json:"amount_override,omitempty"`
	TaxRate        decimal.Decimal  `json:"tax_rate"`
	DiscountType   string           `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal  `json:"discount_value"`
	ProjectID      *uuid.UUID       `json:"project_id,omitempty"`
	Category       string           `json:"category,omitempty"`
	Hours          *decimal.Decimal `json:"hours,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ToEntity converts a RecurringInvoiceModel to a domain template.
func (m *RecurringInvoiceModel) ToEntity() *entity.RecurringInvoiceTemplate {
	var items []templateLineItem
	if len(m.LineItems) > 0 {
		if err := json.Unmarshal(m.LineItems, &items); err != nil {
			slog.Warn("Failed to unmarshal recurring invoice line items", "error", err, "id", m.ID)
		}
	}

	lineItems := make([]*entity.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = &entity.LineItem{
			ID:             item.ID,
			Position:       i,
			Description:    item.Description,
			Quantity:       item.Quantity,
			Rate:           item.Rate,
			AmountOverride: item.AmountOverride,
			TaxRate:        item.TaxRate,
			DiscountType:   valueobject.DiscountType(item.DiscountType),
			DiscountValue:  item.DiscountValue,
			ProjectID:      item.ProjectID,
			Category:       item.Category,
			Hours:          item.Hours,
			Notes:          item.Notes,
		}
	}

	return &entity.RecurringInvoiceTemplate{
		ID:        m.ID,
		TenantID:  m.TenantID,
		ClientID:  m.ClientID,
		ProjectID: m.ProjectID,
		Name:      m.Name,
		Recurrence: valueobject.Recurrence{
			Frequency: valueobject.Frequency(m.Frequency),
			Interval:  m.Interval,
		},
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		AnchorDay:          m.AnchorDay,
		NextGenerationDate: m.NextGenerationDate,
		LastGeneratedDate:  m.LastGeneratedDate,
		Active:             m.Active,
		AutoSend:           m.AutoSend,
		Currency:           m.Currency,
		PaymentTermsDays:   m.PaymentTermsDays,
		TaxRate:            m.TaxRate,
		DiscountType:       valueobject.DiscountType(m.DiscountType),
		DiscountValue:      m.DiscountValue,
		ShippingAmount:     m.ShippingAmount,
		ShippingTaxRate:    m.ShippingTaxRate,
		Notes:              m.Notes,
		Terms:              m.Terms,
		LineItems:          lineItems,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// RecurringInvoiceFromEntity creates a RecurringInvoiceModel from a domain template.
func RecurringInvoiceFromEntity(t *entity.RecurringInvoiceTemplate) *RecurringInvoiceModel {
	items := make([]templateLineItem, len(t.LineItems))
	for i, item := range t.LineItems {
		items[i] = templateLineItem{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			Rate:           item.Rate,
			AmountOverride: item.AmountOverride,
			TaxRate:        item.TaxRate,
			DiscountType:   string(item.DiscountType),
			DiscountValue:  item.DiscountValue,
			ProjectID:      item.ProjectID,
			Category:       item.Category,
			Hours:          item.Hours,
			Notes:          item.Notes,
		}
	}

	lineItemsJSON, err := json.Marshal(items)
	if err != nil {
		slog.Error("Failed to marshal recurring invoice line items", "error", err, "id", t.ID)
		lineItemsJSON = []byte("[]")
	}

	return &RecurringInvoiceModel{
		ID:                 t.ID,
		TenantID:           t.TenantID,
		ClientID:           t.ClientID,
		ProjectID:          t.ProjectID,
		Name:               t.Name,
		Frequency:          string(t.Recurrence.Frequency),
		Interval:           t.Recurrence.Interval,
		StartDate:          t.StartDate,
		EndDate:            t.EndDate,
		AnchorDay:          t.AnchorDay,
		NextGenerationDate: t.NextGenerationDate,
		LastGeneratedDate:  t.LastGeneratedDate,
		Active:             t.Active,
		AutoSend:           t.AutoSend,
		Currency:           t.Currency,
		PaymentTermsDays:   t.PaymentTermsDays,
		TaxRate:            t.TaxRate,
		DiscountType:       string(t.DiscountType),
		DiscountValue:      t.DiscountValue,
		ShippingAmount:     t.ShippingAmount,
		ShippingTaxRate:    t.ShippingTaxRate,
		Notes:              t.Notes,
		Terms:              t.Terms,
		LineItems:          datatypes.JSON(lineItemsJSON),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
