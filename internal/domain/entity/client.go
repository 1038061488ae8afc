package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer of the agency. Invoices and projects belong to a client.
type Client struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	Currency  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewClient creates a new Client entity.
func NewClient(tenantID uuid.UUID, name, email, phone, company, address, currency, notes string) *Client {
	now := time.Now().UTC()

	return &Client{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Address:   address,
		Currency:  currency,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
