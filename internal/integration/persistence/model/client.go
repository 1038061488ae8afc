package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Email     string         `gorm:"type:varchar(255)"`
	Phone     string         `gorm:"type:varchar(50)"`
	Company   string         `gorm:"type:varchar(255)"`
	Address   string         `gorm:"type:text"`
	Currency  string         `gorm:"type:varchar(3);not null"`
	Notes     string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Client{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Address:   m.Address,
		Currency:  m.Currency,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// ClientFromEntity creates a ClientModel from a domain Client entity.
func ClientFromEntity(client *entity.Client) *ClientModel {
	var deletedAt gorm.DeletedAt
	if client.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *client.DeletedAt, Valid: true}
	}

	return &ClientModel{
		ID:        client.ID,
		TenantID:  client.TenantID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Address:   client.Address,
		Currency:  client.Currency,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
