package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateClientRequest represents the request body for client creation.
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email,omitempty" binding:"omitempty,max=255"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company  string `json:"company,omitempty" binding:"omitempty,max=255"`
	Address  string `json:"address,omitempty" binding:"omitempty,max=1000"`
	Currency string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Notes    string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// UpdateClientRequest represents the request body for a partial client update.
type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company  *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Address  *string `json:"address,omitempty" binding:"omitempty,max=1000"`
	Currency *string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Notes    *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse represents the response for listing clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a client entity.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		Currency:  c.Currency,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientListResponse converts client entities.
func ToClientListResponse(clients []*entity.Client) ClientListResponse {
	return ClientListResponse{
		Clients: lo.Map(clients, func(c *entity.Client, _ int) ClientResponse { return ToClientResponse(c) }),
	}
}
