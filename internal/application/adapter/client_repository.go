package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ClientRepository defines the interface for client persistence operations.
type ClientRepository interface {
	// Create creates a new client in the database.
	Create(ctx context.Context, client *entity.Client) error

	// FindByID retrieves a client of the tenant by its ID.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error)

	// FindByTenant retrieves the tenant's clients, optionally filtered by a name/email/company search.
	FindByTenant(ctx context.Context, tenantID uuid.UUID, search string) ([]*entity.Client, error)

	// Update updates an existing client in the database.
	Update(ctx context.Context, client *entity.Client) error

	// Delete soft-deletes a client.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
