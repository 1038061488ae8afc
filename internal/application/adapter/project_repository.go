package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// ProjectFilter defines filter options for listing projects.
type ProjectFilter struct {
	TenantID uuid.UUID
	ClientID *uuid.UUID
	Status   *entity.ProjectStatus
}

// ProjectRepository defines the interface for project persistence operations.
type ProjectRepository interface {
	// Create creates a new project in the database.
	Create(ctx context.Context, project *entity.Project) error

	// FindByID retrieves a project of the tenant by its ID.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Project, error)

	// FindByFilter retrieves projects matching the filter, newest first.
	FindByFilter(ctx context.Context, filter ProjectFilter) ([]*entity.Project, error)

	// Update updates an existing project in the database.
	Update(ctx context.Context, project *entity.Project) error
}
