package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

// projectRepository implements the adapter.ProjectRepository interface.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance.
func NewProjectRepository(db *gorm.DB) adapter.ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

// Create creates a new project in the database.
func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(model.ProjectFromEntity(project)).Error
}

// FindByID retrieves a project of the tenant by its ID.
func (r *projectRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Project, error) {
	var projectModel model.ProjectModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&projectModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProjectNotFound
		}
		return nil, result.Error
	}
	return projectModel.ToEntity(), nil
}

// FindByFilter retrieves projects matching the filter, newest first.
func (r *projectRepository) FindByFilter(ctx context.Context, filter adapter.ProjectFilter) ([]*entity.Project, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", filter.TenantID)
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var models []model.ProjectModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	projects := make([]*entity.Project, len(models))
	for i := range models {
		projects[i] = models[i].ToEntity()
	}
	return projects, nil
}

// Update updates an existing project in the database.
func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(model.ProjectFromEntity(project)).Error
}
