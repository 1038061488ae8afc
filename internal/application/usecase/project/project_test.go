package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

func projectCode(t *testing.T, err error) domainerror.ProjectErrorCode {
	t.Helper()
	var projectErr *domainerror.ProjectError
	require.True(t, errors.As(err, &projectErr), "expected ProjectError, got %v", err)
	return projectErr.Code
}

func TestProjectUseCases(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	projectRepo := persistence.NewProjectRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	tenantID := uuid.New()

	client := entity.NewClient(tenantID, "Initech", "", "", "", "", "USD", "")
	require.NoError(t, clientRepo.Create(ctx, client))

	create := NewCreateProjectUseCase(projectRepo, clientRepo)
	update := NewUpdateProjectUseCase(projectRepo, clientRepo)

	t.Run("unknown client", func(t *testing.T) {
		_, err := create.Execute(ctx, CreateProjectInput{TenantID: tenantID, ClientID: uuid.New(), Name: "Site"})
		assert.Equal(t, domainerror.ErrCodeProjectClientNotFound, projectCode(t, err))
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)
		_, err := create.Execute(ctx, CreateProjectInput{
			TenantID: tenantID, ClientID: client.ID, Name: "Site", StartDate: &start, EndDate: &end,
		})
		assert.Equal(t, domainerror.ErrCodeInvalidProjectDates, projectCode(t, err))
	})

	created, err := create.Execute(ctx, CreateProjectInput{
		TenantID:   tenantID,
		ClientID:   client.ID,
		Name:       "Website redesign",
		HourlyRate: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusPlanning, created.Status)

	active := entity.ProjectStatusActive
	updated, err := update.Execute(ctx, UpdateProjectInput{TenantID: tenantID, ProjectID: created.ID, Status: &active})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusActive, updated.Status)

	bogus := entity.ProjectStatus("archived")
	_, err = update.Execute(ctx, UpdateProjectInput{TenantID: tenantID, ProjectID: created.ID, Status: &bogus})
	assert.Equal(t, domainerror.ErrCodeInvalidProjectStatus, projectCode(t, err))

	projects, err := NewListProjectsUseCase(projectRepo).Execute(ctx, adapter.ProjectFilter{TenantID: tenantID, Status: &active})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website redesign", projects[0].Name)

	_, err = NewGetProjectUseCase(projectRepo).Execute(ctx, uuid.New(), created.ID)
	assert.Equal(t, domainerror.ErrCodeProjectNotFound, projectCode(t, err))
}
