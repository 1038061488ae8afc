package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

func taskCode(t *testing.T, err error) domainerror.TaskErrorCode {
	t.Helper()
	var taskErr *domainerror.TaskError
	require.True(t, errors.As(err, &taskErr), "expected TaskError, got %v", err)
	return taskErr.Code
}

func TestTaskUseCases(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	taskRepo := persistence.NewTaskRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	tenantID := uuid.New()

	client := entity.NewClient(tenantID, "Globex", "", "", "", "", "USD", "")
	require.NoError(t, clientRepo.Create(ctx, client))
	project := entity.NewProject(tenantID, client.ID, "Website", "", decimal.NewFromInt(90), nil, nil)
	require.NoError(t, projectRepo.Create(ctx, project))

	create := NewCreateTaskUseCase(taskRepo, projectRepo)
	update := NewUpdateTaskUseCase(taskRepo)
	list := NewListTasksUseCase(taskRepo, projectRepo)

	t.Run("create validates input", func(t *testing.T) {
		tests := []struct {
			name  string
			input CreateTaskInput
			code  domainerror.TaskErrorCode
		}{
			{"blank title", CreateTaskInput{TenantID: tenantID, ProjectID: project.ID, Title: "  "}, domainerror.ErrCodeTaskTitleRequired},
			{"bad priority", CreateTaskInput{TenantID: tenantID, ProjectID: project.ID, Title: "x", Priority: "asap"}, domainerror.ErrCodeInvalidTaskPriority},
			{"bad status", CreateTaskInput{TenantID: tenantID, ProjectID: project.ID, Title: "x", Status: "blocked"}, domainerror.ErrCodeInvalidTaskStatus},
			{"other tenant", CreateTaskInput{TenantID: uuid.New(), ProjectID: project.ID, Title: "x"}, domainerror.ErrCodeTaskProjectNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := create.Execute(ctx, tt.input)
				assert.Equal(t, tt.code, taskCode(t, err))
			})
		}
	})

	created, err := create.Execute(ctx, CreateTaskInput{
		TenantID:  tenantID,
		ProjectID: project.ID,
		Title:     " Wireframes ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wireframes", created.Title)
	assert.Equal(t, entity.TaskStatusTodo, created.Status)
	assert.Equal(t, entity.TaskPriorityMedium, created.Priority)

	done := entity.TaskStatusDone
	updated, err := update.Execute(ctx, UpdateTaskInput{TenantID: tenantID, ProjectID: project.ID, TaskID: created.ID, Status: &done})
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	reopened := entity.TaskStatusInProgress
	updated, err = update.Execute(ctx, UpdateTaskInput{TenantID: tenantID, ProjectID: project.ID, TaskID: created.ID, Status: &reopened})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	_, err = update.Execute(ctx, UpdateTaskInput{TenantID: tenantID, ProjectID: project.ID, TaskID: uuid.New(), Status: &done})
	assert.Equal(t, domainerror.ErrCodeTaskNotFound, taskCode(t, err))

	tasks, err := list.Execute(ctx, tenantID, project.ID, &reopened)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	tasks, err = list.Execute(ctx, tenantID, project.ID, &done)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateRecurringTaskUseCase(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	recurringRepo := persistence.NewRecurringTaskRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	tenantID := uuid.New()

	client := entity.NewClient(tenantID, "Globex", "", "", "", "", "USD", "")
	require.NoError(t, clientRepo.Create(ctx, client))
	project := entity.NewProject(tenantID, client.ID, "Retainer", "", decimal.Zero, nil, nil)
	require.NoError(t, projectRepo.Create(ctx, project))

	create := NewCreateRecurringTaskUseCase(recurringRepo, projectRepo)
	list := NewListRecurringTasksUseCase(recurringRepo, projectRepo)
	start := time.Date(2024, 1, 31, 15, 30, 0, 0, time.UTC)

	_, err := create.Execute(ctx, CreateRecurringTaskInput{
		TenantID: tenantID, ProjectID: project.ID, Title: "Report", Frequency: "hourly", StartDate: start,
	})
	var recErr *domainerror.RecurringError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, domainerror.ErrCodeInvalidRecurrence, recErr.Code)

	before := start.AddDate(0, 0, -1)
	_, err = create.Execute(ctx, CreateRecurringTaskInput{
		TenantID: tenantID, ProjectID: project.ID, Title: "Report",
		Frequency: valueobject.FrequencyMonthly, StartDate: start, EndDate: &before,
	})
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, domainerror.ErrCodeInvalidRecurrenceDates, recErr.Code)

	recurring, err := create.Execute(ctx, CreateRecurringTaskInput{
		TenantID: tenantID, ProjectID: project.ID, Title: "Monthly report",
		Frequency: valueobject.FrequencyMonthly, StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, recurring.Recurrence.Interval)
	assert.Equal(t, 31, recurring.AnchorDay)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), recurring.NextDueDate)

	all, err := list.Execute(ctx, tenantID, project.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active)

	_, err = list.Execute(ctx, uuid.New(), project.ID)
	assert.Equal(t, domainerror.ErrCodeTaskProjectNotFound, taskCode(t, err))
}
