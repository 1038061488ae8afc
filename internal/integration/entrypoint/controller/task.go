package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/task"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// TaskController handles project task and recurring task endpoints.
type TaskController struct {
	listUseCase            *task.ListTasksUseCase
	createUseCase          *task.CreateTaskUseCase
	updateUseCase          *task.UpdateTaskUseCase
	createRecurringUseCase *task.CreateRecurringTaskUseCase
	listRecurringUseCase   *task.ListRecurringTasksUseCase
}

// NewTaskController creates a new task controller instance.
func NewTaskController(
	listUseCase *task.ListTasksUseCase,
	createUseCase *task.CreateTaskUseCase,
	updateUseCase *task.UpdateTaskUseCase,
	createRecurringUseCase *task.CreateRecurringTaskUseCase,
	listRecurringUseCase *task.ListRecurringTasksUseCase,
) *TaskController {
	return &TaskController{
		listUseCase:            listUseCase,
		createUseCase:          createUseCase,
		updateUseCase:          updateUseCase,
		createRecurringUseCase: createRecurringUseCase,
		listRecurringUseCase:   listRecurringUseCase,
	}
}

// List handles GET /projects/:id/tasks requests.
func (c *TaskController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTaskProjectNotFound))
	if !ok {
		return
	}

	var status *entity.TaskStatus
	if s := ctx.Query("status"); s != "" {
		st := entity.TaskStatus(s)
		status = &st
	}

	tasks, err := c.listUseCase.Execute(ctx.Request.Context(), tenantID, projectID, status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskResponses(tasks)})
}

// Create handles POST /projects/:id/tasks requests.
func (c *TaskController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTaskProjectNotFound))
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingTaskFields)) {
		return
	}
	dueDate, err := dto.ParseOptionalDate(req.DueDate)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingTaskFields))
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), task.CreateTaskInput{
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    entity.TaskPriority(req.Priority),
		Status:      entity.TaskStatus(req.Status),
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTaskResponse(created))
}

// Update handles PATCH /projects/:id/tasks/:taskId requests.
func (c *TaskController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTaskProjectNotFound))
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "taskId", string(domainerror.ErrCodeTaskNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingTaskFields)) {
		return
	}

	input := task.UpdateTaskInput{
		TenantID:     tenantID,
		ProjectID:    projectID,
		TaskID:       taskID,
		Title:        req.Title,
		Description:  req.Description,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Status != nil {
		status := entity.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := entity.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	var err error
	if input.DueDate, err = dto.ParseOptionalDate(req.DueDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingTaskFields))
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaskResponse(updated))
}

// CreateRecurring handles POST /projects/:id/recurring-tasks requests.
func (c *TaskController) CreateRecurring(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTaskProjectNotFound))
	if !ok {
		return
	}

	var req dto.CreateRecurringTaskRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingRecurringFields)) {
		return
	}
	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidRecurrenceDates))
		return
	}
	endDate, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidRecurrenceDates))
		return
	}

	created, err := c.createRecurringUseCase.Execute(ctx.Request.Context(), task.CreateRecurringTaskInput{
		TenantID:    tenantID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    entity.TaskPriority(req.Priority),
		Frequency:   valueobject.Frequency(req.Frequency),
		Interval:    req.Interval,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringTaskResponse(created))
}

// ListRecurring handles GET /projects/:id/recurring-tasks requests.
func (c *TaskController) ListRecurring(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTaskProjectNotFound))
	if !ok {
		return
	}

	items, err := c.listRecurringUseCase.Execute(ctx.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"recurring_tasks": dto.ToRecurringTaskResponses(items)})
}

func getStatusCodeForTaskError(code domainerror.TaskErrorCode) int {
	switch code {
	case domainerror.ErrCodeTaskNotFound, domainerror.ErrCodeTaskProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTaskTitleRequired,
		domainerror.ErrCodeInvalidTaskStatus,
		domainerror.ErrCodeInvalidTaskPriority,
		domainerror.ErrCodeMissingTaskFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
