package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/project"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// ProjectController handles project endpoints.
type ProjectController struct {
	listUseCase   *project.ListProjectsUseCase
	createUseCase *project.CreateProjectUseCase
	getUseCase    *project.GetProjectUseCase
	updateUseCase *project.UpdateProjectUseCase
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	listUseCase *project.ListProjectsUseCase,
	createUseCase *project.CreateProjectUseCase,
	getUseCase *project.GetProjectUseCase,
	updateUseCase *project.UpdateProjectUseCase,
) *ProjectController {
	return &ProjectController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// List handles GET /projects requests, optionally filtered by client_id and status.
func (c *ProjectController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	filter := adapter.ProjectFilter{TenantID: tenantID}

	clientID, err := queryUUID(ctx, "client_id")
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id filter", string(domainerror.ErrCodeMissingProjectFields))
		return
	}
	filter.ClientID = clientID

	if s := ctx.Query("status"); s != "" {
		status := entity.ProjectStatus(s)
		filter.Status = &status
	}

	projects, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(projects))
}

// Create handles POST /projects requests.
func (c *ProjectController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingProjectFields)) {
		return
	}

	input := project.CreateProjectInput{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatus(req.Status),
		HourlyRate:  req.HourlyRate,
	}

	clientID, err := dto.ParseOptionalID(&req.ClientID)
	if err != nil || clientID == nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id", string(domainerror.ErrCodeMissingProjectFields))
		return
	}
	input.ClientID = *clientID

	if input.StartDate, err = dto.ParseOptionalDate(req.StartDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidProjectDates))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(req.EndDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidProjectDates))
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProjectResponse(created))
}

// Get handles GET /projects/:id requests.
func (c *ProjectController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeProjectNotFound))
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(found))
}

// Update handles PATCH /projects/:id requests.
func (c *ProjectController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeProjectNotFound))
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingProjectFields)) {
		return
	}

	input := project.UpdateProjectInput{
		TenantID:     tenantID,
		ProjectID:    projectID,
		Name:         req.Name,
		Description:  req.Description,
		HourlyRate:   req.HourlyRate,
		ClearEndDate: req.ClearEndDate,
	}
	if req.Status != nil {
		status := entity.ProjectStatus(*req.Status)
		input.Status = &status
	}

	var err error
	if input.ClientID, err = dto.ParseOptionalID(req.ClientID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id", string(domainerror.ErrCodeMissingProjectFields))
		return
	}
	if input.StartDate, err = dto.ParseOptionalDate(req.StartDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidProjectDates))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(req.EndDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidProjectDates))
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(updated))
}

func getStatusCodeForProjectError(code domainerror.ProjectErrorCode) int {
	switch code {
	case domainerror.ErrCodeProjectNotFound, domainerror.ErrCodeProjectClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeProjectNameRequired,
		domainerror.ErrCodeInvalidProjectStatus,
		domainerror.ErrCodeInvalidProjectDates,
		domainerror.ErrCodeMissingProjectFields,
		domainerror.ErrCodeInvalidHourlyRate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
