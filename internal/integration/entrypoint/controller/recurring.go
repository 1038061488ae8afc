package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/recurring"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring invoice template endpoints.
type RecurringController struct {
	listUseCase     *recurring.ListTemplatesUseCase
	createUseCase   *recurring.CreateTemplateUseCase
	getUseCase      *recurring.GetTemplateUseCase
	updateUseCase   *recurring.UpdateTemplateUseCase
	deleteUseCase   *recurring.DeleteTemplateUseCase
	generateUseCase *recurring.GenerateDueUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	listUseCase *recurring.ListTemplatesUseCase,
	createUseCase *recurring.CreateTemplateUseCase,
	getUseCase *recurring.GetTemplateUseCase,
	updateUseCase *recurring.UpdateTemplateUseCase,
	deleteUseCase *recurring.DeleteTemplateUseCase,
	generateUseCase *recurring.GenerateDueUseCase,
) *RecurringController {
	return &RecurringController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		generateUseCase: generateUseCase,
	}
}

// List handles GET /recurring-invoices requests. active=true hides paused templates.
func (c *RecurringController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	templates, err := c.listUseCase.Execute(ctx.Request.Context(), tenantID, ctx.Query("active") == "true")
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringInvoiceListResponse(templates))
}

// Create handles POST /recurring-invoices requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.RecurringInvoiceRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingRecurringFields)) {
		return
	}
	input, err := req.ToTemplateInput()
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingRecurringFields))
		return
	}

	tpl, err := c.createUseCase.Execute(ctx.Request.Context(), recurring.CreateTemplateInput{
		TenantID:      tenantID,
		TemplateInput: input,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringInvoiceResponse(tpl))
}

// Get handles GET /recurring-invoices/:id requests.
func (c *RecurringController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	templateID, ok := pathID(ctx, "id", string(domainerror.ErrCodeRecurringTemplateNotFound))
	if !ok {
		return
	}

	tpl, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, templateID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringInvoiceResponse(tpl))
}

// Update handles PUT /recurring-invoices/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	templateID, ok := pathID(ctx, "id", string(domainerror.ErrCodeRecurringTemplateNotFound))
	if !ok {
		return
	}

	var req dto.RecurringInvoiceRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingRecurringFields)) {
		return
	}
	input, err := req.ToTemplateInput()
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingRecurringFields))
		return
	}

	tpl, err := c.updateUseCase.Execute(ctx.Request.Context(), recurring.UpdateTemplateInput{
		TenantID:      tenantID,
		TemplateID:    templateID,
		Active:        req.Active,
		TemplateInput: input,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringInvoiceResponse(tpl))
}

// Delete handles DELETE /recurring-invoices/:id requests. Generated invoices are kept.
func (c *RecurringController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	templateID, ok := pathID(ctx, "id", string(domainerror.ErrCodeRecurringTemplateNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tenantID, templateID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Generate handles POST /recurring-invoices/generate requests, running the
// caller's due schedules immediately.
func (c *RecurringController) Generate(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	out, err := c.generateUseCase.Execute(ctx.Request.Context(), recurring.GenerateDueInput{
		Now:      time.Now().UTC(),
		TenantID: &tenantID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGenerateDueResponse(out))
}

func getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringTemplateNotFound,
		domainerror.ErrCodeRecurringTaskNotFound,
		domainerror.ErrCodeRecurringClientNotFound,
		domainerror.ErrCodeRecurringProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidRecurrence,
		domainerror.ErrCodeInvalidRecurrenceDates,
		domainerror.ErrCodeTemplateHasNoLineItems,
		domainerror.ErrCodeMissingRecurringFields,
		domainerror.ErrCodeInvalidRecurringTemplate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
