package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase   *invoice.ListInvoicesUseCase
	createUseCase *invoice.CreateInvoiceUseCase
	getUseCase    *invoice.GetInvoiceUseCase
	updateUseCase *invoice.UpdateInvoiceUseCase
	deleteUseCase *invoice.DeleteInvoiceUseCase
	sendUseCase   *invoice.SendInvoiceUseCase
	viewUseCase   *invoice.MarkViewedUseCase
	cancelUseCase *invoice.CancelInvoiceUseCase
	pdfUseCase    *invoice.RenderPDFUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	createUseCase *invoice.CreateInvoiceUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	updateUseCase *invoice.UpdateInvoiceUseCase,
	deleteUseCase *invoice.DeleteInvoiceUseCase,
	sendUseCase *invoice.SendInvoiceUseCase,
	viewUseCase *invoice.MarkViewedUseCase,
	cancelUseCase *invoice.CancelInvoiceUseCase,
	pdfUseCase *invoice.RenderPDFUseCase,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		sendUseCase:   sendUseCase,
		viewUseCase:   viewUseCase,
		cancelUseCase: cancelUseCase,
		pdfUseCase:    pdfUseCase,
	}
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	input := invoice.ListInvoicesInput{
		TenantID: tenantID,
		Search:   ctx.Query("search"),
		Page:     queryInt(ctx, "page"),
		Limit:    queryInt(ctx, "limit"),
	}

	if s := ctx.Query("status"); s != "" {
		status := entity.InvoiceStatus(s)
		if !status.IsValid() {
			writeError(ctx, http.StatusBadRequest, "Invalid status filter", string(domainerror.ErrCodeInvalidInvoiceFilter))
			return
		}
		input.Status = &status
	}

	var err error
	if input.ClientID, err = queryUUID(ctx, "client_id"); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id filter", string(domainerror.ErrCodeInvalidInvoiceFilter))
		return
	}
	if input.ProjectID, err = queryUUID(ctx, "project_id"); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid project_id filter", string(domainerror.ErrCodeInvalidInvoiceFilter))
		return
	}
	startDate, endDate := ctx.Query("start_date"), ctx.Query("end_date")
	if input.StartDate, err = dto.ParseOptionalDate(&startDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidInvoiceFilter))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(&endDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidInvoiceFilter))
		return
	}

	result, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(result))
}

// Create handles POST /invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingInvoiceFields)) {
		return
	}

	input, err := req.ToInput(tenantID)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingInvoiceFields))
		return
	}

	inv, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	inv, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, invoiceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// Update handles PUT /invoices/:id requests. Totals are recomputed server side.
func (c *InvoiceController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingInvoiceFields)) {
		return
	}

	input, err := req.ToInput(tenantID, invoiceID)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingInvoiceFields))
		return
	}

	inv, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tenantID, invoiceID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Send handles POST /invoices/:id/send requests. The body is optional.
func (c *InvoiceController) Send(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	var req dto.SendInvoiceRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingRecipient)) {
		return
	}

	out, err := c.sendUseCase.Execute(ctx.Request.Context(), invoice.SendInvoiceInput{
		TenantID:       tenantID,
		InvoiceID:      invoiceID,
		RecipientEmail: req.RecipientEmail,
		Message:        req.Message,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SendInvoiceResponse{
		Invoice:    dto.ToInvoiceResponse(out.Invoice),
		EmailJobID: out.EmailJobID.String(),
		Recipient:  out.Recipient,
	})
}

// MarkViewed handles POST /invoices/:id/view requests.
func (c *InvoiceController) MarkViewed(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	inv, err := c.viewUseCase.Execute(ctx.Request.Context(), tenantID, invoiceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// Cancel handles POST /invoices/:id/cancel requests.
func (c *InvoiceController) Cancel(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	var req dto.CancelInvoiceRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingInvoiceFields)) {
		return
	}

	inv, err := c.cancelUseCase.Execute(ctx.Request.Context(), invoice.CancelInvoiceInput{
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// PDF handles GET /invoices/:id/pdf requests.
func (c *InvoiceController) PDF(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodeInvoiceNotFound))
	if !ok {
		return
	}

	out, err := c.pdfUseCase.Execute(ctx.Request.Context(), tenantID, invoiceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `inline; filename="`+out.Filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", out.Content)
}

// getStatusCodeForInvoiceError maps invoice error codes to HTTP status codes.
func getStatusCodeForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound,
		domainerror.ErrCodeInvoiceClientNotFound,
		domainerror.ErrCodeInvoiceProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvoiceConcurrentUpdate:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidLineItem,
		domainerror.ErrCodeInvalidTaxRate,
		domainerror.ErrCodeInvalidDiscount,
		domainerror.ErrCodeInvalidShipping,
		domainerror.ErrCodeMissingInvoiceFields,
		domainerror.ErrCodeInvalidInvoiceDates,
		domainerror.ErrCodeInvalidStatusTransition,
		domainerror.ErrCodeInvoiceNotEditable,
		domainerror.ErrCodeTotalBelowAmountPaid,
		domainerror.ErrCodeInvoiceNotDeletable,
		domainerror.ErrCodeMissingRecipient,
		domainerror.ErrCodeInvalidInvoiceFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

