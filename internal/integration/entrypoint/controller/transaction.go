package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/usecase/report"
	"github.com/agency-crm/backend/internal/application/usecase/transaction"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	getUseCase     *transaction.GetTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	summaryUseCase *report.GetTransactionSummaryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	summaryUseCase *report.GetTransactionSummaryUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		TenantID: tenantID,
		Search:   ctx.Query("search"),
		Page:     queryInt(ctx, "page"),
		Limit:    queryInt(ctx, "limit"),
	}

	var err error
	startDate, endDate := ctx.Query("start_date"), ctx.Query("end_date")
	if input.StartDate, err = dto.ParseOptionalDate(&startDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(&endDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}

	// Malformed category IDs are skipped.
	if categoryIDsStr := ctx.Query("category_ids"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if input.ClientID, err = queryUUID(ctx, "client_id"); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id filter", string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}
	if input.ProjectID, err = queryUUID(ctx, "project_id"); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid project_id filter", string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingTransactionFields)) {
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}

	input := transaction.CreateTransactionInput{
		TenantID:    tenantID,
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	if !parseReferenceIDs(ctx, req.CategoryID, req.ClientID, req.ProjectID, &input.CategoryID, &input.ClientID, &input.ProjectID) {
		return
	}
	if input.InvoiceID, err = dto.ParseOptionalID(req.InvoiceID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid invoice_id format", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, transactionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingTransactionFields)) {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		TenantID:      tenantID,
		Description:   req.Description,
		Amount:        req.Amount,
		ClearCategory: req.ClearCategory,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}

	var err error
	if input.Date, err = dto.ParseOptionalDate(req.Date); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if !parseReferenceIDs(ctx, req.CategoryID, req.ClientID, req.ProjectID, &input.CategoryID, &input.ClientID, &input.ProjectID) {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		TenantID:      tenantID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /transactions/summary requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	input := report.GetTransactionSummaryInput{TenantID: tenantID}

	var err error
	startDate, endDate := ctx.Query("start_date"), ctx.Query("end_date")
	if input.StartDate, err = dto.ParseOptionalDate(&startDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(&endDate); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeInvalidTransactionFilter))
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(summary))
}

func parseReferenceIDs(ctx *gin.Context, categoryID, clientID, projectID *string, categoryOut, clientOut, projectOut **uuid.UUID) bool {
	var err error
	if *categoryOut, err = dto.ParseOptionalID(categoryID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid category_id format", string(domainerror.ErrCodeMissingTransactionFields))
		return false
	}
	if *clientOut, err = dto.ParseOptionalID(clientID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid client_id format", string(domainerror.ErrCodeMissingTransactionFields))
		return false
	}
	if *projectOut, err = dto.ParseOptionalID(projectID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid project_id format", string(domainerror.ErrCodeMissingTransactionFields))
		return false
	}
	return true
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnClientNotFound,
		domainerror.ErrCodeTxnProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidTransactionFilter,
		domainerror.ErrCodeInvalidUpdateColumn,
		domainerror.ErrCodeCategoryTypeMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
