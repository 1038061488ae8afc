package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
	"github.com/agency-crm/backend/internal/integration/entrypoint/middleware"
)

// respondError writes the coded domain error carried by err. Anything else is
// logged and answered with a generic 500.
func respondError(ctx *gin.Context, err error) {
	var (
		invoiceErr     *domainerror.InvoiceError
		paymentErr     *domainerror.PaymentError
		clientErr      *domainerror.ClientError
		projectErr     *domainerror.ProjectError
		taskErr        *domainerror.TaskError
		recurringErr   *domainerror.RecurringError
		budgetErr      *domainerror.BudgetError
		transactionErr *domainerror.TransactionError
		categoryErr    *domainerror.CategoryError
		aiErr          *domainerror.AISuggestionError
	)

	switch {
	case errors.As(err, &paymentErr):
		writeError(ctx, getStatusCodeForPaymentError(paymentErr.Code), paymentErr.Message, string(paymentErr.Code))
	case errors.As(err, &invoiceErr):
		writeError(ctx, getStatusCodeForInvoiceError(invoiceErr.Code), invoiceErr.Message, string(invoiceErr.Code))
	case errors.As(err, &clientErr):
		writeError(ctx, getStatusCodeForClientError(clientErr.Code), clientErr.Message, string(clientErr.Code))
	case errors.As(err, &projectErr):
		writeError(ctx, getStatusCodeForProjectError(projectErr.Code), projectErr.Message, string(projectErr.Code))
	case errors.As(err, &taskErr):
		writeError(ctx, getStatusCodeForTaskError(taskErr.Code), taskErr.Message, string(taskErr.Code))
	case errors.As(err, &recurringErr):
		writeError(ctx, getStatusCodeForRecurringError(recurringErr.Code), recurringErr.Message, string(recurringErr.Code))
	case errors.As(err, &budgetErr):
		writeError(ctx, getStatusCodeForBudgetError(budgetErr.Code), budgetErr.Message, string(budgetErr.Code))
	case errors.As(err, &transactionErr):
		writeError(ctx, getStatusCodeForTransactionError(transactionErr.Code), transactionErr.Message, string(transactionErr.Code))
	case errors.As(err, &categoryErr):
		writeError(ctx, getStatusCodeForCategoryError(categoryErr.Code), categoryErr.Message, string(categoryErr.Code))
	case errors.As(err, &aiErr):
		writeError(ctx, getStatusCodeForAIError(aiErr.Code), aiErr.Message, string(aiErr.Code))
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		writeError(ctx, http.StatusInternalServerError, "An internal error occurred", "")
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// tenantFromContext returns the caller's tenant or answers 401.
func tenantFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
		return uuid.Nil, false
	}
	return tenantID, true
}

// pathID parses the named path parameter or answers 400 with code.
func pathID(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid "+name+" format", code)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body or answers 400 with code.
func bindJSON(ctx *gin.Context, req interface{}, code string) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), code)
		return false
	}
	return true
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(ctx *gin.Context, name string) (*uuid.UUID, error) {
	v := ctx.Query(name)
	return dto.ParseOptionalID(&v)
}

// queryInt parses an optional integer query parameter, ignoring malformed values.
func queryInt(ctx *gin.Context, name string) int {
	n, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return n
}
