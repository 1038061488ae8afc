package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/report"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reporting endpoints.
type ReportController struct {
	financialUseCase *report.GetFinancialReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(financialUseCase *report.GetFinancialReportUseCase) *ReportController {
	return &ReportController{
		financialUseCase: financialUseCase,
	}
}

// Financial handles GET /reports/financial requests. Both start_date and end_date are required.
func (c *ReportController) Financial(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	startDate, err := dto.ParseDate(ctx.Query("start_date"))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "start_date: "+err.Error(), string(domainerror.ErrCodeInvalidDateRange))
		return
	}
	endDate, err := dto.ParseDate(ctx.Query("end_date"))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "end_date: "+err.Error(), string(domainerror.ErrCodeInvalidDateRange))
		return
	}

	result, err := c.financialUseCase.Execute(ctx.Request.Context(), report.GetFinancialReportInput{
		TenantID:  tenantID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialReportResponse(result))
}
