package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/payment"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles invoice payment endpoints.
type PaymentController struct {
	listUseCase *payment.ListPaymentsUseCase
	addUseCase  *payment.AddPaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(listUseCase *payment.ListPaymentsUseCase, addUseCase *payment.AddPaymentUseCase) *PaymentController {
	return &PaymentController{
		listUseCase: listUseCase,
		addUseCase:  addUseCase,
	}
}

// List handles GET /invoices/:id/payments requests.
func (c *PaymentController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodePaymentInvoiceNotFound))
	if !ok {
		return
	}

	payments, err := c.listUseCase.Execute(ctx.Request.Context(), tenantID, invoiceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaymentListResponse{Payments: dto.ToPaymentResponses(payments)})
}

// Add handles POST /invoices/:id/payments requests.
func (c *PaymentController) Add(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "id", string(domainerror.ErrCodePaymentInvoiceNotFound))
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingPaymentFields)) {
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingPaymentFields))
		return
	}

	out, err := c.addUseCase.Execute(ctx.Request.Context(), payment.AddPaymentInput{
		TenantID:    tenantID,
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		Date:        date,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		SendReceipt: req.SendReceipt,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddPaymentResponse{
		Payment: dto.ToPaymentResponse(out.Payment),
		Invoice: dto.ToInvoiceResponse(out.Invoice),
	})
}

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeMissingPaymentFields,
		domainerror.ErrCodePaymentOnCancelledInvoice,
		domainerror.ErrCodeOverpayment:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
