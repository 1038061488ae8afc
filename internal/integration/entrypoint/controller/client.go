package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/client"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// ClientController handles client endpoints.
type ClientController struct {
	listUseCase   *client.ListClientsUseCase
	createUseCase *client.CreateClientUseCase
	getUseCase    *client.GetClientUseCase
	updateUseCase *client.UpdateClientUseCase
	deleteUseCase *client.DeleteClientUseCase
}

// NewClientController creates a new client controller instance.
func NewClientController(
	listUseCase *client.ListClientsUseCase,
	createUseCase *client.CreateClientUseCase,
	getUseCase *client.GetClientUseCase,
	updateUseCase *client.UpdateClientUseCase,
	deleteUseCase *client.DeleteClientUseCase,
) *ClientController {
	return &ClientController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /clients requests.
func (c *ClientController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	clients, err := c.listUseCase.Execute(ctx.Request.Context(), tenantID, ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(clients))
}

// Create handles POST /clients requests.
func (c *ClientController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingClientFields)) {
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), client.CreateClientInput{
		TenantID: tenantID,
		Fields: client.Fields{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Company:  req.Company,
			Address:  req.Address,
			Currency: req.Currency,
			Notes:    req.Notes,
		},
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(created))
}

// Get handles GET /clients/:id requests.
func (c *ClientController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	clientID, ok := pathID(ctx, "id", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, clientID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(found))
}

// Update handles PATCH /clients/:id requests.
func (c *ClientController) Update(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	clientID, ok := pathID(ctx, "id", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingClientFields)) {
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), client.UpdateClientInput{
		TenantID: tenantID,
		ClientID: clientID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Address:  req.Address,
		Currency: req.Currency,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(updated))
}

// Delete handles DELETE /clients/:id requests. Clients with invoices are kept.
func (c *ClientController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	clientID, ok := pathID(ctx, "id", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tenantID, clientID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func getStatusCodeForClientError(code domainerror.ClientErrorCode) int {
	switch code {
	case domainerror.ErrCodeClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeClientHasInvoices:
		return http.StatusConflict
	case domainerror.ErrCodeClientNameRequired,
		domainerror.ErrCodeClientNameTooLong,
		domainerror.ErrCodeInvalidClientEmail,
		domainerror.ErrCodeMissingClientFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
