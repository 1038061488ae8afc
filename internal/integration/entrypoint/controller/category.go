package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/category"
	"github.com/agency-crm/backend/internal/application/usecase/transaction"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles transaction category endpoints.
type CategoryController struct {
	listUseCase    *category.ListCategoriesUseCase
	createUseCase  *category.CreateCategoryUseCase
	deleteUseCase  *category.DeleteCategoryUseCase
	suggestUseCase *transaction.SuggestCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	suggestUseCase *transaction.SuggestCategoriesUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		deleteUseCase:  deleteUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /transactions/categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var categoryTypeFilter *entity.CategoryType
	if categoryType := ctx.Query("type"); categoryType != "" {
		ct := entity.CategoryType(categoryType)
		categoryTypeFilter = &ct
	}

	categories, err := c.listUseCase.Execute(ctx.Request.Context(), tenantID, categoryTypeFilter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Create handles POST /transactions/categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingCategoryFields)) {
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Type:        entity.CategoryType(req.Type),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(created))
}

// Delete handles DELETE /transactions/categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "id", string(domainerror.ErrCodeCategoryNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tenantID, categoryID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Suggest handles POST /transactions/categories/suggest requests. With apply set, confident
// suggestions are written to the transactions.
func (c *CategoryController) Suggest(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoriesRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req, string(domainerror.ErrCodeAIEmptyDescription)) {
		return
	}

	out, err := c.suggestUseCase.Execute(ctx.Request.Context(), transaction.SuggestCategoriesInput{
		TenantID:      tenantID,
		Limit:         req.Limit,
		Apply:         req.Apply,
		MinConfidence: req.MinConfidence,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoriesResponse(out))
}

func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists, domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForAIError(code domainerror.AISuggestionErrorCode) int {
	switch code {
	case domainerror.ErrCodeAIEmptyDescription, domainerror.ErrCodeAINoCategories:
		return http.StatusBadRequest
	case domainerror.ErrCodeAIServiceError, domainerror.ErrCodeAIAuthError:
		return http.StatusBadGateway
	case domainerror.ErrCodeAIServiceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAIRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
