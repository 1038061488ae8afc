package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/agency-crm/backend/internal/application/usecase/transaction"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description,omitempty" binding:"omitempty,max=255"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Type        string `json:"type" binding:"required,oneof=expense income"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Description: cat.Description,
		Color:       cat.Color,
		Icon:        cat.Icon,
		Type:        string(cat.Type),
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts category entities.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	return CategoryListResponse{
		Categories: lo.Map(categories, func(c *entity.Category, _ int) CategoryResponse { return ToCategoryResponse(c) }),
	}
}

// SuggestCategoriesRequest represents the request body for AI category suggestions.
type SuggestCategoriesRequest struct {
	Limit         int     `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
	Apply         bool    `json:"apply,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty" binding:"omitempty,min=0,max=1"`
}

// CategorySuggestionResponse is one suggested assignment.
type CategorySuggestionResponse struct {
	TransactionID string  `json:"transaction_id"`
	CategoryID    string  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning,omitempty"`
	Applied       bool    `json:"applied"`
}

// SuggestCategoriesResponse represents the response for AI category suggestions.
type SuggestCategoriesResponse struct {
	Processed   int                          `json:"processed"`
	Suggestions []CategorySuggestionResponse `json:"suggestions"`
}

// ToSuggestCategoriesResponse converts the suggestion output.
func ToSuggestCategoriesResponse(out *transaction.SuggestCategoriesOutput) SuggestCategoriesResponse {
	return SuggestCategoriesResponse{
		Processed: out.Processed,
		Suggestions: lo.Map(out.Suggestions, func(s *transaction.SuggestionOutput, _ int) CategorySuggestionResponse {
			return CategorySuggestionResponse{
				TransactionID: s.TransactionID.String(),
				CategoryID:    s.CategoryID.String(),
				CategoryName:  s.CategoryName,
				Confidence:    s.Confidence,
				Reasoning:     s.Reasoning,
				Applied:       s.Applied,
			}
		}),
	}
}
