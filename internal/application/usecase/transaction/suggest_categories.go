package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

const (
	// DefaultSuggestionBatch bounds how many uncategorized transactions go to the model at once.
	DefaultSuggestionBatch = 50
	// DefaultApplyConfidence is the minimum confidence at which a suggestion is applied.
	DefaultApplyConfidence = 0.8
)

// SuggestCategoriesInput represents the input for category suggestions.
type SuggestCategoriesInput struct {
	TenantID      uuid.UUID
	Limit         int
	Apply         bool
	MinConfidence float64
}

// SuggestionOutput is one suggested category assignment.
type SuggestionOutput struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	CategoryName  string
	Confidence    float64
	Reasoning     string
	Applied       bool
}

// SuggestCategoriesOutput represents the output of category suggestions.
type SuggestCategoriesOutput struct {
	Processed   int
	Suggestions []*SuggestionOutput
}

// SuggestCategoriesUseCase asks the AI suggester to categorize uncategorized transactions.
type SuggestCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	suggester       adapter.CategorySuggester
}

// NewSuggestCategoriesUseCase creates a new SuggestCategoriesUseCase instance.
func NewSuggestCategoriesUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	suggester adapter.CategorySuggester,
) *SuggestCategoriesUseCase {
	return &SuggestCategoriesUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		suggester:       suggester,
	}
}

// Execute fetches suggestions and, when Apply is set, assigns the confident ones.
func (uc *SuggestCategoriesUseCase) Execute(ctx context.Context, input SuggestCategoriesInput) (*SuggestCategoriesOutput, error) {
	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, domainerror.NewAISuggestionError(
			domainerror.ErrCodeAIServiceUnavailable,
			"category suggestions are not configured",
			domainerror.ErrAIServiceUnavailable,
		)
	}

	limit := input.Limit
	if limit <= 0 || limit > DefaultSuggestionBatch {
		limit = DefaultSuggestionBatch
	}
	minConfidence := input.MinConfidence
	if minConfidence <= 0 {
		minConfidence = DefaultApplyConfidence
	}

	categories, err := uc.categoryRepo.FindByTenant(ctx, input.TenantID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, domainerror.NewAISuggestionError(
			domainerror.ErrCodeAINoCategories,
			"create at least one category before requesting suggestions",
			domainerror.ErrAINoCategories,
		)
	}

	transactions, err := uc.transactionRepo.FindUncategorized(ctx, input.TenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load uncategorized transactions: %w", err)
	}
	if len(transactions) == 0 {
		return &SuggestCategoriesOutput{Suggestions: []*SuggestionOutput{}}, nil
	}

	request := &adapter.CategorySuggestionRequest{
		TenantID: input.TenantID,
		Transactions: lo.Map(transactions, func(t *entity.Transaction, _ int) *adapter.TransactionForAI {
			return &adapter.TransactionForAI{
				ID:          t.ID,
				Description: t.Description,
				Amount:      t.Amount.StringFixed(2),
				Date:        t.Date.Format("2006-01-02"),
				Type:        string(t.Type),
			}
		}),
		Categories: lo.Map(categories, func(c *entity.Category, _ int) *adapter.CategoryForAI {
			return &adapter.CategoryForAI{ID: c.ID, Name: c.Name, Description: c.Description, Type: string(c.Type)}
		}),
	}

	suggestions, err := uc.suggester.Suggest(ctx, request)
	if err != nil {
		slog.Error("Category suggestion failed", "tenant_id", input.TenantID, "error", err)
		return nil, classifySuggestionError(err)
	}

	categoryByID := lo.KeyBy(categories, func(c *entity.Category) uuid.UUID { return c.ID })
	known := lo.KeyBy(transactions, func(t *entity.Transaction) uuid.UUID { return t.ID })

	output := &SuggestCategoriesOutput{
		Processed:   len(transactions),
		Suggestions: make([]*SuggestionOutput, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		category, ok := categoryByID[s.CategoryID]
		tx, inBatch := known[s.TransactionID]
		if !ok || !inBatch || !category.Type.Matches(tx.Type) {
			slog.Warn("Discarding suggestion outside the request",
				"transaction_id", s.TransactionID,
				"category_id", s.CategoryID,
			)
			continue
		}

		out := &SuggestionOutput{
			TransactionID: s.TransactionID,
			CategoryID:    s.CategoryID,
			CategoryName:  category.Name,
			Confidence:    s.Confidence,
			Reasoning:     s.Reasoning,
		}

		if input.Apply && s.Confidence >= minConfidence {
			if err := uc.transactionRepo.UpdateCategory(ctx, input.TenantID, s.TransactionID, s.CategoryID); err != nil {
				slog.Warn("Failed to apply category suggestion",
					"transaction_id", s.TransactionID,
					"error", err,
				)
			} else {
				out.Applied = true
			}
		}

		output.Suggestions = append(output.Suggestions, out)
	}

	return output, nil
}
