package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TransactionForAI represents transaction data for AI processing.
type TransactionForAI struct {
	ID          uuid.UUID
	Description string
	Amount      string
	Date        string
	Type        string
}

// CategoryForAI represents category data for AI processing.
type CategoryForAI struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        string
}

// CategorySuggestionRequest asks for a category for each transaction among the existing ones.
type CategorySuggestionRequest struct {
	TenantID     uuid.UUID
	Transactions []*TransactionForAI
	Categories   []*CategoryForAI
}

// CategorySuggestion is the AI's pick for one transaction.
type CategorySuggestion struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	Confidence    float64
	Reasoning     string
}

// CategorySuggester defines the interface for AI category suggestions.
type CategorySuggester interface {
	// Suggest returns a suggestion for every transaction it could classify.
	Suggest(ctx context.Context, request *CategorySuggestionRequest) ([]*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
