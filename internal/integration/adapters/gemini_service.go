package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/agency-crm/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini to pick an existing category for each transaction.
func (s *GeminiService) Suggest(ctx context.Context, request *adapter.CategorySuggestionRequest) ([]*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, errors.New("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(text, request)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestions, nil
}

func buildSuggestionPrompt(request *adapter.CategorySuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You categorize the bookkeeping transactions of a small agency.
For every transaction below choose the single best matching category from the list of
existing categories. Only use category IDs from that list. An income transaction must get
an income category and an expense transaction an expense category. Skip a transaction when
no category fits.

EXISTING CATEGORIES:
`)
	for _, cat := range request.Categories {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Type: %s", cat.ID, cat.Name, cat.Type)
		if cat.Description != "" {
			fmt.Fprintf(&sb, ", Description: %q", cat.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nTRANSACTIONS:\n")
	for _, tx := range request.Transactions {
		fmt.Fprintf(&sb, "- ID: %s, Description: %q, Amount: %s, Date: %s, Type: %s\n",
			tx.ID, tx.Description, tx.Amount, tx.Date, tx.Type)
	}

	sb.WriteString(`
Reply with a JSON array only, one object per categorized transaction:
{"transaction_id": "uuid", "category_id": "uuid", "confidence": 0.0-1.0, "reasoning": "short explanation"}
`)
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", errors.New("no text content in response")
}

type geminiSuggestion struct {
	TransactionID string  `json:"transaction_id"`
	CategoryID    string  `json:"category_id"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// parseSuggestions decodes the model output and drops entries that name an
// unknown transaction or category.
func parseSuggestions(text string, request *adapter.CategorySuggestionRequest) ([]*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	transactions := make(map[uuid.UUID]bool, len(request.Transactions))
	for _, tx := range request.Transactions {
		transactions[tx.ID] = true
	}
	categories := make(map[uuid.UUID]bool, len(request.Categories))
	for _, c := range request.Categories {
		categories[c.ID] = true
	}

	results := make([]*adapter.CategorySuggestion, 0, len(raw))
	for _, r := range raw {
		txID, err := uuid.Parse(r.TransactionID)
		if err != nil || !transactions[txID] {
			continue
		}
		catID, err := uuid.Parse(r.CategoryID)
		if err != nil || !categories[catID] {
			continue
		}

		confidence := r.Confidence
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}

		results = append(results, &adapter.CategorySuggestion{
			TransactionID: txID,
			CategoryID:    catID,
			Confidence:    confidence,
			Reasoning:     r.Reasoning,
		})
	}
	return results, nil
}
