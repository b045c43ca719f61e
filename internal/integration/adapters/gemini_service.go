// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/retail-backoffice/backend/internal/application/adapter"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.AICategoryService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance. An empty modelName
// selects the default model.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
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

// Classify asks Gemini for the category of one expense description.
func (s *GeminiService) Classify(ctx context.Context, request *adapter.AICategoryRequest) (*adapter.AICategoryResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildClassificationPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return parseClassificationResponse(resp)
}

func buildClassificationPrompt(request *adapter.AICategoryRequest) string {
	var sb strings.Builder

	sb.WriteString(`You categorize recurring business expenses of a retail shop (rent, utilities, payroll, suppliers, subscriptions, taxes).
Given an expense description, pick the best category.

RULES:
- Prefer one of the known categories when it fits.
- Otherwise propose a short lowercase category name.
- If the description is meaningless, return an empty category with confidence 0.

KNOWN CATEGORIES:
`)

	if len(request.KnownCategories) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, c := range request.KnownCategories {
		sb.WriteString("- " + c + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nDESCRIPTION: %q\n", request.Description))
	sb.WriteString(`
Respond with a single JSON object: {"category": "string", "confidence": 0.0-1.0}
RESPONSE FORMAT: return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiClassification represents the raw response from Gemini.
type geminiClassification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func parseClassificationResponse(resp *genai.GenerateContentResponse) (*adapter.AICategoryResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	return parseClassification(textContent)
}

// parseClassification decodes the model's JSON, tolerating markdown fences.
func parseClassification(text string) (*adapter.AICategoryResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiClassification
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.AICategoryResult{
		Category:   strings.TrimSpace(raw.Category),
		Confidence: confidence,
	}, nil
}
