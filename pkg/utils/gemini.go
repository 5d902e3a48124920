package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// PlannerAIInterface is the generation backend for itineraries. Both calls
// return raw JSON; prompt construction and retries live in the itinerary
// service.
type PlannerAIInterface interface {
	GenerateItineraryJSON(ctx context.Context, prompt string) (string, error)
	EditItineraryJSON(ctx context.Context, prompt string) (string, error)
}

type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerAIInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{client: client, model: model}, nil
}

func (c *GeminiPlannerClient) GenerateItineraryJSON(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, prompt, 0.3)
}

// Edits run colder than generation so the model rewrites only what the
// instruction touches.
func (c *GeminiPlannerClient) EditItineraryJSON(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, prompt, 0.1)
}

func (c *GeminiPlannerClient) call(ctx context.Context, prompt string, temperature float32) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching is needed downstream.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(temperature)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(8000)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = CleanAIJSON(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}
	return content, nil
}

// CleanAIJSON strips the markdown fences some models wrap around JSON
// answers even when asked not to.
func CleanAIJSON(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}
