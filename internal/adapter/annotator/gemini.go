package annotator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/rl1809/storefront/internal/core/domain"
)

const DefaultModel = "gemini-2.5-flash"

const promptTemplate = `Write one short, witty or warm thank-you line for a receipt.
The customer just bought: %s.
Rules:
1. At most 30 words.
2. Light and playful, a little clever.
3. No greeting or form of address, just the sentence.`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models contentGenerator
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model}
}

func (g *Gemini) Annotate(ctx context.Context, items []domain.LineItem) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(items)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Prompt renders the purchased items as "2x Latte, 1x Tiramisu".
func Prompt(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(parts, ", "))
}
