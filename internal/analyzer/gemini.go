package analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"relcheck/internal/logger"
)

type geminiGenerator struct {
	// mu guards currentKey: one generator instance is shared by all
	// concurrent audits.
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Generator that rotates through the supplied Gemini
// API keys when one is rate limited.
func NewGemini(model string, apiKeys []string, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required")
	}
	return &geminiGenerator{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}, nil
}

// Generate runs the prompt with a JSON response constrained to schema.
// Quota errors rotate to the next key; any other failure is returned
// immediately.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   schema,
			})
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiGenerator) activeKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *geminiGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
