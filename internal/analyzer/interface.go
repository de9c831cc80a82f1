package analyzer

import (
	"context"

	"google.golang.org/genai"

	"relcheck/internal/models"
)

// Analyzer evaluates how well a transcript matches its claimed metadata.
// On success it returns the verdict (with grounded segments) together with
// the exact transcript text that was sent to the model, for diagnostics.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, string, error)
}

// Generator is the reasoning backend: it runs a prompt constrained to a
// JSON response schema and returns the raw response text.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}
