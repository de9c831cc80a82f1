package pipeline

import (
	"context"

	"relcheck/internal/models"
)

// Request is one relevance-audit invocation. Title is required; URL and
// ManualTranscript are alternative transcript sources, with the URL tried
// first and the manual text used as fallback.
type Request struct {
	Title            string
	Description      string
	URL              string
	ManualTranscript string
}

// Result is the outcome of a completed audit.
type Result struct {
	Analysis *models.AnalysisResult
	// TranscriptText is the concatenated transcript exactly as sent to the
	// reasoning model, kept for debugging.
	TranscriptText string
	// TranscriptOrigin is "youtube" for fetched captions, "manual" for
	// pasted-text fallback.
	TranscriptOrigin string
	ChunkCount       int
}

// Pipeline runs the full audit: transcript acquisition, analysis and
// grounding, as one synchronous request/response cycle.
type Pipeline interface {
	Evaluate(ctx context.Context, req Request) (*Result, error)
}
