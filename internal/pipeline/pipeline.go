package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"relcheck/internal/models"
	"relcheck/internal/transcript"
)

// ErrMissingTitle is returned when the request carries no benchmark title.
var ErrMissingTitle = errors.New("a video title is required")

// ErrNoContent is returned when the request carries neither a video URL
// nor a manual transcript.
var ErrNoContent = errors.New("a video URL or a manual transcript is required")

const (
	originYouTube = "youtube"
	originManual  = "manual"
)

// Evaluate runs one full audit. Transcript-stage failures are recoverable:
// when the fetch fails and manual text is present, the manual chunker takes
// over and the error is logged instead of surfaced. Analysis-stage failures
// are always terminal.
func (p *implPipeline) Evaluate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrMissingTitle
	}

	if err := p.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer p.sem.release()

	startTime := time.Now()

	chunks, origin, err := p.resolveTranscript(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis, transcriptText, err := p.analyzer.Analyze(ctx, models.AnalysisRequest{
		Title:       req.Title,
		Description: req.Description,
		Chunks:      chunks,
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Audit of %q finished in %s (%s transcript, %d chunks)",
		req.Title, time.Since(startTime), origin, len(chunks))

	return &Result{
		Analysis:         analysis,
		TranscriptText:   transcriptText,
		TranscriptOrigin: origin,
		ChunkCount:       len(chunks),
	}, nil
}

// resolveTranscript tries the URL first and falls back to the manual text.
// A transcript error is terminal only when no manual fallback exists.
func (p *implPipeline) resolveTranscript(ctx context.Context, req Request) (models.Transcript, string, error) {
	hasManual := strings.TrimSpace(req.ManualTranscript) != ""

	if req.URL != "" {
		chunks, err := p.source.Fetch(ctx, req.URL)
		if err == nil {
			return chunks, originYouTube, nil
		}
		if !hasManual {
			return nil, "", err
		}
		p.logger.Warn(ctx, "Transcript fetch failed (%v); using manual transcript as fallback", err)
	}

	if !hasManual {
		return nil, "", ErrNoContent
	}

	chunks := transcript.FromManual(req.ManualTranscript)
	p.logger.Info(ctx, "Built manual transcript: %d chunks (timestamps are synthetic)", len(chunks))
	return chunks, originManual, nil
}
