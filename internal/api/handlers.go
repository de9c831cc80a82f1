package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"relcheck/internal/analyzer"
	"relcheck/internal/logger"
	"relcheck/internal/models"
	"relcheck/internal/pipeline"
	"relcheck/internal/transcript"
)

var validate = validator.New()

// Handler carries the dependencies of the HTTP endpoints.
type Handler struct {
	Pipeline pipeline.Pipeline
	Logger   logger.Logger
}

// AnalyzeRequest is the JSON payload of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Transcript  string `json:"transcript"`
}

// segmentView is a grounded segment plus its rendered timestamps.
type segmentView struct {
	Timestamp    float64 `json:"timestamp"`
	Duration     float64 `json:"duration"`
	Text         string  `json:"text"`
	Reason       string  `json:"reason"`
	StartDisplay string  `json:"start_display"`
	EndDisplay   string  `json:"end_display"`
}

type analyzeResponse struct {
	RelevanceScore              float64       `json:"relevance_score"`
	Justification               string        `json:"justification"`
	IrrelevantSegments          []segmentView `json:"irrelevant_segments"`
	Tags                        []string      `json:"tags"`
	Summary                     string        `json:"summary"`
	KeyPoints                   []string      `json:"key_points"`
	QuarterlySummaries          []string      `json:"quarterly_summaries"`
	QuarterlySummariesGenerated bool          `json:"quarterly_summaries_generated"`
	TranscriptOrigin            string        `json:"transcript_origin"`
	ChunkCount                  int           `json:"chunk_count"`
	TranscriptText              string        `json:"transcript_text"`
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "relcheck is healthy",
	})
}

// Analyze runs a full relevance audit for one video.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	payload := new(AnalyzeRequest)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	if err := validate.Struct(payload); err != nil {
		return respondError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(formatValidationErrors(err), "; ")))
	}

	result, err := h.Pipeline.Evaluate(c.UserContext(), pipeline.Request{
		Title:            payload.Title,
		Description:      payload.Description,
		URL:              payload.URL,
		ManualTranscript: payload.Transcript,
	})
	if err != nil {
		return h.respondPipelineError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   buildAnalyzeResponse(result),
	})
}

func buildAnalyzeResponse(result *pipeline.Result) analyzeResponse {
	analysis := result.Analysis

	segments := make([]segmentView, 0, len(analysis.IrrelevantSegments))
	for _, s := range analysis.IrrelevantSegments {
		segments = append(segments, segmentView{
			Timestamp:    s.Timestamp,
			Duration:     s.Duration,
			Text:         s.Text,
			Reason:       s.Reason,
			StartDisplay: models.FormatTimestamp(s.Timestamp),
			EndDisplay:   models.FormatTimestamp(s.Timestamp + s.Duration),
		})
	}

	quarterly := analysis.QuarterlySummaries
	if !analysis.HasQuarterlySummaries() {
		quarterly = []string{}
	}

	return analyzeResponse{
		RelevanceScore:              analysis.RelevanceScore,
		Justification:               analysis.Justification,
		IrrelevantSegments:          segments,
		Tags:                        analysis.Tags,
		Summary:                     analysis.Summary,
		KeyPoints:                   analysis.KeyPoints,
		QuarterlySummaries:          quarterly,
		QuarterlySummariesGenerated: analysis.HasQuarterlySummaries(),
		TranscriptOrigin:            result.TranscriptOrigin,
		ChunkCount:                  result.ChunkCount,
		TranscriptText:              result.TranscriptText,
	}
}

// respondPipelineError maps the pipeline's error taxonomy to HTTP statuses.
func (h *Handler) respondPipelineError(c *fiber.Ctx, err error) error {
	h.Logger.Error(c.UserContext(), "Analyze request failed: %v", err)

	var parseErr *analyzer.ParseError
	if errors.As(err, &parseErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":       "error",
			"message":      "The AI response did not match the expected format.",
			"raw_response": parseErr.Raw,
		})
	}

	var provErr *analyzer.ProviderError
	var fetchErr *transcript.FetchError

	switch {
	case errors.Is(err, pipeline.ErrMissingTitle),
		errors.Is(err, pipeline.ErrNoContent),
		errors.Is(err, transcript.ErrNoVideoID):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, transcript.ErrNoTranscript):
		return respondError(c, fiber.StatusNotFound,
			"No transcript found for this video (it may be disabled by the creator). Provide a manual transcript instead.")
	case errors.As(err, &fetchErr), errors.As(err, &provErr):
		return respondError(c, fiber.StatusBadGateway, err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func respondError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func formatValidationErrors(err error) []string {
	var out []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out = append(out, fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		return out
	}
	return []string{err.Error()}
}
