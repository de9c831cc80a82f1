package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relcheck/internal/analyzer"
	"relcheck/internal/logger"
	"relcheck/internal/models"
	"relcheck/internal/pipeline"
	"relcheck/internal/transcript"
)

type fakePipeline struct {
	result *pipeline.Result
	err    error

	gotRequest pipeline.Request
}

func (f *fakePipeline) Evaluate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	f.gotRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func okResult() *pipeline.Result {
	return &pipeline.Result{
		Analysis: &models.AnalysisResult{
			RelevanceScore: 64,
			Justification:  "partially on topic",
			IrrelevantSegments: []models.GroundedSegment{
				{Timestamp: 125.0, Duration: 4.0, Text: "This is a sponsor message", Reason: "ad"},
			},
			Tags:               []string{"tech"},
			Summary:            "a summary",
			KeyPoints:          []string{"k1", "k2", "k3", "k4", "k5"},
			QuarterlySummaries: []string{"q1", "q2", "q3", "q4"},
		},
		TranscriptText:   "the full transcript",
		TranscriptOrigin: "youtube",
		ChunkCount:       42,
	}
}

func doAnalyze(t *testing.T, p pipeline.Pipeline, body string) (int, map[string]interface{}) {
	t.Helper()

	app := New(p, logger.New("error", "text"))
	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHealth(t *testing.T) {
	app := New(&fakePipeline{}, logger.New("error", "text"))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAnalyzeSuccess(t *testing.T) {
	fake := &fakePipeline{result: okResult()}

	status, body := doAnalyze(t, fake, `{
		"title": "Gadget Review",
		"description": "desc",
		"url": "https://youtu.be/dQw4w9WgXcQ",
		"transcript": "fallback text"
	}`)

	require.Equal(t, 200, status)
	assert.Equal(t, "success", body["status"])

	assert.Equal(t, "Gadget Review", fake.gotRequest.Title)
	assert.Equal(t, "fallback text", fake.gotRequest.ManualTranscript)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 64.0, data["relevance_score"])
	assert.Equal(t, "youtube", data["transcript_origin"])
	assert.Equal(t, 42.0, data["chunk_count"])
	assert.Equal(t, "the full transcript", data["transcript_text"])
	assert.Equal(t, true, data["quarterly_summaries_generated"])

	segments := data["irrelevant_segments"].([]interface{})
	require.Len(t, segments, 1)
	seg := segments[0].(map[string]interface{})
	assert.Equal(t, "02:05", seg["start_display"])
	assert.Equal(t, "02:09", seg["end_display"])
	assert.Equal(t, "This is a sponsor message", seg["text"])
}

func TestAnalyzeDegenerateQuarterlySummaries(t *testing.T) {
	result := okResult()
	result.Analysis.QuarterlySummaries = []string{"q1", "q2"}
	fake := &fakePipeline{result: result}

	status, body := doAnalyze(t, fake, `{"title": "T", "transcript": "x"}`)

	require.Equal(t, 200, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["quarterly_summaries_generated"])
	assert.Empty(t, data["quarterly_summaries"])
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`},
		{"empty title", `{"title": "", "transcript": "x"}`},
		{"not json", `this is not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doAnalyze(t, &fakePipeline{result: okResult()}, tt.body)
			assert.Equal(t, 400, status)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no content", pipeline.ErrNoContent, 400},
		{"bad url", transcript.ErrNoVideoID, 400},
		{"no transcript", transcript.ErrNoTranscript, 404},
		{"fetch failure", &transcript.FetchError{VideoID: "dQw4w9WgXcQ", Err: assert.AnError}, 502},
		{"provider failure", &analyzer.ProviderError{Err: assert.AnError}, 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doAnalyze(t, &fakePipeline{err: tt.err}, `{"title": "T", "transcript": "x"}`)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestAnalyzeParseErrorExposesRawResponse(t *testing.T) {
	fake := &fakePipeline{err: &analyzer.ParseError{Raw: "not json at all", Err: assert.AnError}}

	status, body := doAnalyze(t, fake, `{"title": "T", "transcript": "x"}`)

	assert.Equal(t, 502, status)
	assert.Equal(t, "not json at all", body["raw_response"])
}
