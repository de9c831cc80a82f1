package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"relcheck/internal/grounding"
	"relcheck/internal/models"
)

const auditPrompt = `You are a strict and meticulous content auditor. Your only job is to
evaluate if a video's transcript matches its stated title and description.
Be highly critical.

**BENCHMARK TITLE:**
%s

**BENCHMARK DESCRIPTION:**
%s

**VIDEO TRANSCRIPT TO ANALYZE:**
%s

---
**ANALYSIS TASK:**
1.  Determine an *overall* relevance_score (0-100). This score MUST reflect
    how well the **VIDEO TRANSCRIPT** matches the **BENCHMARK TITLE** and **BENCHMARK DESCRIPTION**.
2.  Write a justification for your score.
3.  Identify *exact quotes* of any irrelevant_segments (sponsorships, off-topic sections).
4.  Generate 3-5 tags *based on the transcript content*.
5.  Write a brief summary (2-3 sentences) *of the transcript*.
6.  List the **Top 5** key_points *from the transcript*.
7.  Divide the transcript into four 25%% parts. Summarize each quarter in 1-2 sentences.
    Return as a list of 4 strings in quarterly_summaries.

**CRITICAL RULES:**
- You MUST give a low score (0-30) if the **VIDEO TRANSCRIPT** discusses
  completely different topics than the **BENCHMARK TITLE**.
- Do not be "helpful" and assume the title is a mistake.
- Base your score *only* on the comparison.
- Return STRICTLY VALID JSON matching the schema.
- All arrays must be empty ([]) if no content is found, not null.`

// responseSchema is the fixed contract the model's JSON reply must follow.
// quarterly_summaries is requested as exactly 4 entries by the prompt, but
// the schema can only type it as array-of-string; a different count comes
// back as a valid, degenerate result the consumer has to detect.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"relevance_score": {Type: genai.TypeNumber},
			"justification":   {Type: genai.TypeString},
			"irrelevant_segments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"quote":  {Type: genai.TypeString},
						"reason": {Type: genai.TypeString},
					},
					Required: []string{"quote", "reason"},
				},
			},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A 2-3 sentence summary of what the video is about.",
			},
			"key_points": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of the top 5 key points.",
			},
			"quarterly_summaries": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 4 summaries, one for each 25% quarter of the video.",
			},
		},
		Required: []string{
			"relevance_score", "justification", "irrelevant_segments",
			"tags", "summary", "key_points", "quarterly_summaries",
		},
	}
}

// rawResult mirrors the response schema. Required scalars are pointers and
// required arrays stay nil when absent, so missing fields are detectable.
type rawResult struct {
	RelevanceScore     *float64         `json:"relevance_score"`
	Justification      *string          `json:"justification"`
	IrrelevantSegments []models.RawFlag `json:"irrelevant_segments"`
	Tags               []string         `json:"tags"`
	Summary            *string          `json:"summary"`
	KeyPoints          []string         `json:"key_points"`
	QuarterlySummaries []string         `json:"quarterly_summaries"`
}

// Analyze builds the audit prompt, runs it through the reasoning provider
// and returns the verdict with the flagged excerpts already grounded onto
// transcript chunks. The second return value is the concatenated
// transcript text as sent to the model.
func (a *implAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, string, error) {
	transcriptText := req.Chunks.PlainText()
	prompt := fmt.Sprintf(auditPrompt, req.Title, req.Description, transcriptText)

	a.logger.Info(ctx, "Analyzing %q against %d transcript chunks", req.Title, len(req.Chunks))

	raw, err := a.generator.Generate(ctx, prompt, responseSchema())
	if err != nil {
		return nil, "", &ProviderError{Err: err}
	}

	parsed, err := decodeResult(raw)
	if err != nil {
		return nil, "", &ParseError{Raw: raw, Err: err}
	}

	segments := grounding.Ground(req.Chunks, parsed.IrrelevantSegments)
	if dropped := len(parsed.IrrelevantSegments) - len(segments); dropped > 0 {
		a.logger.Debug(ctx, "Dropped %d flagged excerpt(s) with no matching chunk", dropped)
	}

	result := &models.AnalysisResult{
		RelevanceScore:     *parsed.RelevanceScore,
		Justification:      *parsed.Justification,
		IrrelevantSegments: segments,
		Tags:               parsed.Tags,
		Summary:            *parsed.Summary,
		KeyPoints:          parsed.KeyPoints,
		QuarterlySummaries: parsed.QuarterlySummaries,
	}

	a.logger.Info(ctx, "Analysis complete: score %.0f, %d flagged segment(s)",
		result.RelevanceScore, len(result.IrrelevantSegments))

	return result, transcriptText, nil
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeResult enforces the response contract: the exact field set, all
// required fields present, arrays present even when empty, and the score
// inside 0-100. Anything else is rejected rather than read with defaults.
func decodeResult(raw string) (*rawResult, error) {
	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	dec.DisallowUnknownFields()

	var r rawResult
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	switch {
	case r.RelevanceScore == nil:
		return nil, fmt.Errorf("missing required field relevance_score")
	case r.Justification == nil:
		return nil, fmt.Errorf("missing required field justification")
	case r.Summary == nil:
		return nil, fmt.Errorf("missing required field summary")
	case r.IrrelevantSegments == nil:
		return nil, fmt.Errorf("irrelevant_segments must be an array, not absent or null")
	case r.Tags == nil:
		return nil, fmt.Errorf("tags must be an array, not absent or null")
	case r.KeyPoints == nil:
		return nil, fmt.Errorf("key_points must be an array, not absent or null")
	case r.QuarterlySummaries == nil:
		return nil, fmt.Errorf("quarterly_summaries must be an array, not absent or null")
	}

	if *r.RelevanceScore < 0 || *r.RelevanceScore > 100 {
		return nil, fmt.Errorf("relevance_score %v is outside 0-100", *r.RelevanceScore)
	}

	return &r, nil
}
