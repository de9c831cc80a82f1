package models

import (
	"fmt"
	"strings"
)

// TranscriptChunk is one timestamped fragment of a video's spoken content.
// Start and Duration are in seconds. Chunks are immutable once produced and
// their order is presentation order, exactly as the source emitted them.
type TranscriptChunk struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is an ordered sequence of chunks.
type Transcript []TranscriptChunk

// PlainText joins all chunk texts in sequence order, with embedded newlines
// replaced by spaces and chunks joined by a single space. This is the exact
// text handed to the reasoning model.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t))
	for _, c := range t {
		parts = append(parts, strings.ReplaceAll(c.Text, "\n", " "))
	}
	return strings.Join(parts, " ")
}

// AnalysisRequest carries the benchmark metadata and the transcript to audit.
// Chunks must never be empty; an empty transcript is a caller-level error.
type AnalysisRequest struct {
	Title       string
	Description string
	Chunks      Transcript
}

// RawFlag is an irrelevant-content excerpt as emitted by the analyzer,
// before it has been grounded onto a transcript chunk.
type RawFlag struct {
	Quote  string `json:"quote"`
	Reason string `json:"reason"`
}

// GroundedSegment is a flagged excerpt mapped back onto its originating
// chunk. Text is the full chunk text, not the excerpt.
type GroundedSegment struct {
	Timestamp float64 `json:"timestamp"`
	Duration  float64 `json:"duration"`
	Text      string  `json:"text"`
	Reason    string  `json:"reason"`
}

// AnalysisResult is the final relevance verdict. IrrelevantSegments always
// holds grounded segments; raw analyzer quotes never leave the analyzer.
type AnalysisResult struct {
	RelevanceScore     float64           `json:"relevance_score"`
	Justification      string            `json:"justification"`
	IrrelevantSegments []GroundedSegment `json:"irrelevant_segments"`
	Tags               []string          `json:"tags"`
	Summary            string            `json:"summary"`
	KeyPoints          []string          `json:"key_points"`
	QuarterlySummaries []string          `json:"quarterly_summaries"`
}

// HasQuarterlySummaries reports whether the model produced one summary per
// quarter of the transcript. Any count other than four means the field was
// not generated; consumers must not treat a partial list as valid.
func (r *AnalysisResult) HasQuarterlySummaries() bool {
	return len(r.QuarterlySummaries) == 4
}

// FormatTimestamp renders a position in seconds as zero-padded mm:ss.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
