package transcript

import (
	"strings"

	"relcheck/internal/models"
)

const (
	// manualChunkSeconds is the synthetic start/duration step for pasted
	// transcripts, which carry no real timing information.
	manualChunkSeconds = 5.0

	// UnknownDuration marks a single-chunk fallback transcript whose real
	// length is unknown: "treat this as the whole video".
	UnknownDuration = 9999.0
)

// FromManual builds a timestamped transcript from raw pasted text. Each
// non-blank line becomes one chunk with start = originalLineIndex * 5s and
// a fixed 5s duration. Blank lines are discarded but still consume their
// index slot, so the timeline keeps gaps where blank lines were; consumers
// rely on that spacing, so it must not be "fixed" by re-indexing.
//
// Entirely blank input yields a single chunk holding the whole raw text
// with the UnknownDuration sentinel. FromManual never fails.
func FromManual(raw string) models.Transcript {
	var chunks models.Transcript
	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		chunks = append(chunks, models.TranscriptChunk{
			Text:     line,
			Start:    float64(i) * manualChunkSeconds,
			Duration: manualChunkSeconds,
		})
	}

	if len(chunks) == 0 {
		return models.Transcript{{
			Text:     raw,
			Start:    0.0,
			Duration: UnknownDuration,
		}}
	}
	return chunks
}
