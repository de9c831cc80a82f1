// Package grounding maps quoted excerpts from the analyzer back onto their
// originating timestamped transcript chunks.
package grounding

import (
	"strings"

	"relcheck/internal/models"
)

// Ground reconciles raw analyzer flags with the transcript. For each flag
// with a non-empty quote, the first chunk (in sequence order) whose text
// contains the trimmed quote as a literal, case-sensitive substring wins;
// the emitted segment carries that chunk's start, duration and full text
// plus the flag's reason. Flags that match no chunk are dropped. A quote
// split across two chunks is a known structural miss, not repaired here.
// No deduplication: two flags landing on the same chunk yield two segments.
func Ground(chunks models.Transcript, flags []models.RawFlag) []models.GroundedSegment {
	segments := make([]models.GroundedSegment, 0, len(flags))

	for _, flag := range flags {
		quote := strings.TrimSpace(flag.Quote)
		if quote == "" {
			continue
		}
		for _, chunk := range chunks {
			if strings.Contains(chunk.Text, quote) {
				segments = append(segments, models.GroundedSegment{
					Timestamp: chunk.Start,
					Duration:  chunk.Duration,
					Text:      chunk.Text,
					Reason:    flag.Reason,
				})
				break
			}
		}
	}

	return segments
}
