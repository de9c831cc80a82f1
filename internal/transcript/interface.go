package transcript

import (
	"context"

	"relcheck/internal/models"
)

// Source resolves a video URL into a timestamped transcript.
type Source interface {
	Fetch(ctx context.Context, input string) (models.Transcript, error)
}

// Provider is the external caption backend. Implementations return
// ErrNoTranscript when the video has no captions at all; any other failure
// is returned as-is and classified by the Source.
type Provider interface {
	Fetch(ctx context.Context, videoID string) (models.Transcript, error)
}
