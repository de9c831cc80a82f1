package transcript

import (
	"context"
	"errors"

	"relcheck/internal/models"
	"relcheck/pkg/timedtext"
)

type timedtextProvider struct {
	client timedtext.Client
}

// NewTimedtextProvider adapts a timedtext caption client to the Provider
// interface. Caption entries are carried over field for field.
func NewTimedtextProvider(client timedtext.Client) Provider {
	return &timedtextProvider{client: client}
}

func (p *timedtextProvider) Fetch(ctx context.Context, videoID string) (models.Transcript, error) {
	entries, err := p.client.Fetch(ctx, videoID)
	if err != nil {
		if errors.Is(err, timedtext.ErrNotAvailable) {
			return nil, ErrNoTranscript
		}
		return nil, err
	}

	chunks := make(models.Transcript, 0, len(entries))
	for _, e := range entries {
		chunks = append(chunks, models.TranscriptChunk{
			Text:     e.Text,
			Start:    e.Start,
			Duration: e.Dur,
		})
	}
	return chunks, nil
}
