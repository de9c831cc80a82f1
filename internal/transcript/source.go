package transcript

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"relcheck/internal/logger"
	"relcheck/internal/models"
)

// Accepts long-form watch links (v=), shortened links (youtu.be/), shorts
// and embed links, all carrying an 11-character video ID token.
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/|embed/)([\w\-]{11})`)

// ExtractVideoID pulls the canonical 11-character video ID out of free-text
// input. Returns ErrNoVideoID when no accepted URL shape matches.
func ExtractVideoID(input string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(input)
	if m == nil {
		return "", ErrNoVideoID
	}
	return m[1], nil
}

type implSource struct {
	provider Provider
	logger   logger.Logger
}

// NewSource creates a Source backed by the given caption provider.
func NewSource(provider Provider, log logger.Logger) Source {
	return &implSource{
		provider: provider,
		logger:   log,
	}
}

// Fetch extracts the video ID and asks the provider for its transcript.
// Chunks are propagated exactly as the provider returned them. No retries;
// the caller decides whether to fall back to manual input.
func (s *implSource) Fetch(ctx context.Context, input string) (models.Transcript, error) {
	videoID, err := ExtractVideoID(input)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "Fetching transcript for video %s", videoID)

	chunks, err := s.provider.Fetch(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrNoTranscript) {
			return nil, err
		}
		return nil, &FetchError{VideoID: videoID, Err: err}
	}
	if len(chunks) == 0 {
		return nil, &FetchError{VideoID: videoID, Err: fmt.Errorf("provider returned an empty transcript")}
	}

	s.logger.Info(ctx, "Fetched transcript for %s: %d chunks", videoID, len(chunks))
	return chunks, nil
}
