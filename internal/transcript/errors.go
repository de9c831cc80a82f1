package transcript

import (
	"errors"
	"fmt"
)

// ErrNoVideoID means no recognizable video URL was found in the input.
// The provider is never called in this case.
var ErrNoVideoID = errors.New("could not extract a video ID from the input")

// ErrNoTranscript means the provider confirmed the video has no captions
// (e.g. disabled by the creator).
var ErrNoTranscript = errors.New("no transcript available for this video")

// FetchError is any provider-side failure other than "no captions exist":
// rate limiting, transport errors, malformed responses. The provider's
// message is kept for diagnostics.
type FetchError struct {
	VideoID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch transcript for %s: %v", e.VideoID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
