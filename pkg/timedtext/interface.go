package timedtext

import "context"

// Entry is one caption line as served by the timedtext endpoint.
// Start and Dur are in seconds.
type Entry struct {
	Text  string
	Start float64
	Dur   float64
}

// Client fetches the caption track of a video.
type Client interface {
	Fetch(ctx context.Context, videoID string) ([]Entry, error)
}
