// Package timedtext is a minimal client for YouTube's public timedtext
// caption endpoint.
package timedtext

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://video.google.com/timedtext"

// ErrNotAvailable means the endpoint has no caption track for the video;
// YouTube answers these requests with an empty body.
var ErrNotAvailable = errors.New("timedtext: no caption track available")

type transcriptXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

type implClient struct {
	http     *http.Client
	baseURL  string
	language string
}

// New creates a Client for the given caption language.
func New(language string, timeout time.Duration) Client {
	return &implClient{
		http:     &http.Client{Timeout: timeout},
		baseURL:  defaultBaseURL,
		language: language,
	}
}

// Fetch downloads and parses the caption track for a video. Returns
// ErrNotAvailable when the video has no captions in the configured
// language.
func (c *implClient) Fetch(ctx context.Context, videoID string) ([]Entry, error) {
	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("captions endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrNotAvailable
	}

	return parseTranscript(body)
}

// parseTranscript decodes the timedtext XML payload. Caption bodies arrive
// HTML-entity escaped on top of the XML escaping, so they are unescaped
// once more after decoding.
func parseTranscript(body []byte) ([]Entry, error) {
	var doc transcriptXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode captions: %w", err)
	}
	if len(doc.Texts) == 0 {
		return nil, ErrNotAvailable
	}

	entries := make([]Entry, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		entries = append(entries, Entry{
			Text:  html.UnescapeString(t.Body),
			Start: t.Start,
			Dur:   t.Dur,
		})
	}
	return entries, nil
}
