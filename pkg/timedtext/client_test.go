package timedtext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
  <text start="0" dur="3.2">Welcome to the show</text>
  <text start="3.2" dur="4.1">Let&amp;#39;s talk about today&amp;#39;s topic</text>
  <text start="9.54" dur="3.94">brought to you by our sponsor</text>
</transcript>`

func newTestClient(serverURL string) *implClient {
	return &implClient{
		http:     &http.Client{Timeout: time.Second},
		baseURL:  serverURL,
		language: "en",
	}
}

func TestFetch(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"v":    r.URL.Query().Get("v"),
			"lang": r.URL.Query().Get("lang"),
		}
		w.Write([]byte(sampleXML))
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"v": "dQw4w9WgXcQ", "lang": "en"}, gotQuery)

	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Text: "Welcome to the show", Start: 0, Dur: 3.2}, entries[0])
	assert.Equal(t, "Let's talk about today's topic", entries[1].Text, "double-escaped entities must be unescaped")
	assert.Equal(t, 9.54, entries[2].Start)
	assert.Equal(t, 3.94, entries[2].Dur)
}

func TestFetchNoCaptions(t *testing.T) {
	// YouTube answers caption-less videos with an empty 200 body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestFetchEmptyTranscriptElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript></transcript>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAvailable)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchMalformedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript><text start="x"`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)
}

func TestFetchRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(sampleXML))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL).Fetch(ctx, "dQw4w9WgXcQ")
	assert.Error(t, err)
}
