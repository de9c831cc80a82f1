package grounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relcheck/internal/models"
)

var chunks = models.Transcript{
	{Text: "Welcome to the show", Start: 0.0, Duration: 3.0},
	{Text: "This is a sponsor message", Start: 3.0, Duration: 4.0},
}

func TestGround(t *testing.T) {
	t.Run("matches quote onto its chunk", func(t *testing.T) {
		flags := []models.RawFlag{{Quote: "sponsor message", Reason: "ad"}}

		got := Ground(chunks, flags)

		require.Len(t, got, 1)
		assert.Equal(t, models.GroundedSegment{
			Timestamp: 3.0,
			Duration:  4.0,
			Text:      "This is a sponsor message",
			Reason:    "ad",
		}, got[0])
	})

	t.Run("quote is trimmed before matching", func(t *testing.T) {
		flags := []models.RawFlag{{Quote: "  sponsor message \n", Reason: "ad"}}

		got := Ground(chunks, flags)

		require.Len(t, got, 1)
		assert.Equal(t, 3.0, got[0].Timestamp)
	})

	t.Run("unmatched quotes are dropped", func(t *testing.T) {
		flags := []models.RawFlag{
			{Quote: "never said this", Reason: "ad"},
			{Quote: "sponsor message", Reason: "ad"},
		}

		got := Ground(chunks, flags)

		require.Len(t, got, 1)
		assert.Equal(t, "This is a sponsor message", got[0].Text)
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		flags := []models.RawFlag{{Quote: "SPONSOR MESSAGE", Reason: "ad"}}

		assert.Empty(t, Ground(chunks, flags))
	})

	t.Run("first chunk wins on ties", func(t *testing.T) {
		repeated := models.Transcript{
			{Text: "buy our product now", Start: 1.0, Duration: 2.0},
			{Text: "again, buy our product now", Start: 8.0, Duration: 2.0},
		}
		flags := []models.RawFlag{{Quote: "buy our product", Reason: "promo"}}

		got := Ground(repeated, flags)

		require.Len(t, got, 1)
		assert.Equal(t, 1.0, got[0].Timestamp)
	})

	t.Run("empty quotes are skipped", func(t *testing.T) {
		flags := []models.RawFlag{
			{Quote: "", Reason: "no quote"},
			{Quote: "   ", Reason: "whitespace only"},
		}

		assert.Empty(t, Ground(chunks, flags))
	})

	t.Run("no deduplication of segments on the same chunk", func(t *testing.T) {
		flags := []models.RawFlag{
			{Quote: "sponsor", Reason: "ad"},
			{Quote: "sponsor message", Reason: "promotion"},
		}

		got := Ground(chunks, flags)

		require.Len(t, got, 2)
		assert.Equal(t, "ad", got[0].Reason)
		assert.Equal(t, "promotion", got[1].Reason)
		assert.Equal(t, got[0].Timestamp, got[1].Timestamp)
	})

	t.Run("quote spanning chunk boundaries stays unmatched", func(t *testing.T) {
		flags := []models.RawFlag{{Quote: "the show This is", Reason: "spans chunks"}}

		assert.Empty(t, Ground(chunks, flags))
	})

	t.Run("no flags yields empty slice", func(t *testing.T) {
		got := Ground(chunks, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
