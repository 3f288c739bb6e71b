package crawl_test

import (
	"testing"

	"github.com/fwojciec/distill/crawl"
	"github.com/stretchr/testify/assert"
)

func TestResult_Summary(t *testing.T) {
	t.Parallel()

	t.Run("reports saved pages and size", func(t *testing.T) {
		t.Parallel()
		r := &crawl.Result{Saved: 2, Bytes: 512}
		assert.Equal(t, "Saved 2 pages (512 B)", r.Summary())
	})

	t.Run("adds unchanged and failed counts when present", func(t *testing.T) {
		t.Parallel()
		r := &crawl.Result{Saved: 1, Skipped: 3, Failed: 2, Bytes: 1536}
		assert.Equal(t, "Saved 1 pages (1.5 KB), 3 unchanged, 2 failed", r.Summary())
	})

	t.Run("formats large sizes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Saved 0 pages (2.0 MB)", (&crawl.Result{Bytes: 2 << 20}).Summary())
		assert.Equal(t, "Saved 0 pages (3.0 GB)", (&crawl.Result{Bytes: 3 << 30}).Summary())
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("drops the scheme", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x.com/a", crawl.TruncateURL("https://x.com/a", 50))
	})

	t.Run("keeps the query", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x.com/a?page=2", crawl.TruncateURL("https://x.com/a?page=2#top", 50))
	})

	t.Run("cuts from the left with an ellipsis", func(t *testing.T) {
		t.Parallel()
		result := crawl.TruncateURL("https://example.com/very/long/path/to/documentation", 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns the text unchanged at exactly max length", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com/", crawl.TruncateURL("https://example.com/", 12))
	})

	t.Run("returns the tail when max is too small for an ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "com", crawl.TruncateURL("https://example.com", 3))
	})

	t.Run("returns empty string for non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("falls back to the raw text for relative input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "not a url", crawl.TruncateURL("not a url", 20))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable for equal content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.ComputeHash("<div>a</div>"), crawl.ComputeHash("<div>a</div>"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.ComputeHash("<div>a</div>"), crawl.ComputeHash("<div>b</div>"))
	})

	t.Run("returns 16 hex digits", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]{16}$`, crawl.ComputeHash(""))
	})
}
