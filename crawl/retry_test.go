package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.DefaultRetryDelays())
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, crawl.Backoff(10*time.Millisecond, 2))
	assert.Empty(t, crawl.Backoff(time.Second, 0))
}

func TestPermanent(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.Permanent(distill.Errorf(distill.EINVALID, "bad URL")))
	assert.True(t, crawl.Permanent(fmt.Errorf("fetch: %w", distill.Errorf(distill.ENOTFOUND, "HTTP 404"))))
	assert.True(t, crawl.Permanent(context.Canceled))
	assert.False(t, crawl.Permanent(errors.New("connection reset")))
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns the first successful result", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (*distill.FetchResult, error) {
			calls++
			return &distill.FetchResult{URL: url}, nil
		}

		res, err := crawl.FetchWithRetry(context.Background(), fetch, "https://example.com", noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", res.URL)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns the last error after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logged []string
		fetch := func(context.Context, string) (*distill.FetchResult, error) {
			calls++
			return nil, fmt.Errorf("boom %d", calls)
		}
		logf := func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}

		_, err := crawl.FetchWithRetry(context.Background(), fetch, "https://example.com", noDelays, logf)

		require.EqualError(t, err, "boom 4")
		assert.Equal(t, 4, calls)
		assert.Equal(t, []string{
			"retry https://example.com (attempt 2): boom 1",
			"retry https://example.com (attempt 3): boom 2",
			"retry https://example.com (attempt 4): boom 3",
		}, logged)
	})

	t.Run("tries once without delays", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*distill.FetchResult, error) {
			calls++
			return nil, errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(context.Background(), fetch, "https://example.com", nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry invalid requests", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*distill.FetchResult, error) {
			calls++
			return nil, distill.Errorf(distill.EINVALID, "bad URL")
		}

		_, err := crawl.FetchWithRetry(context.Background(), fetch, "::", noDelays, nil)

		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*distill.FetchResult, error) {
			calls++
			return nil, distill.Errorf(distill.ENOTFOUND, "HTTP 404 for https://example.com/gone")
		}

		_, err := crawl.FetchWithRetry(context.Background(), fetch, "https://example.com/gone", noDelays, nil)

		assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (*distill.FetchResult, error) {
			cancel()
			return nil, errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(ctx, fetch, "https://example.com", []time.Duration{time.Hour}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
