package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/distill"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*distill.FetchResult, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Backoff returns n delays starting at base and doubling each time.
func Backoff(base time.Duration, n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = base << i
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return Backoff(time.Second, 3)
}

// Permanent reports whether a fetch error will not go away on retry.
func Permanent(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch distill.ErrorCode(err) {
	case distill.EINVALID, distill.ENOTFOUND:
		return true
	}
	return false
}

// FetchWithRetry calls fetch once and then once more after each delay, until
// it succeeds or fails permanently. logf, if set, is called before each retry.
func FetchWithRetry(ctx context.Context, fetch FetchFunc, url string, delays []time.Duration, logf LogFunc) (*distill.FetchResult, error) {
	res, err := fetch(ctx, url)
	for i := 0; err != nil && i < len(delays); i++ {
		if Permanent(err) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if logf != nil {
			logf("retry %s (attempt %d): %v", url, i+2, err)
		}
		if werr := sleep(ctx, delays[i]); werr != nil {
			return nil, werr
		}
		res, err = fetch(ctx, url)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
