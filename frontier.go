package distill

import "context"

// URLSet tracks URLs already scheduled in a batch.
type URLSet interface {
	// Add records url and returns false if it was already present.
	Add(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
