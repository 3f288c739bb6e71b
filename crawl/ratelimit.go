package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/distill"
	"golang.org/x/time/rate"
)

var _ distill.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same host with one token bucket per
// host. Hosts are compared case-insensitively.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host, without
// bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		limit:   limit,
		burst:   1,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.bucket(strings.ToLower(domain)).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.buckets[host] = b
	}
	return b
}
