package mock

import (
	"context"

	"github.com/fwojciec/distill"
)

var _ distill.URLSet = (*URLSet)(nil)

// URLSet is a mock implementation of distill.URLSet.
type URLSet struct {
	AddFn func(url string) bool
}

func (s *URLSet) Add(url string) bool {
	return s.AddFn(url)
}

var _ distill.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of distill.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
