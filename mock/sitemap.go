package mock

import (
	"context"

	"github.com/fwojciec/distill"
)

var _ distill.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of distill.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, target string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, target string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, target)
}

var _ distill.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of distill.FeedService.
type FeedService struct {
	FeedURLsFn func(ctx context.Context, feedURL string) ([]string, error)
}

func (s *FeedService) FeedURLs(ctx context.Context, feedURL string) ([]string, error) {
	return s.FeedURLsFn(ctx, feedURL)
}
