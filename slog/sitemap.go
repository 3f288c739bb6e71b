package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/distill"
)

// Ensure LoggingSitemapService implements distill.SitemapService.
var _ distill.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   distill.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next distill.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, target string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"target", target,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, target)
}

// Ensure LoggingFeedService implements distill.FeedService.
var _ distill.FeedService = (*LoggingFeedService)(nil)

// LoggingFeedService wraps a FeedService with logging.
type LoggingFeedService struct {
	next   distill.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next distill.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// FeedURLs delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) FeedURLs(ctx context.Context, feedURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed discovery",
			"feed", feedURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FeedURLs(ctx, feedURL)
}
