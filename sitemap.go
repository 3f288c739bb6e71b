package distill

import "context"

// SitemapService discovers page URLs from XML sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed for target. target is
	// either the address of a sitemap document or the address of a site
	// whose sitemaps are found through robots.txt. Sitemap indexes are
	// resolved recursively.
	DiscoverURLs(ctx context.Context, target string) ([]string, error)
}

// FeedService discovers page URLs from syndication feeds.
type FeedService interface {
	// FeedURLs returns the entry links of the RSS, Atom or JSON feed at
	// feedURL, in feed order.
	FeedURLs(ctx context.Context, feedURL string) ([]string, error)
}
