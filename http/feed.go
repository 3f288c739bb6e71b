package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/distill"
	"github.com/mmcdole/gofeed"
)

// Ensure FeedService implements distill.FeedService.
var _ distill.FeedService = (*FeedService)(nil)

// FeedService reads entry links from RSS, Atom and JSON feeds.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a FeedService. If client is nil,
// http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// FeedURLs returns the de-duplicated entry links of the feed at feedURL.
// Relative links are resolved against the feed address. Entries without a
// link are skipped.
func (s *FeedService) FeedURLs(ctx context.Context, feedURL string) ([]string, error) {
	base, err := url.Parse(feedURL)
	if err != nil || !base.IsAbs() {
		return nil, distill.Errorf(distill.EINVALID, "invalid feed URL %q", feedURL)
	}

	body, err := get(ctx, s.client, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "parsing feed %s: %v", feedURL, err)
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		link := itemLink(item)
		if link == "" {
			continue
		}
		ref, err := url.Parse(link)
		if err != nil {
			continue
		}
		u := base.ResolveReference(ref).String()
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			return link
		}
	}
	return ""
}
