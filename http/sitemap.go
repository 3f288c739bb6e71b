package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/distill"
)

// MaxSitemapSize caps a single sitemap document after decompression, as the
// sitemaps protocol does.
const MaxSitemapSize = 50 << 20

// Ensure SitemapService implements distill.SitemapService.
var _ distill.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed for target, de-duplicated in
// sitemap order. Returns an empty slice (not nil) if no sitemaps are found.
//
// A target whose path ends in .xml or .xml.gz is read as a sitemap (or sitemap index)
// directly. Any other target is treated as a site address: its sitemaps are
// found through robots.txt or /sitemap.xml, and when the target has a
// non-root path (e.g., https://example.com/docs/) only URLs below that
// path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, target string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(target)
	if err != nil || !base.IsAbs() {
		return nil, distill.Errorf(distill.EINVALID, "invalid sitemap URL %q", target)
	}

	var (
		sitemapURLs []string
		pathPrefix  string
	)
	if isSitemapPath(base.Path) {
		sitemapURLs = []string{base.String()}
	} else {
		pathPrefix = base.Path
		if pathPrefix == "/" {
			pathPrefix = ""
		}

		root := &url.URL{Scheme: base.Scheme, Host: base.Host}
		sitemapURLs, err = s.findSitemapURLs(ctx, root)
		if err != nil {
			return nil, err
		}
	}

	allURLs := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix != "" && !matchesPathPrefix(u, pathPrefix) {
				continue
			}
			allURLs = append(allURLs, u)
		}
	}

	return allURLs, nil
}

func isSitemapPath(p string) bool {
	p = strings.ToLower(p)
	return strings.HasSuffix(p, ".xml") || strings.HasSuffix(p, ".xml.gz")
}

// matchesPathPrefix reports whether rawURL lies below prefix on a segment
// boundary: /docs matches /docs/ and /docs/intro but not /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// findSitemapURLs reads Sitemap directives from robots.txt and falls back
// to /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	found, err := exists(ctx, s.client, fallback)
	if err != nil {
		// Anything but cancellation means there is no sitemap.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return []string{fallback}, nil
}

// parseSitemapsFromRobots returns the Sitemap directives of robots.txt,
// resolved against its URL.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL *url.URL) ([]string, error) {
	body, err := get(ctx, s.client, robotsURL.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) <= len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(line[len(directive):]))
		if err != nil || ref.String() == "" {
			continue
		}
		sitemaps = append(sitemaps, robotsURL.ResolveReference(ref).String())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap reads a urlset or, recursively, a sitemapindex. Sitemaps
// already in seen are skipped, which also breaks index cycles.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	doc, err := s.readSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.processSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	case "urlset":
		return locs(root, "url"), nil
	default:
		return nil, fmt.Errorf("unexpected <%s> root in sitemap %s", root.Tag, sitemapURL)
	}
}

// readSitemap fetches and parses one sitemap document, decompressing it
// when it is gzipped.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*etree.Document, error) {
	body, err := get(ctx, s.client, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	br := bufio.NewReader(body)
	var r io.Reader = br
	if magic, _ := br.Peek(2); bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap %s: %w", sitemapURL, err)
		}
		defer zr.Close()
		r = zr
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(r, MaxSitemapSize)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML at %s: %w", sitemapURL, err)
	}
	return doc, nil
}

// locs returns the trimmed, non-empty <loc> values of the children of
// root named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}
