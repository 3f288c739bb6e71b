package distill

import "context"

// FetchResult holds the raw bytes of a retrieved page.
type FetchResult struct {
	// URL is the requested address.
	URL string

	// FinalURL is the address after redirects. It is the base URL for
	// reference resolution and the recorded source of the fragment.
	FinalURL string

	// ContentType is the response content type, used as an encoding hint.
	ContentType string

	Body []byte
}

// Fetcher retrieves pages from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
