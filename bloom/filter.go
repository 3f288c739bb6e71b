// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/distill"
)

// DefaultFalsePositiveRate keeps the chance of skipping an unseen URL
// negligible for batch-sized inputs.
const DefaultFalsePositiveRate = 1e-6

// Ensure Filter implements distill.URLSet at compile time.
var _ distill.URLSet = (*Filter)(nil)

// Filter wraps a Bloom filter for URL deduplication.
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records the URL and returns false if an equivalent URL was added
// before. URLs that differ only in scheme or host case, or in their
// fragment, are equivalent.
func (f *Filter) Add(rawURL string) bool {
	key := Canonical(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestAndAddString(key)
}

// Canonical returns the form of rawURL used as the deduplication key.
// Unparseable input is returned trimmed but otherwise unchanged.
func Canonical(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}
	return u.String()
}
