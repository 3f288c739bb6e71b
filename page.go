package distill

import (
	"context"
	"time"
)

// Page is a processed page ready to be persisted.
type Page struct {
	URL         string
	FinalURL    string
	Title       string
	HTML        string
	Markdown    string // optional
	ContentHash string
	RetrievedAt time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.HTML == "" {
		return Errorf(EINVALID, "page HTML required")
	}
	return nil
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location and returns the path the page will
// have once committed; Commit makes changes permanent; Abort discards
// pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) (path string, err error)
	Commit() error
	Abort() error
}
