// Package crawl provides batch extraction orchestration.
// It coordinates fetching, content extraction, and storage of pages.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/distill"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed in parallel when
// Batch.Concurrency is not set.
const DefaultConcurrency = 10

// Batch extracts the main content of a list of pages and persists it.
// Fetcher, Parser, Processor and Pages are required; the remaining
// collaborators are optional.
type Batch struct {
	Fetcher   distill.Fetcher
	Parser    distill.Parser
	Processor distill.Processor
	Pages     distill.PageStore

	// Converter, when set, adds a Markdown rendition to every page.
	Converter distill.Converter

	// Archive, when set, indexes saved pages and is consulted to skip
	// content that was archived by an earlier run.
	Archive distill.ArchiveService

	// Seen de-duplicates input URLs. Defaults to an exact in-memory set.
	Seen distill.URLSet

	// RateLimiter, when set, is waited on per host before each fetch.
	RateLimiter distill.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url  string
	page *distill.Page
	err  error
}

// saved pairs a stored page with its final path, for archiving after commit.
type saved struct {
	page *distill.Page
	path string
}

// Run processes urls and saves every extracted page. A failure for one URL
// is reported through progress and counted in Result.Failed; it never stops
// the batch. Pages are committed to the store only if the run completes;
// on context cancellation pending writes are aborted and the context error
// is returned together with the partial result.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	urls = b.dedupe(urls)
	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			g.Go(func() error {
				resultCh <- b.processURL(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		result    Result
		completed atomic.Int64
		stored    []saved
	)
	hashes := make(map[string]bool)

	// The store is only touched from this loop, so PageStore
	// implementations need not be safe for concurrent use.
	for r := range resultCh {
		done := int(completed.Add(1))
		event := ProgressEvent{Completed: done, Total: total, URL: r.url}

		if r.err != nil {
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
			progress(event)
			continue
		}

		path, skip, err := b.save(ctx, r.page, hashes)
		switch {
		case err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = err
		case skip:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Saved++
			result.Bytes += len(r.page.HTML)
			stored = append(stored, saved{page: r.page, path: path})
			event.Type = ProgressCompleted
			event.Path = path
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		_ = b.Pages.Abort()
		return &result, err
	}

	if err := b.finish(ctx, stored); err != nil {
		return &result, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &result, nil
}

// dedupe drops blank and repeated URLs, keeping first occurrences in order.
func (b *Batch) dedupe(urls []string) []string {
	seen := b.Seen
	if seen == nil {
		seen = make(urlSet)
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || !seen.Add(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// processURL fetches and extracts a single URL.
func (b *Batch) processURL(ctx context.Context, rawURL string) pageResult {
	result := pageResult{url: rawURL}

	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	res, err := FetchWithRetry(ctx, b.Fetcher.Fetch, rawURL, delays, b.Logf)
	if err != nil {
		result.err = fmt.Errorf("fetch: %w", err)
		return result
	}

	final := res.FinalURL
	if final == "" {
		final = rawURL
	}

	doc, err := b.Parser.Parse(res.Body, res.ContentType)
	if err != nil {
		result.err = fmt.Errorf("parse: %w", err)
		return result
	}
	doc.URL = final

	frag, err := b.Processor.Process(doc, final)
	if err != nil {
		result.err = fmt.Errorf("process: %w", err)
		return result
	}

	page, err := b.page(rawURL, final, frag)
	if err != nil {
		result.err = err
		return result
	}
	result.page = page
	return result
}

// page serializes a fragment into a Page.
func (b *Batch) page(rawURL, final string, frag *distill.Fragment) (*distill.Page, error) {
	out, err := frag.HTML()
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	content, err := frag.ContentHTML()
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	page := &distill.Page{
		URL:         rawURL,
		FinalURL:    final,
		Title:       frag.Title,
		HTML:        out,
		ContentHash: ComputeHash(content),
		RetrievedAt: frag.RetrievedAt,
	}

	if b.Converter != nil {
		md, err := b.Converter.Convert(content)
		if err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
		page.Markdown = md
	}
	return page, nil
}

// save stores page unless its content was already seen in this run or
// archived by an earlier one.
func (b *Batch) save(ctx context.Context, page *distill.Page, hashes map[string]bool) (path string, skip bool, err error) {
	if hashes[page.ContentHash] {
		return "", true, nil
	}

	if b.Archive != nil {
		hash := page.ContentHash
		recs, err := b.Archive.FindRecords(ctx, distill.RecordFilter{ContentHash: &hash, Limit: 1})
		if err != nil {
			return "", false, fmt.Errorf("archive lookup: %w", err)
		}
		if len(recs) > 0 {
			hashes[hash] = true
			return "", true, nil
		}
	}

	path, err = b.Pages.Save(ctx, page)
	if err != nil {
		return "", false, fmt.Errorf("save: %w", err)
	}
	hashes[page.ContentHash] = true
	return path, false, nil
}

// finish commits stored pages and indexes them in the archive.
func (b *Batch) finish(ctx context.Context, stored []saved) error {
	if len(stored) == 0 {
		return b.Pages.Abort()
	}
	if err := b.Pages.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if b.Archive == nil {
		return nil
	}
	for _, s := range stored {
		rec := &distill.Record{
			SourceURL:   s.page.URL,
			FinalURL:    s.page.FinalURL,
			FilePath:    s.path,
			Title:       s.page.Title,
			ContentHash: s.page.ContentHash,
			Bytes:       len(s.page.HTML),
			RetrievedAt: s.page.RetrievedAt,
		}
		if err := b.Archive.CreateRecord(ctx, rec); err != nil {
			return fmt.Errorf("archive record: %w", err)
		}
	}
	return nil
}

// hostOf returns the host of rawURL, or rawURL itself if it does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}

// urlSet is the default exact URL set.
type urlSet map[string]bool

func (s urlSet) Add(u string) bool {
	if s[u] {
		return false
	}
	s[u] = true
	return true
}
