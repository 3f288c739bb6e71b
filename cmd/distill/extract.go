package main

import (
	"fmt"

	"github.com/fwojciec/distill/bloom"
	"github.com/fwojciec/distill/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	urls, err := c.collect(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	return c.runExtract(deps, urls)
}

func (c *ExtractCmd) runExtract(deps *Dependencies, urls []string) error {
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to extract")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))

	batch := deps.Batch
	if batch.Seen == nil {
		batch.Seen = bloom.NewFilter(uint(len(urls)), bloom.DefaultFalsePositiveRate)
	}

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", e.URL, e.Error)
		case crawl.ProgressCompleted, crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.URL, 40))
		}
	}

	result, err := batch.Run(deps.Ctx, urls, progress)

	// Clear progress line
	fmt.Fprintf(deps.Stdout, "\r%80s\r", "")

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Summary())

	if result.Saved == 0 && result.Skipped == 0 && result.Failed > 0 {
		return fmt.Errorf("no pages extracted: %d failed", result.Failed)
	}
	return nil
}
