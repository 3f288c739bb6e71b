package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// collect gathers URLs from arguments, the input list, sitemaps and feeds,
// in that order.
func (c *ExtractCmd) collect(deps *Dependencies) ([]string, error) {
	urls := append([]string(nil), c.URLs...)

	if c.Input != "" {
		listed, err := c.readInput(deps)
		if err != nil {
			return nil, err
		}
		urls = append(urls, listed...)
	}

	for _, target := range c.Sitemaps {
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, target)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", target, err)
		}
		urls = append(urls, found...)
	}

	for _, feed := range c.Feeds {
		found, err := deps.Feeds.FeedURLs(deps.Ctx, feed)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", feed, err)
		}
		urls = append(urls, found...)
	}

	return urls, nil
}

func (c *ExtractCmd) readInput(deps *Dependencies) ([]string, error) {
	if c.Input == "-" {
		return ReadURLList(deps.Stdin)
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	return ReadURLList(f)
}

// ReadURLList reads one URL per line. Blank lines and lines starting with
// '#' are ignored; surrounding whitespace is trimmed.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}
