package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/crawl"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Page URLs to extract"`
	Input       string        `short:"i" help:"File listing one URL per line, '-' for stdin (# starts a comment)"`
	Sitemap     []string      `short:"s" help:"Sitemap or site URL to read page URLs from (repeatable)"`
	Feed        []string      `short:"f" help:"RSS, Atom or JSON feed to read page URLs from (repeatable)"`
	Out         string        `short:"o" default:"." help:"Base directory for output"`
	Name        string        `short:"n" default:"distilled" help:"Name of the output directory"`
	Rules       string        `help:"YAML file with extraction rules"`
	Concurrency int           `short:"c" default:"10" help:"Pages processed in parallel"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables the limit)"`
	Render      bool          `short:"r" help:"Render pages in headless Chrome before extraction"`
	Stealth     bool          `help:"Hide headless Chrome from bot detection (with --render)"`
	Markdown    bool          `short:"m" help:"Write a Markdown file next to each fragment"`
	DB          string        `name:"db" help:"SQLite archive index; content archived by earlier runs is skipped"`
	Preview     bool          `short:"p" help:"List the URLs that would be extracted without fetching them"`
	Verbose     bool          `short:"v" help:"Log debug output to stderr"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Sitemaps distill.SitemapService
	Feeds    distill.FeedService

	// Batch is nil in preview mode.
	Batch *crawl.Batch
}

// ExtractCmd collects page URLs and extracts each page.
type ExtractCmd struct {
	URLs     []string
	Input    string
	Sitemaps []string
	Feeds    []string
	Preview  bool
}
