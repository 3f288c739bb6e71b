package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/crawl"
	"github.com/fwojciec/distill/fs"
	"github.com/fwojciec/distill/goquery"
	"github.com/fwojciec/distill/htmltomarkdown"
	distillhttp "github.com/fwojciec/distill/http"
	"github.com/fwojciec/distill/rod"
	dslog "github.com/fwojciec/distill/slog"
	"github.com/fwojciec/distill/sqlite"
	"github.com/fwojciec/distill/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when --input is "-".
	Stdin io.Reader

	// RetryDelays overrides the fetch backoff. Nil uses crawl.DefaultRetryDelays.
	RetryDelays []time.Duration

	// SQLite database used by the archive index, when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("distill"),
		kong.Description("Extract the main content of web pages into clean, self-contained HTML fragments"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if len(cli.URLs) == 0 && cli.Input == "" && len(cli.Sitemap) == 0 && len(cli.Feed) == 0 {
		return fmt.Errorf("no URLs provided: pass URLs, --input, --sitemap or --feed")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    m.Stdin,
		Sitemaps: dslog.NewLoggingSitemapService(distillhttp.NewSitemapService(nil), logger),
		Feeds:    dslog.NewLoggingFeedService(distillhttp.NewFeedService(nil), logger),
	}

	cmd := &ExtractCmd{
		URLs:     cli.URLs,
		Input:    cli.Input,
		Sitemaps: cli.Sitemap,
		Feeds:    cli.Feed,
		Preview:  cli.Preview,
	}

	if cli.Preview {
		return cmd.Run(deps)
	}

	rules := distill.DefaultRules()
	if cli.Rules != "" {
		rules, err = yaml.LoadRules(cli.Rules)
		if err != nil {
			return fmt.Errorf("failed to load rules from %q: %w", cli.Rules, err)
		}
	}

	var fetcher distill.Fetcher
	if cli.Render {
		opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
		if cli.Stealth {
			opts = append(opts, rod.WithStealth())
		}
		rodFetcher, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = distillhttp.NewFetcher(distillhttp.WithTimeout(cli.Timeout))
	}
	fetcher = dslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	batch := &crawl.Batch{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Processor:   dslog.NewLoggingProcessor(goquery.NewProcessor(goquery.WithRules(rules)), logger),
		Pages:       fs.NewFileStore(cli.Out, cli.Name),
		RateLimiter: crawl.NewDomainLimiter(cli.RPS),
		Concurrency: cli.Concurrency,
		RetryDelays: m.RetryDelays,
		Logf: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	if cli.Markdown {
		batch.Converter = htmltomarkdown.NewConverter()
	}
	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		batch.Archive = sqlite.NewArchiveService(m.DB)
	}
	deps.Batch = batch

	return cmd.Run(deps)
}
