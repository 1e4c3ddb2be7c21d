package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/crawl"
	"github.com/fwojciec/urlcrawl/fs"
	"github.com/fwojciec/urlcrawl/goquery"
	crawlhttp "github.com/fwojciec/urlcrawl/http"
	"github.com/fwojciec/urlcrawl/regexp"
	crawlslog "github.com/fwojciec/urlcrawl/slog"
	"github.com/fwojciec/urlcrawl/sqlite"
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
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher, for end-to-end testing.
	Fetcher urlcrawl.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("urlcrawl"),
		kong.Description("Discover URLs breadth-first from a seed page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no seed URL specified. Run 'urlcrawl --help' to see usage")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	cfg.Apply(Config{DB: cli.DB, Verbose: cli.Verbose})
	if strings.HasPrefix(cmd, "crawl") {
		cfg.Apply(cli.Crawl.overrides())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Config: cfg,
	}

	if cfg.DB != "" {
		m.DB = sqlite.NewDB(cfg.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set URLCRAWL_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
		}
		defer m.Close()
		deps.Runs = crawlslog.NewLoggingRunService(sqlite.NewRunService(m.DB), logger)
	} else if !strings.HasPrefix(cmd, "crawl") {
		return fmt.Errorf("no database configured. Set URLCRAWL_DB or pass --db")
	}

	if strings.HasPrefix(cmd, "crawl") {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = crawlhttp.NewFetcher(
				crawlhttp.WithTimeout(cfg.Timeout),
				crawlhttp.WithUserAgent(cfg.UserAgent),
			)
		}
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     crawlslog.NewLoggingFetcher(fetcher, logger),
			Extractor:   crawlslog.NewLoggingExtractor(newExtractor(cfg.Extractor), logger),
			Workers:     cfg.Workers,
			WaitTimeout: cfg.Wait,
			GracePeriod: cfg.Grace,
			Progress:    progressPrinter(stdout, logger),
		}
		deps.Writer = fs.NewURLWriter(cfg.Output)
	}

	return kongCtx.Run(deps)
}

// newLogger logs warnings and errors, or everything down to debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newExtractor(name string) urlcrawl.LinkExtractor {
	if name == ExtractorDOM {
		return goquery.NewExtractor()
	}
	return regexp.NewExtractor()
}
