package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Crawler *crawl.Crawler
	Writer  urlcrawl.URLWriter
	Runs    urlcrawl.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"f" type:"path" help:"YAML config file (default: ./.urlcrawl.yaml, then ~/.urlcrawl.yaml)"`
	DB      string `env:"URLCRAWL_DB" help:"SQLite database recording crawl history"`
	Verbose bool   `short:"v" help:"Log every fetch"`

	Crawl CrawlCmd `cmd:"" default:"withargs" help:"Crawl breadth-first from a seed URL (default command)"`
	Runs  RunsCmd  `cmd:"" help:"List recorded crawl runs"`
	URLs  URLsCmd  `cmd:"" name:"urls" help:"Print the URLs recorded for a run"`
	Seen  SeenCmd  `cmd:"" help:"Report whether any recorded run discovered a URL"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seed      string        `arg:"" help:"Seed URL to start crawling from"`
	Target    int           `short:"n" help:"Distinct URLs to discover (default 1000)"`
	Wait      time.Duration `short:"w" help:"Stop once the frontier stays empty this long (default 10s)"`
	Workers   int           `short:"c" help:"Concurrent fetch limit (default 100)"`
	Grace     time.Duration `help:"Wait for in-flight fetches when stopping (default 10s)"`
	Timeout   time.Duration `short:"t" help:"Fetch timeout per page (default 10s)"`
	Output    string        `short:"o" help:"Output file (default urls.txt)"`
	Extractor string        `short:"x" help:"Link extractor: pattern or dom (default pattern)"`
	UserAgent string        `name:"user-agent" help:"User-Agent header sent with requests"`
}

// overrides returns the settings given as flags.
func (c *CrawlCmd) overrides() Config {
	return Config{
		Target:    c.Target,
		Wait:      c.Wait,
		Workers:   c.Workers,
		Grace:     c.Grace,
		Timeout:   c.Timeout,
		Output:    c.Output,
		Extractor: c.Extractor,
		UserAgent: c.UserAgent,
	}
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Seed  string `help:"Only show runs for this seed URL"`
	Limit int    `short:"l" default:"20" help:"Maximum number of runs to show"`
}

// URLsCmd is the "urls" subcommand.
type URLsCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// SeenCmd is the "seen" subcommand.
type SeenCmd struct {
	URL string `arg:"" help:"URL to look up"`
}
