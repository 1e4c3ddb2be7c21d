package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	started := time.Now().UTC()

	result, err := deps.Crawler.Crawl(deps.Ctx, c.Seed, deps.Config.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := deps.Writer.WriteURLs(deps.Ctx, result.URLs); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing results: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d URLs to %s\n", len(result.URLs), deps.Config.Output)

	if deps.Runs == nil {
		return nil
	}

	run := &urlcrawl.Run{
		SeedURL:         c.Seed,
		Target:          deps.Config.Target,
		DiscoveredCount: result.DiscoveredCount,
		Reason:          result.Reason,
		StartedAt:       started,
		FinishedAt:      time.Now().UTC(),
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run, result.URLs); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)

	return nil
}

// progressPrinter reports claimed URLs and the final count on w, and
// per-page failures through logger.
func progressPrinter(w io.Writer, logger *slog.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressClaimed:
			fmt.Fprintf(w, "Crawling: %s\n", e.URL)
		case crawl.ProgressFetched:
			logger.Debug("page crawled", "url", e.URL, "links", e.Links, "added", e.Added, "discovered", e.Discovered)
		case crawl.ProgressFailed:
			logger.Info("page skipped", "url", e.URL, "err", e.Error)
		case crawl.ProgressFinished:
			fmt.Fprintf(w, "DONE: Discovered %d URLs\n", e.Discovered)
			if e.Reason == urlcrawl.ReasonStalled {
				fmt.Fprintln(w, "Stopped early: no new URLs arrived within the wait timeout")
			}
		}
	}
}
