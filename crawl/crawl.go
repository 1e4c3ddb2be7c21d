// Package crawl provides the concurrent breadth-first crawl engine.
// It coordinates the frontier, a fixed-size worker pool that fetches and
// parses pages, and the decision of when a crawl is done or stalled.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/urlcrawl"
)

// Crawl defaults.
const (
	DefaultTarget      = 1000
	DefaultWaitTimeout = 10 * time.Second
	DefaultWorkers     = 100
	DefaultGracePeriod = 10 * time.Second
)

// Crawler runs bounded breadth-first crawls.
type Crawler struct {
	Fetcher   urlcrawl.Fetcher
	Extractor urlcrawl.LinkExtractor

	// Workers is the worker pool size. Defaults to DefaultWorkers.
	Workers int

	// WaitTimeout is how long the claim loop waits on an empty frontier
	// before the crawl is considered stalled. Defaults to DefaultWaitTimeout.
	WaitTimeout time.Duration

	// GracePeriod bounds the wait for in-flight fetches once the crawl
	// loop has stopped. Defaults to DefaultGracePeriod.
	GracePeriod time.Duration

	// Progress, if set, receives events as the crawl proceeds.
	// Calls are serialized and stop once Crawl returns.
	Progress ProgressFunc
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type       ProgressType
	URL        string
	Links      int // links extracted from the page
	Added      int // links that were new to the frontier
	Discovered int
	Reason     urlcrawl.TerminationReason
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressClaimed ProgressType = iota
	ProgressFetched
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl discovers URLs breadth-first from seedURL until target distinct
// URLs have been admitted (ReasonDone) or the frontier stays empty for
// WaitTimeout (ReasonStalled).
//
// Per-URL failures never fail the crawl: a malformed seed is dropped, and a
// page that cannot be fetched or is not HTML simply contributes no links.
// An error is returned only for invalid arguments, when ctx is canceled, or
// when the worker pool cannot take a task.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, target int) (*urlcrawl.CrawlResult, error) {
	if target < 1 {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "target discovery count must be positive, got %d", target)
	}
	if c.Fetcher == nil || c.Extractor == nil {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "crawler requires a fetcher and a link extractor")
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	waitTimeout := c.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	grace := c.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	r := &run{
		fetcher:   c.Fetcher,
		extractor: c.Extractor,
		frontier:  NewFrontier(uint(target)),
		progress:  c.Progress,
	}
	defer r.close()
	frontier := r.frontier

	if _, err := urlcrawl.ParseSeed(seedURL); err != nil {
		r.report(ProgressEvent{Type: ProgressFailed, URL: seedURL, Error: err})
	} else {
		frontier.Seed(seedURL)
	}

	// Abandoned tasks are canceled once the crawl returns.
	taskCtx, cancelTasks := context.WithCancel(ctx)
	defer cancelTasks()

	p := newPool(workers)
	reason := urlcrawl.ReasonDone
	var runErr error

	for frontier.Discovered() < target {
		url, err := frontier.Claim(ctx, waitTimeout)
		if errors.Is(err, ErrTimeout) {
			reason = urlcrawl.ReasonStalled
			break
		}
		if err != nil {
			runErr = fmt.Errorf("claiming next URL: %w", err)
			break
		}

		r.report(ProgressEvent{Type: ProgressClaimed, URL: url, Discovered: frontier.Discovered()})

		if err := p.Submit(ctx, func() { r.visit(taskCtx, url) }); err != nil {
			runErr = fmt.Errorf("dispatching %s: %w", url, err)
			break
		}
	}

	p.Shutdown(grace)

	if runErr != nil {
		return nil, runErr
	}

	urls := frontier.Snapshot()
	result := &urlcrawl.CrawlResult{
		URLs:            urls,
		DiscoveredCount: len(urls),
		Reason:          reason,
	}

	r.report(ProgressEvent{
		Type:       ProgressFinished,
		Discovered: result.DiscoveredCount,
		Reason:     result.Reason,
	})

	return result, nil
}

// run holds the state of a single crawl.
type run struct {
	fetcher   urlcrawl.Fetcher
	extractor urlcrawl.LinkExtractor
	frontier  *Frontier

	mu       sync.Mutex
	progress ProgressFunc
	closed   bool
}

// visit fetches a claimed URL and proposes the links found on it.
// The URL stays visited whatever the outcome.
func (r *run) visit(ctx context.Context, url string) {
	html, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.report(ProgressEvent{Type: ProgressFailed, URL: url, Error: err})
		return
	}

	links, err := r.extractor.ExtractLinks(html, url)
	if err != nil {
		r.report(ProgressEvent{Type: ProgressFailed, URL: url, Error: err})
		return
	}

	added := r.frontier.Propose(links)
	r.report(ProgressEvent{
		Type:       ProgressFetched,
		URL:        url,
		Links:      len(links),
		Added:      added,
		Discovered: r.frontier.Discovered(),
	})
}

func (r *run) report(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.progress == nil {
		return
	}
	r.progress(event)
}

// close drops events from tasks that outlive the crawl.
func (r *run) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}
