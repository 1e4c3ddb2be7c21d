package urlcrawl

import (
	"context"
	"time"
)

// TerminationReason explains why a crawl stopped.
type TerminationReason string

// Termination reasons.
const (
	// ReasonDone means the target discovery count was reached.
	ReasonDone TerminationReason = "done"

	// ReasonStalled means the frontier stayed empty for the whole wait
	// timeout before the target was reached. It is not an error.
	ReasonStalled TerminationReason = "stalled"
)

// CrawlResult is the outcome of a crawl run.
type CrawlResult struct {
	// URLs holds every visited and still-queued URL, sorted and distinct.
	URLs []string `json:"urls"`

	// DiscoveredCount is the number of distinct URLs ever admitted.
	DiscoveredCount int `json:"discoveredCount"`

	// Reason is Done or Stalled.
	Reason TerminationReason `json:"reason"`
}

// Run is a persisted record of a crawl.
type Run struct {
	ID              string            `json:"id"`
	SeedURL         string            `json:"seedUrl"`
	Target          int               `json:"target"`
	DiscoveredCount int               `json:"discoveredCount"`
	Reason          TerminationReason `json:"reason"`
	StartedAt       time.Time         `json:"startedAt"`
	FinishedAt      time.Time         `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.Target < 1 {
		return Errorf(EINVALID, "run target must be positive")
	}
	switch r.Reason {
	case ReasonDone, ReasonStalled:
	default:
		return Errorf(EINVALID, "run reason %q not recognized", r.Reason)
	}
	return nil
}

// RunService represents a service for recording crawl runs.
type RunService interface {
	// CreateRun stores the run together with its result URLs.
	// The run's ID is assigned by the service.
	CreateRun(ctx context.Context, run *Run, urls []string) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRunURLs returns the URLs recorded for a run in sorted order.
	// Returns ENOTFOUND if the run does not exist.
	FindRunURLs(ctx context.Context, id string) ([]string, error)

	// HasURL reports whether any recorded run discovered the URL.
	HasURL(ctx context.Context, url string) (bool, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// URLWriter persists crawl results.
type URLWriter interface {
	// WriteURLs stores urls, one per line, in sorted order.
	WriteURLs(ctx context.Context, urls []string) error
}
