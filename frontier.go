package urlcrawl

import (
	"context"
	"time"
)

// URLFrontier holds the crawl queue together with the set of URLs that
// have already been claimed for fetching.
// Implementations must be safe for concurrent use.
type URLFrontier interface {
	// Claim removes the next URL from the queue and marks it visited
	// in one step. It waits up to timeout for a URL to become available.
	Claim(ctx context.Context, timeout time.Duration) (string, error)

	// Propose queues every URL that is neither visited nor queued and
	// returns how many were added.
	Propose(urls []string) int

	// Discovered returns the number of distinct URLs ever admitted.
	Discovered() int

	// Snapshot returns all visited and queued URLs in sorted order.
	Snapshot() []string
}
