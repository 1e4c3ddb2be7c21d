package crawl

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/bloom"
)

// Compile-time interface verification.
var _ urlcrawl.URLFrontier = (*Frontier)(nil)

// ErrTimeout is returned by Frontier.Claim when no URL became available
// within the wait timeout.
var ErrTimeout = errors.New("frontier wait timed out")

// frontierFalsePositiveRate is the Bloom filter rate for the pre-check.
const frontierFalsePositiveRate = 0.01

// Bloom filter sizing bounds. Past the upper bound the filter saturates and
// its false positive rate rises; membership stays exact.
const (
	frontierMinExpectedURLs = 1 << 10
	frontierMaxExpectedURLs = 1 << 20
)

// compactThreshold is the number of consumed queue slots tolerated before
// the queue slice is re-packed.
const compactThreshold = 1024

// Frontier is an in-memory FIFO of discovered URLs together with the set of
// URLs already claimed for fetching. The queue, the visited set and the
// discovered counter are guarded by a single mutex so that claiming and
// proposing are each one atomic step.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu         sync.Mutex
	queue      []string
	head       int
	queued     map[string]struct{}
	visited    map[string]struct{}
	seen       *bloom.Filter
	discovered int

	// ready holds a token while the queue may be non-empty.
	ready chan struct{}
}

// NewFrontier creates an empty Frontier sized for n expected URLs.
// Any n is accepted.
func NewFrontier(n uint) *Frontier {
	n = min(max(n, frontierMinExpectedURLs), frontierMaxExpectedURLs)
	return &Frontier{
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
		seen:    bloom.NewFilter(n, frontierFalsePositiveRate),
		ready:   make(chan struct{}, 1),
	}
}

// Seed queues the starting URL. It returns false if the URL was already admitted.
func (f *Frontier) Seed(url string) bool {
	return f.Propose([]string{url}) == 1
}

// Claim removes the URL at the head of the queue and marks it visited.
// If the queue is empty it waits up to timeout for a proposal, returning
// ErrTimeout when none arrives, or the context error if ctx is done first.
func (f *Frontier) Claim(ctx context.Context, timeout time.Duration) (string, error) {
	if url, ok := f.pop(); ok {
		return url, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
			if url, ok := f.pop(); ok {
				return url, nil
			}
			return "", ErrTimeout
		case <-f.ready:
			if url, ok := f.pop(); ok {
				return url, nil
			}
		}
	}
}

// pop claims the head of the queue without waiting.
func (f *Frontier) pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return "", false
	}

	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++
	if f.head >= compactThreshold && f.head*2 >= len(f.queue) {
		f.queue = append([]string(nil), f.queue[f.head:]...)
		f.head = 0
	}

	delete(f.queued, url)
	f.visited[url] = struct{}{}

	if f.head < len(f.queue) {
		f.signal()
	}
	return url, true
}

// Propose appends every URL that is neither visited nor already queued to
// the tail of the queue, in the given order, and returns how many were added.
// Duplicates within urls are admitted once.
func (f *Frontier) Propose(urls []string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, url := range urls {
		if f.seen.MayContain(url) && f.admitted(url) {
			continue
		}
		f.seen.Add(url)
		f.queued[url] = struct{}{}
		f.queue = append(f.queue, url)
		added++
	}
	f.discovered += added

	if added > 0 {
		f.signal()
	}
	return added
}

// admitted reports whether url is visited or queued. The caller holds mu.
func (f *Frontier) admitted(url string) bool {
	if _, ok := f.visited[url]; ok {
		return true
	}
	_, ok := f.queued[url]
	return ok
}

// signal leaves a wake-up token for a waiting Claim. The caller holds mu.
func (f *Frontier) signal() {
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// Discovered returns the number of distinct URLs ever admitted,
// which always equals Visited() + Len().
func (f *Frontier) Discovered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discovered
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Visited returns the number of claimed URLs.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// Snapshot returns the union of visited and queued URLs in sorted order.
func (f *Frontier) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]string, 0, f.discovered)
	for url := range f.visited {
		urls = append(urls, url)
	}
	urls = append(urls, f.queue[f.head:]...)
	sort.Strings(urls)
	return urls
}
