package crawl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/urlcrawl"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// pool runs tasks on at most size goroutines at a time.
// Submit blocks only while every slot is busy. Submit and Shutdown must be
// called from the same goroutine.
type pool struct {
	g    errgroup.Group
	sem  *semaphore.Weighted
	mu   sync.Mutex
	shut bool
}

func newPool(size int) *pool {
	return &pool{sem: semaphore.NewWeighted(int64(size))}
}

// Submit schedules task on a free slot, waiting for one if necessary.
// It fails if the pool has been shut down or ctx is done before a slot frees up.
func (p *pool) Submit(ctx context.Context, task func()) error {
	p.mu.Lock()
	shut := p.shut
	p.mu.Unlock()
	if shut {
		return urlcrawl.Errorf(urlcrawl.EINTERNAL, "worker pool is shut down")
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for worker: %w", err)
	}
	p.g.Go(func() error {
		defer p.sem.Release(1)
		task()
		return nil
	})
	return nil
}

// Shutdown stops accepting tasks and waits up to grace for running tasks.
// It reports whether every task finished in time; unfinished tasks are
// left running and no longer awaited.
func (p *pool) Shutdown(grace time.Duration) bool {
	p.mu.Lock()
	p.shut = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = p.g.Wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
