package mock

import (
	"context"

	"github.com/fwojciec/urlcrawl"
)

var _ urlcrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of urlcrawl.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *urlcrawl.Run, urls []string) error
	FindRunByIDFn func(ctx context.Context, id string) (*urlcrawl.Run, error)
	FindRunsFn    func(ctx context.Context, filter urlcrawl.RunFilter) ([]*urlcrawl.Run, error)
	FindRunURLsFn func(ctx context.Context, id string) ([]string, error)
	HasURLFn      func(ctx context.Context, url string) (bool, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *urlcrawl.Run, urls []string) error {
	return s.CreateRunFn(ctx, run, urls)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*urlcrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter urlcrawl.RunFilter) ([]*urlcrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRunURLs(ctx context.Context, id string) ([]string, error) {
	return s.FindRunURLsFn(ctx, id)
}

func (s *RunService) HasURL(ctx context.Context, url string) (bool, error) {
	return s.HasURLFn(ctx, url)
}
