package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcrawl"
)

// Ensure LoggingRunService implements urlcrawl.RunService.
var _ urlcrawl.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with logging.
type LoggingRunService struct {
	next   urlcrawl.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next urlcrawl.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *urlcrawl.Run, urls []string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create run",
			"id", run.ID,
			"seed", run.SeedURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run, urls)
}

// FindRunByID delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (run *urlcrawl.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter urlcrawl.RunFilter) (runs []*urlcrawl.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

// FindRunURLs delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRunURLs(ctx context.Context, id string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run urls",
			"id", id,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunURLs(ctx, id)
}

// HasURL delegates to the wrapped service.
func (s *LoggingRunService) HasURL(ctx context.Context, url string) (bool, error) {
	return s.next.HasURL(ctx, url)
}
