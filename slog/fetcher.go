// Package slog provides log/slog decorators for urlcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcrawl"
)

// Ensure LoggingFetcher implements urlcrawl.Fetcher.
var _ urlcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   urlcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next urlcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
// Failed fetches also log the error code, so pages that are not HTML can be
// told apart from unavailable ones.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		args := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			args = append(args, "code", urlcrawl.ErrorCode(err), "err", err)
		}
		f.logger.Info("fetch", args...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
