package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/urlcrawl"
)

// Ensure LoggingExtractor implements urlcrawl.LinkExtractor.
var _ urlcrawl.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   urlcrawl.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next urlcrawl.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the link count.
func (e *LoggingExtractor) ExtractLinks(html string, sourceURL string) (links []string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract links",
			"url", sourceURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(html, sourceURL)
}
