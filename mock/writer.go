package mock

import (
	"context"

	"github.com/fwojciec/urlcrawl"
)

var _ urlcrawl.URLWriter = (*URLWriter)(nil)

// URLWriter is a mock implementation of urlcrawl.URLWriter.
type URLWriter struct {
	WriteURLsFn func(ctx context.Context, urls []string) error
}

func (w *URLWriter) WriteURLs(ctx context.Context, urls []string) error {
	return w.WriteURLsFn(ctx, urls)
}
