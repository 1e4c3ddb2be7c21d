package urlcrawl

import "context"

// Fetcher retrieves HTML from URLs.
//
// A Fetch has exactly three outcomes: the HTML body with a nil error, an
// error with code ENOTHTML when the resource is not an HTML page, or any
// other error when the page is unavailable. Redirects are followed by the
// implementation and must be bounded.
type Fetcher interface {
	// Fetch retrieves the HTML content of the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
