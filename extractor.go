package urlcrawl

// LinkExtractor extracts outbound links from HTML pages.
type LinkExtractor interface {
	// ExtractLinks returns the distinct absolute URLs linked from html,
	// resolved against sourceURL. Order is not significant.
	// Malformed markup yields fewer links, never an error; an error is
	// returned only when sourceURL itself cannot be parsed.
	ExtractLinks(html string, sourceURL string) ([]string, error)
}
