package mock

import "github.com/fwojciec/urlcrawl"

var _ urlcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of urlcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, sourceURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, sourceURL string) ([]string, error) {
	return e.ExtractLinksFn(html, sourceURL)
}
