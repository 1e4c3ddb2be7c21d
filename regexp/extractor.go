// Package regexp provides a pattern-based implementation of
// urlcrawl.LinkExtractor. It scans raw page text for anchor tags instead of
// building a parse tree, so malformed or partial markup only fails to match.
package regexp

import (
	"net/url"
	"regexp"

	"github.com/fwojciec/urlcrawl"
)

// Ensure Extractor implements urlcrawl.LinkExtractor at compile time.
var _ urlcrawl.LinkExtractor = (*Extractor)(nil)

// AnchorPattern matches the href value of an anchor tag.
// Submatch 1 is the raw value between the double quotes.
const AnchorPattern = `<a\s+(?:[^>]*?\s+)?href="([^"]*)"`

var anchorRe = regexp.MustCompile(AnchorPattern)

// Extractor extracts links from HTML using AnchorPattern.
// It is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the distinct normalized links found in html.
// Hrefs rejected by urlcrawl.SkipHref are dropped before normalization.
func (e *Extractor) ExtractLinks(html string, sourceURL string) ([]string, error) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "invalid source URL: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string
	for _, m := range anchorRe.FindAllStringSubmatch(html, -1) {
		href := m[1]
		if urlcrawl.SkipHref(href) {
			continue
		}
		link, ok := urlcrawl.NormalizeHref(href, source)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links, nil
}
