// Package goquery provides a DOM-based implementation of
// urlcrawl.LinkExtractor using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/urlcrawl"
)

// Ensure Extractor implements urlcrawl.LinkExtractor at compile time.
var _ urlcrawl.LinkExtractor = (*Extractor)(nil)

// Extractor extracts links from every a[href] element of a parsed document.
// It applies the same skip and normalization rules as the pattern extractor,
// but decodes entities and tolerates attribute quoting the pattern misses.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses html and returns the distinct normalized links in document order.
func (e *Extractor) ExtractLinks(html string, sourceURL string) ([]string, error) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "invalid source URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, urlcrawl.Errorf(urlcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if urlcrawl.SkipHref(href) {
			return
		}
		link, ok := urlcrawl.NormalizeHref(href, source)
		if !ok {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links, nil
}
