package urlcrawl

import (
	"net/url"
	"strings"
)

// NormalizeHref converts an href found on the page at source into an
// absolute URL. The bool result is false when href is not a crawlable link:
// it carries a non-HTTP scheme (mailto:, tel:, javascript:, ...) or the
// resulting string does not parse as an absolute http(s) URL with a host.
//
// Absolute http(s) hrefs are returned unchanged, so normalizing an already
// normalized URL is a no-op regardless of source.
func NormalizeHref(href string, source *url.URL) (string, bool) {
	if source == nil || source.Scheme == "" || source.Host == "" {
		return "", false
	}
	base := source.Scheme + "://" + source.Host

	var result string
	switch {
	case strings.HasPrefix(href, "//"):
		result = source.Scheme + ":" + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		result = href
	case hasScheme(href):
		return "", false
	case strings.HasPrefix(href, "/"):
		result = base + href
	default:
		result = base + directory(source.EscapedPath()) + href
	}

	if !isAbsoluteHTTP(result) {
		return "", false
	}
	return result, true
}

// SkipHref reports whether an href is excluded before normalization:
// fragment-only anchors and the bare root anchor "/".
func SkipHref(href string) bool {
	return href == "/" || strings.HasPrefix(href, "#")
}

// hasScheme reports whether a colon appears before the first slash.
func hasScheme(href string) bool {
	colon := strings.IndexByte(href, ':')
	if colon == -1 {
		return false
	}
	slash := strings.IndexByte(href, '/')
	return slash == -1 || colon < slash
}

// directory returns everything up to and including the last slash of path.
// An empty path is the root directory.
func directory(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i == -1 {
		return "/"
	}
	return path[:i+1]
}

// isAbsoluteHTTP reports whether raw parses as an http(s) URL with a host.
func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ParseSeed validates a seed URL for a crawl.
// It returns an EINVALID error unless raw is an absolute http(s) URL.
func ParseSeed(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q must be an absolute http(s) URL", raw)
	}
	return u, nil
}
