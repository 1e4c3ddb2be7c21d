package goquery_test

import (
	"testing"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements urlcrawl.LinkExtractor at compile time.
var _ urlcrawl.LinkExtractor = (*goquery.Extractor)(nil)

func TestExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("matches the pattern extractor on well-formed markup", func(t *testing.T) {
		t.Parallel()

		html := `<a href="local-link.html">something</a> another document` +
			`<a stuff href="/something#else"></a>` +
			`<a href="/local-link"></a> hello and so on ` +
			`<a href="//www.google.com"></a> hello and so on ` +
			`<a href="#ignore"></a>` +
			`<a href="/"></a>`

		links, err := goquery.NewExtractor().ExtractLinks(html, "http://www.visual-meta.com/foo/bar.html")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"http://www.visual-meta.com/foo/local-link.html",
			"http://www.visual-meta.com/something#else",
			"http://www.visual-meta.com/local-link",
			"http://www.google.com",
		}, links)
	})

	t.Run("handles single quotes and upper case tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><A HREF="/upper">U</A><a href='/single'>S</a></body></html>`

		links, err := goquery.NewExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/upper", "https://example.com/single"}, links)
	})

	t.Run("ignores non-anchor elements and non-http schemes", func(t *testing.T) {
		t.Parallel()

		html := `<link href="/style.css"><a name="top">no href</a>` +
			`<a href="mailto:a@example.com">m</a><a href="page">p</a>`

		links, err := goquery.NewExtractor().ExtractLinks(html, "https://example.com/dir/index.html")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/dir/page"}, links)
	})

	t.Run("collapses duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">1</a><a href="/a">2</a>`

		links, err := goquery.NewExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, links)
	})

	t.Run("returns error for invalid source URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().ExtractLinks(`<a href="/a">a</a>`, "http://[::1")

		require.Error(t, err)
		assert.Equal(t, urlcrawl.EINVALID, urlcrawl.ErrorCode(err))
	})
}
