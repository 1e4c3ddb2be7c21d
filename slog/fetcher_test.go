package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/mock"
	crawlslog "github.com/fwojciec/urlcrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs page size for an HTML page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return `<a href="/next">next</a>`, nil
			},
		}

		fetcher := crawlslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "http://a.com/start")

		require.NoError(t, err)
		assert.Equal(t, `<a href="/next">next</a>`, html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=http://a.com/start")
		assert.Contains(t, output, "bytes=24")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "code=")
		assert.NotContains(t, output, "err=")
	})

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantErr  string
	}{
		{
			name:     "logs the code of a page that is not HTML",
			err:      urlcrawl.Errorf(urlcrawl.ENOTHTML, "content type image/png is not HTML"),
			wantCode: "code=not_html",
			wantErr:  `err="content type image/png is not HTML"`,
		},
		{
			name:     "logs the code of an unavailable page",
			err:      urlcrawl.Errorf(urlcrawl.EUNAVAILABLE, "status 404"),
			wantCode: "code=unavailable",
			wantErr:  `err="status 404"`,
		},
		{
			name:     "logs uncoded errors as internal",
			err:      errors.New("connection reset"),
			wantCode: "code=internal",
			wantErr:  `err="connection reset"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			inner := &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", tt.err
				},
			}

			fetcher := crawlslog.NewLoggingFetcher(inner, logger)
			_, err := fetcher.Fetch(context.Background(), "http://a.com/logo.png")

			require.ErrorIs(t, err, tt.err)
			output := buf.String()
			assert.Contains(t, output, "url=http://a.com/logo.png")
			assert.Contains(t, output, "bytes=0")
			assert.Contains(t, output, tt.wantCode)
			assert.Contains(t, output, tt.wantErr)
		})
	}

	t.Run("is silent above info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", urlcrawl.Errorf(urlcrawl.ENOTHTML, "not HTML")
			},
		}

		_, err := crawlslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "http://a.com/")

		assert.Equal(t, urlcrawl.ENOTHTML, urlcrawl.ErrorCode(err))
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("returns the inner fetcher's error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closed := errors.New("already closed")
		inner := &mock.Fetcher{
			CloseFn: func() error { return closed },
		}

		err := crawlslog.NewLoggingFetcher(inner, logger).Close()

		require.ErrorIs(t, err, closed)
		assert.Empty(t, buf.String())
	})
}
