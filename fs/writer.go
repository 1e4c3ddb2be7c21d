// Package fs provides file-based storage for crawl results.
package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/urlcrawl"
)

// DefaultPath is the file crawl results are written to when none is given.
const DefaultPath = "urls.txt"

// Ensure URLWriter implements urlcrawl.URLWriter at compile time.
var _ urlcrawl.URLWriter = (*URLWriter)(nil)

// URLWriter writes crawl results to a text file, one URL per line.
// The file is written next to its final location and renamed into place,
// so readers never observe a partial result.
type URLWriter struct {
	path string
}

// NewURLWriter creates a URLWriter targeting path.
func NewURLWriter(path string) *URLWriter {
	if path == "" {
		path = DefaultPath
	}
	return &URLWriter{path: path}
}

// Path returns the destination file path.
func (w *URLWriter) Path() string {
	return w.path
}

func (w *URLWriter) tempPath() string {
	return w.path + ".tmp"
}

// WriteURLs replaces the destination file with urls in sorted order.
func (w *URLWriter) WriteURLs(ctx context.Context, urls []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := slices.Clone(urls)
	slices.Sort(sorted)

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(w.tempPath())
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.tempPath(), err)
	}

	bw := bufio.NewWriter(f)
	for _, u := range sorted {
		if _, err := bw.WriteString(u + "\n"); err != nil {
			_ = f.Close()
			_ = os.Remove(w.tempPath())
			return fmt.Errorf("writing %s: %w", w.tempPath(), err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(w.tempPath())
		return fmt.Errorf("writing %s: %w", w.tempPath(), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(w.tempPath())
		return fmt.Errorf("closing %s: %w", w.tempPath(), err)
	}

	if err := os.Rename(w.tempPath(), w.path); err != nil {
		_ = os.Remove(w.tempPath())
		return fmt.Errorf("moving results into place: %w", err)
	}
	return nil
}
