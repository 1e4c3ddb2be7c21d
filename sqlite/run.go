package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/urlcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ urlcrawl.RunService = (*RunService)(nil)

// urlHash returns the lookup key stored alongside each URL.
func urlHash(url string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(url))
}

// RunService implements urlcrawl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores the run and its URLs in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *urlcrawl.Run, urls []string) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, target, discovered_count, reason, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.Target, run.DiscoveredCount, string(run.Reason),
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO run_urls (run_id, url, url_hash) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range urls {
		if _, err := stmt.ExecContext(ctx, run.ID, u, urlHash(u)); err != nil {
			return fmt.Errorf("failed to insert url %q: %w", u, err)
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*urlcrawl.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, target, discovered_count, reason, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, urlcrawl.Errorf(urlcrawl.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter urlcrawl.RunFilter) ([]*urlcrawl.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, target, discovered_count, reason, started_at, finished_at FROM runs WHERE 1=1")

	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")

	if filter.Offset > 0 && filter.Limit <= 0 {
		// SQLite requires a LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*urlcrawl.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindRunURLs returns the URLs recorded for a run in sorted order.
func (s *RunService) FindRunURLs(ctx context.Context, id string) ([]string, error) {
	if _, err := s.FindRunByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT url FROM run_urls WHERE run_id = ? ORDER BY url", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

// HasURL reports whether any recorded run discovered the URL.
func (s *RunService) HasURL(ctx context.Context, url string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM run_urls WHERE url_hash = ? AND url = ? LIMIT 1
	`, urlHash(url), url).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*urlcrawl.Run, error) {
	var run urlcrawl.Run
	var reason, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.SeedURL, &run.Target, &run.DiscoveredCount, &reason,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Reason = urlcrawl.TerminationReason(reason)

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
