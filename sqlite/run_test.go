package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/urlcrawl"
	"github.com/fwojciec/urlcrawl/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newRun(seed string, started time.Time) *urlcrawl.Run {
	return &urlcrawl.Run{
		SeedURL:         seed,
		Target:          10,
		DiscoveredCount: 2,
		Reason:          urlcrawl.ReasonStalled,
		StartedAt:       started,
		FinishedAt:      started.Add(time.Minute),
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := &urlcrawl.Run{
			SeedURL: "https://example.com/",
			Target:  1,
			Reason:  urlcrawl.ReasonDone,
		}

		err := svc.CreateRun(ctx, run, []string{"https://example.com/"})
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.StartedAt.IsZero(), "StartedAt should default to now")
		assert.False(t, run.FinishedAt.IsZero(), "FinishedAt should default to now")
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &urlcrawl.Run{}, nil)
		require.Error(t, err)
		assert.Equal(t, urlcrawl.EINVALID, urlcrawl.ErrorCode(err))
	})

	t.Run("stores duplicate URLs once", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		run := newRun("https://example.com/", time.Now())

		err := svc.CreateRun(ctx, run, []string{"https://example.com/a", "https://example.com/a"})
		require.NoError(t, err)

		urls, err := svc.FindRunURLs(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, urls)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		run := newRun("https://example.com/", started)
		require.NoError(t, svc.CreateRun(ctx, run, nil))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, "https://example.com/", found.SeedURL)
		assert.Equal(t, 10, found.Target)
		assert.Equal(t, 2, found.DiscoveredCount)
		assert.Equal(t, urlcrawl.ReasonStalled, found.Reason)
		assert.True(t, started.Equal(found.StartedAt))
		assert.True(t, started.Add(time.Minute).Equal(found.FinishedAt))
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRunByID(context.Background(), "nonexistent")
		require.Error(t, err)
		assert.Equal(t, urlcrawl.ENOTFOUND, urlcrawl.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		older := newRun("https://a.com/", base)
		newer := newRun("https://b.com/", base.Add(time.Hour))
		require.NoError(t, svc.CreateRun(ctx, older, nil))
		require.NoError(t, svc.CreateRun(ctx, newer, nil))

		runs, err := svc.FindRuns(ctx, urlcrawl.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, older.ID, runs[1].ID)
	})

	t.Run("filters by seed URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		now := time.Now()

		require.NoError(t, svc.CreateRun(ctx, newRun("https://a.com/", now), nil))
		require.NoError(t, svc.CreateRun(ctx, newRun("https://b.com/", now), nil))

		seed := "https://a.com/"
		runs, err := svc.FindRuns(ctx, urlcrawl.RunFilter{SeedURL: &seed})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://a.com/", runs[0].SeedURL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		var ids []string
		for i := range 3 {
			run := newRun("https://a.com/", base.Add(time.Duration(i)*time.Hour))
			require.NoError(t, svc.CreateRun(ctx, run, nil))
			ids = append(ids, run.ID)
		}

		runs, err := svc.FindRuns(ctx, urlcrawl.RunFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, ids[1], runs[0].ID)

		runs, err = svc.FindRuns(ctx, urlcrawl.RunFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, ids[0], runs[0].ID)
	})
}

func TestRunService_FindRunURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns URLs sorted", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		run := newRun("https://example.com/", time.Now())
		require.NoError(t, svc.CreateRun(ctx, run, []string{
			"https://example.com/b",
			"https://example.com/",
			"https://example.com/a",
		}))

		urls, err := svc.FindRunURLs(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/",
			"https://example.com/a",
			"https://example.com/b",
		}, urls)
	})

	t.Run("returns empty slice for run without URLs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		run := newRun("https://example.com/", time.Now())
		require.NoError(t, svc.CreateRun(ctx, run, nil))

		urls, err := svc.FindRunURLs(ctx, run.ID)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRunURLs(context.Background(), "nonexistent")
		assert.Equal(t, urlcrawl.ENOTFOUND, urlcrawl.ErrorCode(err))
	})
}

func TestRunService_HasURL(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewRunService(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, svc.CreateRun(ctx, newRun("https://example.com/", time.Now()), []string{
		"https://example.com/",
		"https://example.com/docs",
	}))

	found, err := svc.HasURL(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.HasURL(ctx, "https://example.com/other")
	require.NoError(t, err)
	assert.False(t, found)
}
