package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in the file-based test.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "request_events" {
		t.Errorf("table name = %q, want 'request_events'", name)
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seq, err := newSequences(s.DB())
	require.NoError(t, err)

	for want := int64(1); want <= 5; want++ {
		got, err := seq.next(ctx, "request_events")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := seq.next(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestPruneRequestsKeepsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 5 {
		require.NoError(t, repo.AppendRequest(ctx, RequestEventData{Operation: "system_status", Method: "GET", Path: "/system-status", Success: true}))
	}

	removed, err := repo.PruneRequests(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	removed, err = repo.PruneRequests(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, removed)

	require.NoError(t, repo.AppendRequest(ctx, RequestEventData{Operation: "demo", Method: "GET", Path: "/demo", Success: true}))
	left, err := repo.QueryRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, left, 3)
	assert.Equal(t, []int64{6, 5, 4}, []int64{left[0].Sequence, left[1].Sequence, left[2].Sequence})
}

func TestAppendAndQueryRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []RequestEventData{
		{Operation: "study_plan", Method: "POST", Path: "/study-plan", Status: 200, LatencyMs: 120, Success: true,
			RequestBody: `{"daily_hours":2}`, ResponseBody: `{"success":true}`},
		{Operation: "ask_doubt", Method: "POST", Path: "/ask-doubt", Status: 500, LatencyMs: 30,
			ErrorMessage: "HTTP 500"},
		{Operation: "study_plan", Method: "POST", Path: "/study-plan", Status: 200, LatencyMs: 80, Success: true},
	}
	for _, c := range calls {
		require.NoError(t, repo.AppendRequest(ctx, c))
	}

	all, err := repo.QueryRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].Sequence, "newest first")
	assert.Equal(t, int64(1), all[2].Sequence)
	assert.Equal(t, `{"daily_hours":2}`, all[2].RequestBody)
	assert.True(t, all[2].Success)
	assert.False(t, all[1].Success)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	plans, err := repo.QueryRequests(ctx, QueryOpts{Operation: "study_plan", Limit: 1})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, int64(80), plans[0].LatencyMs)

	older, err := repo.QueryRequests(ctx, QueryOpts{Before: 3, After: 1})
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "ask_doubt", older[0].Operation)
}

func TestGetRequest(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendRequest(ctx, RequestEventData{Operation: "system_status", Method: "GET", Path: "/system-status", Status: 200, Success: true}))

	all, err := repo.QueryRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := repo.GetRequest(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/system-status", got.Path)

	missing, err := repo.GetRequest(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUsageByOperation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []RequestEventData{
		{Operation: "ask_doubt", Method: "POST", Path: "/ask-doubt", LatencyMs: 100, Success: true},
		{Operation: "ask_doubt", Method: "POST", Path: "/ask-doubt", LatencyMs: 300},
		{Operation: "analyze_progress", Method: "POST", Path: "/analyze-progress", LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendRequest(ctx, d))
	}

	stats, err := repo.UsageByOperation(ctx)
	require.NoError(t, err)
	assert.Equal(t, []OperationStats{
		{Operation: "analyze_progress", Calls: 1, Failures: 0, AvgLatencyMs: 50},
		{Operation: "ask_doubt", Calls: 2, Failures: 1, AvgLatencyMs: 200},
	}, stats)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STUDYGENIE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "studygenie", "studygenie.db"), p)

	t.Setenv("STUDYGENIE_DB", MemoryDSN)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, MemoryDSN, p)
}
