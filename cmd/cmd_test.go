package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/store"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		in   string
		want requests.SubjectInput
	}{
		{"DBMS", requests.SubjectInput{Name: "DBMS"}},
		{"OS:Hard", requests.SubjectInput{Name: "OS", Difficulty: "Hard"}},
		{"TOC:Medium:2026-12-01", requests.SubjectInput{Name: "TOC", Difficulty: "Medium", ExamDate: "2026-12-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSubject(tt.in))
		})
	}
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, "-", successRate(0, 0))
	assert.Equal(t, "75%", successRate(4, 1))
}

// resetFlags restores every flag to its default so that runs of the
// shared command tree do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--base-url", "http://study.local:9000")
	require.NoError(t, err)
	assert.Contains(t, out, "studygenie")
	assert.Contains(t, out, "backend: http://study.local:9000")

	out, err = run(t, "version", "--demo")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: demo data")
}

func TestEventsListAndStats(t *testing.T) {
	// Keep the shared in-memory database alive while the command runs.
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendRequest(ctx, store.RequestEventData{
		Operation: "study_plan", Method: "POST", Path: "/study-plan", Status: 200, LatencyMs: 40, Success: true,
	}))

	out, err := run(t, "events", "list", "--db", ":memory:")
	require.NoError(t, err)
	assert.Contains(t, out, "study_plan")

	out, err = run(t, "events", "stats", "--db", ":memory:")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Operation")
	assert.Contains(t, out, "100%")
}

func TestEventsPrune(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for range 3 {
		require.NoError(t, st.EventRepo().AppendRequest(ctx, store.RequestEventData{
			Operation: "system_status", Method: "GET", Path: "/system-status", Status: 200, Success: true,
		}))
	}

	out, err := run(t, "events", "prune", "--keep", "1", "--db", ":memory:")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	left, err := st.EventRepo().QueryRequests(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, left, 1)

	_, err = run(t, "events", "prune", "--keep=-1", "--db", ":memory:")
	assert.Error(t, err)
}

func TestPlanInDemoMode(t *testing.T) {
	out, err := run(t, "plan", "--demo", "--db", ":memory:", "--subject", "Operating Systems:Hard", "--hours", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Your AI-Generated Study Plan")
}

func TestPlanValidation(t *testing.T) {
	_, err := run(t, "plan", "--demo", "--db", ":memory:", "--hours", "4")
	assert.Error(t, err)
}
