package activity

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func TestActivity_LoadsAndExpands(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AppendRequest(ctx, store.RequestEventData{
		Operation: "ask", Method: "POST", Path: "/api/ask", Status: 200,
		LatencyMs: 12, Success: true,
		RequestBody: `{"question":"what is osmosis?"}`, ResponseBody: `{"answer":"diffusion of water"}`,
	}))
	require.NoError(t, repo.AppendRequest(ctx, store.RequestEventData{
		Operation: "system-status", Method: "GET", Path: "/api/system/status",
		Success: false, ErrorMessage: "connection refused",
	}))

	s := New(screen.Env{Ctx: ctx, Events: repo})
	msg := s.Init()()
	s.Update(msg)

	require.Len(t, s.records, 2)
	view := s.View(120, 40)
	assert.Contains(t, view, "/api/ask")
	assert.Contains(t, view, "/api/system/status")

	// Newest first: the failed status call is selected.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 40), "connection refused")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 40), "diffusion of water")
}

func TestActivity_NoStore(t *testing.T) {
	s := New(screen.Env{})
	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 24), "No backend calls recorded yet.")
}
