package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogging_RecordsSuccessAndFailure(t *testing.T) {
	s := openStore(t)
	mock := NewMockGateway(
		MockResponse{Body: json.RawMessage(`{"success":true,"answer":"42"}`)},
		MockResponse{Status: http.StatusInternalServerError},
	)
	c := NewClient(WithLogging(mock, s.EventRepo(), nil))
	ctx := context.Background()

	_, err := c.AskDoubt(ctx, requests.AskDoubt{Question: "why?"})
	require.NoError(t, err)
	_, err = c.SystemStatus(ctx)
	require.Error(t, err)

	events, err := s.EventRepo().QueryRequests(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, succeeded := events[0], events[1]
	assert.Equal(t, "system_status", failed.Operation)
	assert.False(t, failed.Success)
	assert.Equal(t, http.StatusInternalServerError, failed.Status)
	assert.NotEmpty(t, failed.ErrorMessage)

	assert.Equal(t, "ask_doubt", succeeded.Operation)
	assert.True(t, succeeded.Success)
	assert.Equal(t, http.MethodPost, succeeded.Method)
	assert.Equal(t, "/ask-doubt", succeeded.Path)
	assert.JSONEq(t, `{"question":"why?"}`, succeeded.RequestBody)
	assert.JSONEq(t, `{"success":true,"answer":"42"}`, succeeded.ResponseBody)
}

func TestWrap_LogsEveryAttempt(t *testing.T) {
	s := openStore(t)
	mock := NewMockGateway(
		MockResponse{Status: http.StatusServiceUnavailable},
		MockResponse{Body: json.RawMessage(`{}`)},
	)
	g := Wrap(mock, retryConfig(), s.EventRepo(), nil)

	_, err := NewClient(g).SystemStatus(context.Background())
	require.NoError(t, err)

	stats, err := s.EventRepo().UsageByOperation(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Calls)
	assert.Equal(t, 1, stats[0].Failures)
}

func TestOperationLabels(t *testing.T) {
	assert.Equal(t, "Progress analysis", OpAnalyzeProgress.Label())
	assert.Equal(t, Operation("unknown"), OperationFrom(context.Background()))
	assert.Equal(t, "custom", Operation("custom").Label())
}
