package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/transport"
)

func newClient(t *testing.T) (*transport.Client, *Gateway) {
	t.Helper()
	g, err := NewGateway()
	require.NoError(t, err)
	return transport.NewClient(g), g
}

func TestDemoPlanIsStructuredWithCalendar(t *testing.T) {
	c, _ := newClient(t)
	raw, err := c.StudyPlan(context.Background(), requests.StudyPlan{
		Subjects:   []requests.Subject{{Name: "TOC", Difficulty: requests.Hard}},
		DailyHours: 4,
	})
	require.NoError(t, err)

	res := normalize.NormalizePlan(raw)
	plan, ok := res.View.(normalize.StructuredPlan)
	require.True(t, ok, "got %T", res.View)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, "Monday", plan.Days[0].Day)
	assert.Len(t, plan.Days[0].Tasks, 5)
	assert.Equal(t, "1h 30m", plan.Days[0].Tasks[0].Duration)
	assert.Len(t, plan.Reminders, 2)

	require.NotNil(t, res.Calendar)
	assert.Equal(t, 5, res.Calendar.EventsCreated)
	assert.True(t, res.Calendar.Simulated)
}

func TestDemoChat(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	raw, err := c.AskDoubt(ctx, requests.AskDoubt{Question: "what is a finite automaton?"})
	require.NoError(t, err)
	ans := normalize.NormalizeChat(raw)
	assert.Equal(t, normalize.SourceAnswer, ans.Source)
	assert.Contains(t, ans.Text, "finite set of states")

	raw, err = c.AskDoubt(ctx, requests.AskDoubt{Question: "something else"})
	require.NoError(t, err)
	assert.NotEqual(t, normalize.ChatFallback, normalize.NormalizeChat(raw).Text)
}

func TestDemoAnalysisFollowsInput(t *testing.T) {
	c, _ := newClient(t)
	in := requests.Progress{CompletedTasks: 7, TotalTasks: 10, StudyHours: 5, FocusLevel: 8, Tasks: []any{}}

	raw, err := c.AnalyzeProgress(context.Background(), in)
	require.NoError(t, err)

	a := normalize.NormalizeAnalysis(raw, normalize.AnalysisInput{CompletedTasks: 7, TotalTasks: 10})
	assert.Equal(t, normalize.FromCurrentAnalysis, a.Source)
	assert.InDelta(t, 0.7, a.ProductivityScore, 1e-9)
	assert.Equal(t, "good", a.Status)
	assert.Len(t, a.Recommendations, 4)
	assert.NotEmpty(t, a.AgentInsights)
}

func TestDemoQuestionsRespectCount(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	raw, err := c.GenerateMCQs(ctx, requests.Questions{Content: "automata", Type: "mcq", NumQuestions: 2})
	require.NoError(t, err)
	list := normalize.NormalizeQuestions(raw, normalize.KindMCQs)
	require.False(t, list.Failed)
	assert.Len(t, list.Questions, 2)
	assert.Equal(t, 2, list.TotalGenerated)
	require.Len(t, list.Questions[0].Options, 4)
	assert.True(t, list.Questions[0].Options[1].Correct)

	raw, err = c.GenerateQuestions(ctx, requests.Questions{Content: "automata", Type: "essay", NumQuestions: 50})
	require.NoError(t, err)
	list = normalize.NormalizeQuestions(raw, normalize.KindQuestions)
	assert.Len(t, list.Questions, 3)
	assert.Equal(t, "essay", list.Type)
}

func TestDemoNotes(t *testing.T) {
	c, _ := newClient(t)
	raw, err := c.UploadNotes(context.Background(), requests.Notes{
		Title: "TOC", Subject: "Computer Science", Content: "Finite Automata and Regular Languages",
		UploadMethod: requests.UploadText, FileType: "text/plain",
	})
	require.NoError(t, err)

	res := normalize.NormalizeNotes(raw)
	assert.True(t, res.OK)
	assert.Equal(t, "Computer Science", res.Subject)
	assert.Equal(t, 37, res.ContentLength)
	assert.Contains(t, res.KeyTopics, "Finite")
}

func TestDemoTriggerShowsInStatus(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	_, err := c.TriggerDemo(ctx)
	require.NoError(t, err)

	raw, err := c.SystemStatus(ctx)
	require.NoError(t, err)
	st := normalize.NormalizeStatus(raw)
	assert.Equal(t, 4, st.AgentCount())
	require.NotEmpty(t, st.Events)
	assert.Equal(t, "deadline_approaching - demo", st.Events[len(st.Events)-1].String())
}

func TestDemoEventsAreBounded(t *testing.T) {
	_, g := newClient(t)
	for i := 0; i < 10; i++ {
		g.record("tick", "test")
	}
	assert.Len(t, g.events, maxEvents)
}

func TestDemoUnknownPath(t *testing.T) {
	g, err := NewGateway()
	require.NoError(t, err)
	_, err = g.Do(context.Background(), transport.Request{Method: http.MethodGet, Path: "/nope"})
	te, ok := transport.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, te.Status)
}

func TestDemoLatencyHonorsContext(t *testing.T) {
	g, err := NewGateway()
	require.NoError(t, err)
	g.Latency = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Do(ctx, transport.Request{Path: "/"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFixturesAreValidJSON(t *testing.T) {
	for _, name := range []string{"study_plan.json", "progress_analysis.json", "chat.json", "questions.json", "mcqs.json", "agents.json"} {
		raw, err := load(name)
		require.NoError(t, err, name)
		assert.True(t, json.Valid(raw), name)
	}
}
