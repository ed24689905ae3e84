package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/screen/screentest"
	"github.com/abhisek/studygenie/internal/ui/components"
)

func fill(s *TrackerScreen, values ...string) {
	for i, v := range values {
		s.form.Fields[i].SetValue(v)
	}
}

func TestTracker_AnalysisRefreshesCharts(t *testing.T) {
	env := screentest.Env(t, nil)
	s := New(env)
	s.Init()
	assert.Zero(t, env.Charts.Len())

	fill(s, "7", "10", "5", "8")
	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)

	assert.False(t, s.pane.Busy())
	assert.Empty(t, s.errMsg)
	require.Len(t, env.Ctrl.Session().Current().ProgressEntries, 1)
	_, ok := env.Charts.Get(render.ChartCompletion)
	assert.True(t, ok)
	assert.Contains(t, env.Charts.Render(100), "Task Completion")
}

func TestTracker_ConcurrentAnalysisKeepsSpinner(t *testing.T) {
	s := New(screentest.Env(t, nil))
	s.pane.Start("Analyzing your progress...")

	s.Update(analysisDoneMsg{err: controller.ErrAnalysisInProgress})
	assert.True(t, s.pane.Busy())
	assert.Equal(t, "Analysis already in progress", s.errMsg)
}

func TestTracker_ValidationError(t *testing.T) {
	s := New(screentest.Env(t, nil))
	fill(s, "12", "10", "5", "8")
	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)

	assert.False(t, s.pane.Busy())
	assert.NotEmpty(t, s.errMsg)
}

func TestTracker_LeaveDisposesCharts(t *testing.T) {
	env := screentest.Env(t, nil)
	s := New(env)
	fill(s, "9", "10", "6", "9")
	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)
	require.NotZero(t, env.Charts.Len())

	s.Leave()
	assert.Zero(t, env.Charts.Len())

	s.Init()
	assert.NotZero(t, env.Charts.Len())
}
