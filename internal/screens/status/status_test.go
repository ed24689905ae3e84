package status

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screen/screentest"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestStatus_InitPolls(t *testing.T) {
	env := screentest.Env(t, nil)
	s := New(env)
	screentest.Feed(s, s.Init())

	assert.NotNil(t, env.Ctrl.Session().Current().LastSystemStatus)
	assert.Contains(t, s.body(), "Press D")
}

func TestStatus_TriggerDemo(t *testing.T) {
	env := screentest.Env(t, nil)
	s := New(env)

	_, cmd := s.Update(key('d'))
	assert.True(t, s.pane.Busy())
	_, again := s.Update(key('d'))
	assert.Nil(t, again)

	screentest.Feed(s, cmd)
	assert.False(t, s.pane.Busy())
	assert.True(t, s.triggered)

	require.Eventually(t, func() bool {
		return env.Ctrl.Session().Current().LastSystemStatus != nil
	}, time.Second, 5*time.Millisecond)
	assert.NotContains(t, s.body(), "Press D")
}

func TestStatus_Unreachable(t *testing.T) {
	s := New(screentest.Env(t, screentest.Failing()))
	s.Update(screen.StatusMsg{Update: controller.StatusUpdate{Err: errors.New("connection refused")}})

	view := s.View(120, 40)
	assert.Contains(t, view, "unreachable")
	assert.Contains(t, view, controller.StatusErrorText)
}
