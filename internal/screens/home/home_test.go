package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screen/screentest"
	"github.com/abhisek/studygenie/internal/screens/plan"
)

func press(h *HomeScreen, key string, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = h.Update(tea.KeyPressMsg{Code: rune(key[0]), Text: key})
	}
	return cmd
}

func TestHome_FirstItemOpensPlan(t *testing.T) {
	h := New(screentest.Env(t, nil))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*plan.PlanScreen)
	assert.True(t, ok)
}

func TestHome_ActivityDisabledWithoutEventLog(t *testing.T) {
	h := New(screentest.Env(t, nil))
	press(h, "j", 7)
	assert.Equal(t, "LOG OUT", h.menuLabels[h.menu.Selected])
}

func TestHome_LogOut(t *testing.T) {
	env := screentest.Env(t, nil)
	h := New(env)
	press(h, "j", len(h.menuLabels))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, screen.SignedOutMsg{}, cmd())
	assert.False(t, env.Ctrl.Session().Active())
}

func TestHome_ViewShowsStats(t *testing.T) {
	h := New(screentest.Env(t, nil))
	view := h.View(120, 80)
	assert.Contains(t, view, "STUDY PLAN")
	assert.Contains(t, view, "LOG OUT")
}
