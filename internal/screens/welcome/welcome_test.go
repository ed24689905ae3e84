package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "next" }
func (s *stubScreen) Title() string                          { return "Next" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(80, 24), "study companion")

	sendTicks(w, 5)
	assert.Equal(t, 500*time.Millisecond, w.elapsed)

	sendTicks(w, 7)
	assert.Equal(t, phase2End, w.elapsed)
	assert.Contains(t, w.View(80, 24), "study companion")
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, replace.Screen)
	assert.Equal(t, 1, *calls)
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 45)
	assert.Zero(t, *calls)
	assert.Equal(t, totalDur, w.elapsed)
}

func TestNextCalledOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)

	// Ticks stop once the splash has handed over.
	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)
}

func TestBanner(t *testing.T) {
	assert.Equal(t, bannerCompact, Banner(true))
	assert.Contains(t, RenderBanner(20), "S T U D Y")
}
