// Package status shows the backend's agents and recent events and lets
// the user trigger the autonomous demo.
package status

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

type demoDoneMsg struct{ err error }

type polledMsg struct{}

// StatusScreen renders the last known system status.
type StatusScreen struct {
	env       screen.Env
	pane      components.Pane
	failed    bool
	triggered bool
}

var _ screen.Screen = (*StatusScreen)(nil)
var _ screen.KeyHintProvider = (*StatusScreen)(nil)

// New creates the status screen.
func New(env screen.Env) *StatusScreen {
	return &StatusScreen{env: env, pane: components.NewPane()}
}

// Init polls once so the screen is never a full interval stale.
func (s *StatusScreen) Init() tea.Cmd {
	return s.refresh()
}

func (s *StatusScreen) Title() string {
	return "System Status"
}

func (s *StatusScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "D", Description: "Trigger demo"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// refresh polls in the background. The result arrives through the
// controller's status hook as a screen.StatusMsg.
func (s *StatusScreen) refresh() tea.Cmd {
	ctrl, ctx := s.env.Ctrl, s.env.Ctx
	return func() tea.Msg {
		_, _ = ctrl.PollStatus(ctx)
		return polledMsg{}
	}
}

func (s *StatusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StatusMsg:
		s.failed = msg.Update.Err != nil
		return s, nil

	case polledMsg:
		return s, nil

	case demoDoneMsg:
		s.pane.Stop()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return s, s.refresh()
		case "d":
			if s.pane.Busy() {
				return s, nil
			}
			s.triggered = true
			ctrl, ctx := s.env.Ctrl, s.env.Ctx
			return s, tea.Batch(s.pane.Start("Triggering autonomous agents..."), func() tea.Msg {
				return demoDoneMsg{err: ctrl.TriggerDemo(ctx)}
			})
		}
	}

	var cmd tea.Cmd
	s.pane, cmd = s.pane.Update(msg)
	return s, cmd
}

func (s *StatusScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	endpoint := theme.Hint.Render(fmt.Sprintf("Backend: %s", s.env.Ctrl.Endpoint()))
	if s.failed {
		endpoint += "  " + theme.Incorrect.Render("unreachable")
	}
	top := components.Card("", endpoint, cw)

	s.pane.SetSize(cw, height-lipgloss.Height(top)-1)
	s.pane.SetContent(s.body())
	return top + "\n" + s.pane.View()
}

func (s *StatusScreen) body() string {
	st := s.env.Ctrl.Session().Current().LastSystemStatus
	errText := ""
	if s.failed {
		errText = controller.StatusErrorText
	}
	out := render.Status(st, errText)
	if st != nil && s.failed {
		out = theme.Incorrect.Render(controller.StatusErrorText) + "\n\n" + out
	}
	if !s.triggered {
		out += "\n\n" + theme.Hint.Render("Press D to have the agents react to a simulated study day.")
	}
	return out
}
