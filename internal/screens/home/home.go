// Package home is the dashboard shown after sign-in: a summary of the
// session and the menu into every feature.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screens/activity"
	"github.com/abhisek/studygenie/internal/screens/chat"
	"github.com/abhisek/studygenie/internal/screens/notes"
	"github.com/abhisek/studygenie/internal/screens/plan"
	"github.com/abhisek/studygenie/internal/screens/practice"
	"github.com/abhisek/studygenie/internal/screens/status"
	"github.com/abhisek/studygenie/internal/screens/tracker"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// HomeScreen is the main dashboard of the application.
type HomeScreen struct {
	env        screen.Env
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard.
func New(env screen.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "STUDY PLAN", Hint: "Turn your subjects and exam dates into a weekly schedule", Action: push(func() screen.Screen { return plan.New(env) })},
		{Label: "AI TUTOR", Hint: "Ask the tutor agent about anything you are studying", Action: push(func() screen.Screen { return chat.New(env) })},
		{Label: "PROGRESS", Hint: "Log today's work and get an analysis with weekly charts", Action: push(func() screen.Screen { return tracker.New(env) })},
		{Label: "UPLOAD NOTES", Hint: "Send notes or a chapter for topic extraction", Action: push(func() screen.Screen { return notes.New(env) })},
		{Label: "QUESTIONS", Hint: "Generate practice questions from your material", Action: push(func() screen.Screen { return practice.New(env, normalize.KindQuestions) })},
		{Label: "MCQ PRACTICE", Hint: "Generate multiple choice questions and take a quiz", Action: push(func() screen.Screen { return practice.New(env, normalize.KindMCQs) })},
		{Label: "SYSTEM STATUS", Hint: "See what the backend agents are doing", Action: push(func() screen.Screen { return status.New(env) })},
		{Label: "ACTIVITY LOG", Hint: "Browse the backend calls made from this machine", Action: push(func() screen.Screen { return activity.New(env) }), Disabled: env.Events == nil},
		{Label: "LOG OUT", Hint: "End the session and clear its data", Action: func() tea.Cmd {
			env.Ctrl.Logout()
			return func() tea.Msg { return screen.SignedOutMsg{} }
		}},
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(collectStats(h.env), cw, compact))

	disabled := make(map[int]bool)
	for i, it := range h.menu.Items {
		disabled[i] = it.Disabled
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}
	if hint := h.menu.Current().Hint; hint != "" {
		sections = append(sections, theme.Hint.Render(hint))
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
