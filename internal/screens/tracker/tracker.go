// Package tracker is the progress tracking screen: the day's numbers go
// in, the AI analysis and the weekly charts come out.
package tracker

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

type analysisDoneMsg struct {
	rec session.ProgressRecord
	err error
}

// TrackerScreen submits progress and shows the analysis with charts.
type TrackerScreen struct {
	env    screen.Env
	form   components.Form
	pane   components.Pane
	errMsg string
}

var _ screen.Screen = (*TrackerScreen)(nil)
var _ screen.KeyHintProvider = (*TrackerScreen)(nil)
var _ screen.Leaver = (*TrackerScreen)(nil)

// New creates the progress screen.
func New(env screen.Env) *TrackerScreen {
	return &TrackerScreen{
		env: env,
		form: components.NewForm(
			components.NewTextInput("Completed tasks", "0", true, 4),
			components.NewTextInput("Total tasks", "10", true, 4),
			components.NewTextInput("Study hours", "0", true, 5),
			components.NewTextInput("Focus level (1-10)", "5", true, 2),
		),
		pane: components.NewPane(),
	}
}

func (s *TrackerScreen) Init() tea.Cmd {
	s.env.Charts.Refresh(s.env.Ctrl.Progress())
	return s.form.Init()
}

// Leave releases the charts; Init rebuilds them from the window.
func (s *TrackerScreen) Leave() {
	s.env.Charts.DisposeAll()
}

func (s *TrackerScreen) Title() string {
	return "Progress Tracker"
}

func (s *TrackerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Analyze"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrackerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.submit()

	case analysisDoneMsg:
		if errors.Is(msg.err, controller.ErrAnalysisInProgress) {
			s.errMsg = screen.ErrorText(msg.err)
			return s, nil
		}
		s.pane.Stop()
		if msg.err != nil {
			s.errMsg = screen.ErrorText(msg.err)
			return s, nil
		}
		s.env.Charts.Refresh(s.env.Ctrl.Progress())
		return s, nil
	}
	return s, screen.Route(msg, &s.form, &s.pane)
}

func (s *TrackerScreen) submit() tea.Cmd {
	s.errMsg = ""
	form := requests.ProgressForm{
		CompletedTasks: s.form.Value(0),
		TotalTasks:     s.form.Value(1),
		StudyHours:     s.form.Value(2),
		FocusLevel:     s.form.Value(3),
	}
	ctrl, ctx := s.env.Ctrl, s.env.Ctx
	// The controller rejects a second analysis while one is outstanding,
	// so a double submit only produces a warning.
	var start tea.Cmd
	if !s.pane.Busy() {
		start = s.pane.Start("Analyzing your progress...")
	}
	return tea.Batch(start, func() tea.Msg {
		rec, err := ctrl.AnalyzeProgress(ctx, form)
		return analysisDoneMsg{rec: rec, err: err}
	})
}

func (s *TrackerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	colWidth := cw / len(s.form.Fields)
	s.form.SetWidth(colWidth - 4)

	cols := make([]string, len(s.form.Fields))
	for i, f := range s.form.Fields {
		cols[i] = lipgloss.NewStyle().Width(colWidth).Render(f.View())
	}
	formView := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if s.errMsg != "" {
		formView += "\n" + theme.Incorrect.Render(s.errMsg)
	}
	top := components.Card("Today's progress", formView, cw)

	s.pane.SetSize(cw, height-lipgloss.Height(top)-1)
	s.pane.SetContent(s.result(cw))
	return top + "\n" + s.pane.View()
}

func (s *TrackerScreen) result(cw int) string {
	entries := s.env.Ctrl.Session().Current().ProgressEntries
	if len(entries) == 0 {
		return theme.Hint.Render("Enter today's numbers and press Ctrl+S for an AI analysis.")
	}
	latest := entries[len(entries)-1]
	parts := []string{
		render.Analysis(latest.Snapshot, latest.Analysis, s.env.Ctrl.Progress().Achievements(), cw),
	}
	if charts := s.env.Charts.Render(cw); charts != "" {
		parts = append(parts, charts)
	}
	return strings.Join(parts, "\n\n")
}
