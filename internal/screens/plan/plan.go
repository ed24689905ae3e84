// Package plan is the study plan generator screen.
package plan

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

const (
	initialSubjects = 2
	maxSubjects     = 6
	fieldsPerRow    = 3
)

type planDoneMsg struct {
	rec session.PlanRecord
	err error
}

// PlanScreen collects subjects and daily hours and shows the latest plan.
type PlanScreen struct {
	env      screen.Env
	form     components.Form
	subjects int
	pane     components.Pane
	errMsg   string
	width    int
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates the plan screen.
func New(env screen.Env) *PlanScreen {
	s := &PlanScreen{env: env, pane: components.NewPane()}
	s.form = components.NewForm(s.fields(initialSubjects)...)
	s.subjects = initialSubjects
	return s
}

func (s *PlanScreen) fields(subjects int) []components.TextInput {
	var fields []components.TextInput
	for i := range subjects {
		fields = append(fields, subjectRow(i+1)...)
	}
	return append(fields, components.NewTextInput("Daily study hours (1-12)", "4", true, 2))
}

func subjectRow(n int) []components.TextInput {
	return []components.TextInput{
		components.NewTextInput(fmt.Sprintf("Subject %d", n), "e.g. Mathematics", false, 64),
		components.NewTextInput("Difficulty", "Easy / Medium / Hard", false, 10),
		components.NewTextInput("Exam date", requests.ExamDateLayout, false, 10),
	}
}

func (s *PlanScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *PlanScreen) Title() string {
	return "Study Plan"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Ctrl+A", Description: "Add subject"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Form returns the typed form.
func (s *PlanScreen) Form() requests.PlanForm {
	var f requests.PlanForm
	for i := range s.subjects {
		base := i * fieldsPerRow
		f.Subjects = append(f.Subjects, requests.SubjectInput{
			Name:       s.form.Value(base),
			Difficulty: s.form.Value(base + 1),
			ExamDate:   s.form.Value(base + 2),
		})
	}
	f.DailyHours = s.form.Value(s.subjects * fieldsPerRow)
	return f
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.submit()

	case planDoneMsg:
		s.pane.Stop()
		if msg.err != nil {
			s.errMsg = screen.ErrorText(msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+a":
			return s, s.addSubject()
		}
	}

	return s, screen.Route(msg, &s.form, &s.pane)
}

func (s *PlanScreen) addSubject() tea.Cmd {
	if s.subjects >= maxSubjects {
		return nil
	}
	hours := s.form.Fields[len(s.form.Fields)-1]
	fields := append(s.form.Fields[:len(s.form.Fields)-1:len(s.form.Fields)-1], subjectRow(s.subjects+1)...)
	s.form.Fields = append(fields, hours)
	s.subjects++
	return s.form.FocusField((s.subjects - 1) * fieldsPerRow)
}

func (s *PlanScreen) submit() tea.Cmd {
	if s.pane.Busy() {
		return nil
	}
	s.errMsg = ""
	form := s.Form()
	ctrl, ctx := s.env.Ctrl, s.env.Ctx
	return tea.Batch(
		s.pane.Start("Generating your study plan..."),
		func() tea.Msg {
			rec, err := ctrl.GeneratePlan(ctx, form)
			return planDoneMsg{rec: rec, err: err}
		},
	)
}

func (s *PlanScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.form.SetWidth(cw/fieldsPerRow - 4)

	formView := s.formView(cw)
	if s.errMsg != "" {
		formView += "\n" + theme.Incorrect.Render(s.errMsg)
	}
	top := components.Card("Plan your week", formView, cw)

	paneHeight := height - lipgloss.Height(top) - 1
	s.pane.SetSize(cw, paneHeight)
	s.pane.SetContent(s.result(cw))

	return top + "\n" + s.pane.View()
}

// formView lays each subject row out horizontally.
func (s *PlanScreen) formView(cw int) string {
	colWidth := cw / fieldsPerRow
	var rows []string
	for i := range s.subjects {
		var cols []string
		for j := range fieldsPerRow {
			cols = append(cols, lipgloss.NewStyle().Width(colWidth).Render(s.form.Fields[i*fieldsPerRow+j].View()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	rows = append(rows, s.form.Fields[len(s.form.Fields)-1].View())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *PlanScreen) result(cw int) string {
	plans := s.env.Ctrl.Session().Current().StudyPlans
	if len(plans) == 0 {
		return theme.Hint.Render("No study plan yet. Fill in your subjects and press Ctrl+S.")
	}
	latest := plans[len(plans)-1]
	out := render.Plan(latest.View, cw)
	if n := len(plans); n > 1 {
		out += "\n\n" + theme.Hint.Render(fmt.Sprintf("%d plans generated this session", n))
	}
	return out
}
