// Package notes is the notes upload screen.
package notes

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

const (
	fieldTitle = iota
	fieldSubject
	fieldFile
	fieldText
)

type uploadDoneMsg struct {
	rec session.NotesRecord
	err error
}

// NotesScreen uploads pasted text or a file and shows what the backend
// made of it.
type NotesScreen struct {
	env    screen.Env
	form   components.Form
	pane   components.Pane
	errMsg string
}

var _ screen.Screen = (*NotesScreen)(nil)
var _ screen.KeyHintProvider = (*NotesScreen)(nil)

// New creates the notes screen.
func New(env screen.Env) *NotesScreen {
	return &NotesScreen{
		env: env,
		form: components.NewForm(
			components.NewTextInput("Title", requests.DefaultNotesTitle, false, 120),
			components.NewTextInput("Subject", requests.DefaultSubject, false, 60),
			components.NewTextInput("File (.txt, .md, .pdf)", "path/to/notes.pdf", false, 512),
			components.NewTextInput("Or paste text", "Your notes...", false, 20000),
		),
		pane: components.NewPane(),
	}
}

func (s *NotesScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *NotesScreen) Title() string {
	return "Upload Notes"
}

func (s *NotesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Upload"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.submit()

	case uploadDoneMsg:
		s.pane.Stop()
		if msg.err != nil {
			s.errMsg = screen.ErrorText(msg.err)
			return s, nil
		}
		s.form.Clear()
		return s, nil
	}
	return s, screen.Route(msg, &s.form, &s.pane)
}

func (s *NotesScreen) submit() tea.Cmd {
	if s.pane.Busy() {
		return nil
	}
	s.errMsg = ""
	form := requests.NotesForm{
		ContentForm: requests.ContentForm{
			Text:     s.form.Value(fieldText),
			FilePath: s.form.Value(fieldFile),
		},
		Title:   s.form.Value(fieldTitle),
		Subject: s.form.Value(fieldSubject),
	}
	ctrl, ctx := s.env.Ctrl, s.env.Ctx
	return tea.Batch(
		s.pane.Start("Processing notes..."),
		func() tea.Msg {
			rec, err := ctrl.UploadNotes(ctx, form)
			return uploadDoneMsg{rec: rec, err: err}
		},
	)
}

func (s *NotesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.form.SetWidth(cw - 6)

	formView := s.form.View()
	if s.errMsg != "" {
		formView += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}
	top := components.Card("Add study material", formView, cw)

	s.pane.SetSize(cw, height-lipgloss.Height(top)-1)
	s.pane.SetContent(s.result(cw))
	return top + "\n" + s.pane.View()
}

func (s *NotesScreen) result(cw int) string {
	uploaded := s.env.Ctrl.Session().Current().UploadedNotes
	if len(uploaded) == 0 {
		return theme.Hint.Render("Uploaded notes are analyzed for key topics and can be used in chat and practice.")
	}
	latest := uploaded[len(uploaded)-1]
	parts := []string{render.Notes(latest.Result, cw)}

	if len(uploaded) > 1 {
		lines := []string{theme.Heading.Render("Uploaded this session")}
		for i := len(uploaded) - 1; i >= 0; i-- {
			n := uploaded[i]
			lines = append(lines, fmt.Sprintf("  %s  %s  %s",
				theme.Body.Render(n.Title),
				theme.Hint.Render(n.Subject),
				theme.Hint.Render(humanize.Time(n.CreatedAt)),
			))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
