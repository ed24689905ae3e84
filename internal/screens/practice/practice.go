// Package practice generates practice questions or MCQs from notes and
// hands MCQs to the quiz screen.
package practice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screens/quiz"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

const (
	fieldText = iota
	fieldFile
	fieldCount
	fieldType
)

type generatedMsg struct {
	list normalize.QuestionList
	err  error
}

// PracticeScreen is the question or MCQ generator.
type PracticeScreen struct {
	env    screen.Env
	kind   normalize.QuestionKind
	form   components.Form
	pane   components.Pane
	list   *normalize.QuestionList
	reveal bool
	errMsg string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates the generator for kind.
func New(env screen.Env, kind normalize.QuestionKind) *PracticeScreen {
	fields := []components.TextInput{
		components.NewTextInput("Paste content", "Notes or a chapter to practice on...", false, 20000),
		components.NewTextInput("Or a file (.txt, .md, .pdf)", "path/to/chapter.pdf", false, 512),
		components.NewTextInput("How many (1-20)", "5", true, 2),
	}
	if kind == normalize.KindQuestions {
		fields = append(fields, components.NewTextInput("Type", requests.DefaultQuestionType, false, 20))
	}
	return &PracticeScreen{
		env:  env,
		kind: kind,
		form: components.NewForm(fields...),
		pane: components.NewPane(),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *PracticeScreen) Title() string {
	if s.kind == normalize.KindMCQs {
		return "MCQ Practice"
	}
	return "Practice Questions"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
	}
	if s.list != nil && !s.list.Failed {
		if s.kind == normalize.KindMCQs {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Take quiz"})
		}
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Show answers"})
	}
	return append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.submit()

	case generatedMsg:
		s.pane.Stop()
		if msg.err != nil {
			s.errMsg = screen.ErrorText(msg.err)
			return s, nil
		}
		s.list = &msg.list
		s.reveal = false
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+r":
			s.reveal = !s.reveal
			return s, nil
		case "ctrl+p":
			if s.kind != normalize.KindMCQs || s.list == nil || s.list.Failed {
				return s, nil
			}
			q := quiz.New(s.list.Questions)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
		}
	}
	return s, screen.Route(msg, &s.form, &s.pane)
}

// Form returns the typed form.
func (s *PracticeScreen) Form() requests.QuestionsForm {
	f := requests.QuestionsForm{
		ContentForm: requests.ContentForm{
			Text:     s.form.Value(fieldText),
			FilePath: s.form.Value(fieldFile),
		},
		Count: s.form.Value(fieldCount),
	}
	if s.kind == normalize.KindQuestions {
		f.Type = s.form.Value(fieldType)
	}
	return f
}

func (s *PracticeScreen) submit() tea.Cmd {
	if s.pane.Busy() {
		return nil
	}
	s.errMsg = ""
	form := s.Form()
	ctrl, ctx, kind := s.env.Ctrl, s.env.Ctx, s.kind
	return tea.Batch(
		s.pane.Start("Generating "+string(kind)+"..."),
		func() tea.Msg {
			var (
				list normalize.QuestionList
				err  error
			)
			if kind == normalize.KindMCQs {
				list, err = ctrl.GenerateMCQs(ctx, form)
			} else {
				list, err = ctrl.GenerateQuestions(ctx, form)
			}
			return generatedMsg{list: list, err: err}
		},
	)
}

func (s *PracticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.form.SetWidth(cw - 6)

	formView := s.form.View()
	if s.errMsg != "" {
		formView += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}
	top := components.Card(s.Title(), formView, cw)

	s.pane.SetSize(cw, height-lipgloss.Height(top)-1)
	if s.list == nil {
		s.pane.SetContent(theme.Hint.Render("Generated questions appear here."))
	} else {
		s.pane.SetContent(render.Questions(*s.list, s.reveal, cw))
	}
	return top + "\n" + s.pane.View()
}
