// Package chat is the AI tutor screen.
package chat

import (
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
)

type answerMsg struct {
	answer normalize.ChatAnswer
	err    error
}

// ChatScreen shows the transcript with a question box underneath.
type ChatScreen struct {
	env  screen.Env
	form components.Form
	pane components.Pane
	// failed and apology show the last unanswered turn. Neither is
	// stored in the session.
	failed  *session.ChatMessage
	apology string
	asking  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the chat screen.
func New(env screen.Env) *ChatScreen {
	return &ChatScreen{
		env:  env,
		form: components.NewForm(components.NewTextInput("", "Ask anything about your subjects...", false, 1000)),
		pane: components.NewPane(),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *ChatScreen) Title() string {
	return "AI Tutor"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.send()

	case answerMsg:
		s.pane.Stop()
		var ve *requests.ValidationError
		switch {
		case msg.err == nil:
			s.failed, s.apology = nil, ""
		case errors.Is(msg.err, session.ErrStaleSession), errors.As(msg.err, &ve):
		default:
			s.failed = &session.ChatMessage{Text: s.asking, Sender: session.SenderUser, CreatedAt: time.Now()}
			s.apology = controller.ChatErrorReply
		}
		return s, nil
	}
	return s, screen.Route(msg, &s.form, &s.pane)
}

func (s *ChatScreen) send() tea.Cmd {
	if s.pane.Busy() {
		return nil
	}
	question := s.form.Value(0)
	if question == "" {
		return nil
	}
	s.form.Clear()
	s.asking = question
	ctrl, ctx := s.env.Ctrl, s.env.Ctx
	return tea.Batch(
		s.pane.Start("Thinking about: "+question),
		func() tea.Msg {
			answer, err := ctrl.Ask(ctx, question)
			return answerMsg{answer: answer, err: err}
		},
	)
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.form.SetWidth(cw - 4)
	input := components.Card("", s.form.View(), cw)

	s.pane.SetSize(cw, height-4)
	history := s.env.Ctrl.Session().Current().ChatHistory
	if s.failed != nil {
		history = append(slices.Clip(history), *s.failed)
	}
	before := s.pane.Content()
	s.pane.SetContent(render.Chat(history, s.apology, cw, time.Now()))
	if s.pane.Content() != before {
		s.pane.GotoBottom()
	}
	return s.pane.View() + "\n" + input
}
