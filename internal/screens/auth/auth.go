// Package auth is the sign-in screen: email login, signup, or a demo
// session. Accounts are local; nothing is sent to the backend.
package auth

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeSignup
)

// AuthScreen collects credentials and starts the session.
type AuthScreen struct {
	env    screen.Env
	mode   mode
	login  components.Form
	signup components.Form
	errMsg string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates the sign-in screen.
func New(env screen.Env) *AuthScreen {
	return &AuthScreen{
		env: env,
		login: components.NewForm(
			components.NewTextInput("Email", "you@example.com", false, 128),
			components.NewPasswordInput("Password"),
		),
		signup: components.NewForm(
			components.NewTextInput("Name", "Your name", false, 64),
			components.NewTextInput("Email", "you@example.com", false, 128),
			components.NewPasswordInput("Password"),
			components.NewPasswordInput("Confirm password"),
		),
	}
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.active().Init()
}

func (s *AuthScreen) Title() string {
	if s.mode == modeSignup {
		return "Sign Up"
	}
	return "Sign In"
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	other := "Sign up"
	if s.mode == modeSignup {
		other = "Sign in"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N", Description: other},
		{Key: "Ctrl+D", Description: "Demo"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *AuthScreen) active() *components.Form {
	if s.mode == modeSignup {
		return &s.signup
	}
	return &s.login
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FormSubmitMsg:
		return s, s.submit()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			if s.mode == modeLogin {
				s.mode = modeSignup
			} else {
				s.mode = modeLogin
			}
			s.errMsg = ""
			return s, s.active().Init()
		case "ctrl+d":
			s.env.Ctrl.EnterDemo()
			return s, signedIn
		}
	}

	form := s.active()
	var cmd tea.Cmd
	*form, cmd = form.Update(msg)
	return s, cmd
}

func (s *AuthScreen) submit() tea.Cmd {
	var err error
	if s.mode == modeSignup {
		f := s.signup
		_, err = s.env.Ctrl.Signup(f.Value(0), f.Value(1), f.Fields[2].Value(), f.Fields[3].Value())
	} else {
		f := s.login
		_, err = s.env.Ctrl.Login(f.Value(0), f.Fields[1].Value())
	}
	if err != nil {
		s.errMsg = screen.ErrorText(err)
		return nil
	}
	s.errMsg = ""
	return signedIn
}

func signedIn() tea.Msg { return screen.SignedInMsg{} }

func (s *AuthScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 60)
	form := s.active()
	form.SetWidth(cw - 6)

	var sections []string
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("StudyGenie"),
		theme.Subtitle.Render("Your AI-powered study companion"),
		"",
		form.View(),
	)
	if s.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(s.errMsg))
	}
	sections = append(sections, "", theme.Hint.Render("Press Ctrl+D to explore with demo data"))

	card := components.Card(s.Title(), strings.Join(sections, "\n"), cw)
	return components.Centered(card, width, height)
}
