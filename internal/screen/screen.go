package screen

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/store"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold shared resources. The
// router calls Leave when the screen is closed.
type Leaver interface {
	Leave()
}

// Env is what every screen works against.
type Env struct {
	// Ctx is cancelled when the program exits; backend calls use it.
	Ctx context.Context

	Ctrl   *controller.Controller
	Charts *render.ChartSet

	// Events is the request log; nil when no store is open.
	Events store.EventRepo
}

// StatusMsg delivers a status poll result to the app and the active
// screen.
type StatusMsg struct {
	Update controller.StatusUpdate
}

// NoticesMsg carries the notices currently on the board.
type NoticesMsg struct {
	Notices []notice.Notice
}

// SignedOutMsg is sent after a logout so the app can drop per-session
// state and return to the sign-in screen.
type SignedOutMsg struct{}

// SignedInMsg is sent once a session has started.
type SignedInMsg struct{}

// ErrorText is the inline message a screen shows for a failed action.
func ErrorText(err error) string {
	var ve *requests.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, controller.ErrAnalysisInProgress) {
		return "Analysis already in progress"
	}
	return err.Error()
}

// Route delivers msg to a screen's form and result pane. Scroll keys go
// to the pane only and every other key to the form only; other messages
// reach both.
func Route(msg tea.Msg, form *components.Form, pane *components.Pane) tea.Cmd {
	var formCmd, paneCmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok {
		if components.ScrollKey(k.String()) {
			*pane, paneCmd = pane.Update(msg)
		} else {
			*form, formCmd = form.Update(msg)
		}
		return tea.Batch(formCmd, paneCmd)
	}
	*pane, paneCmd = pane.Update(msg)
	*form, formCmd = form.Update(msg)
	return tea.Batch(formCmd, paneCmd)
}
