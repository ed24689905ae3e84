// Package app hosts the interactive terminal program: the screen stack,
// the header with the signed-in user, and the notice area.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screens/auth"
	"github.com/abhisek/studygenie/internal/screens/home"
	"github.com/abhisek/studygenie/internal/screens/welcome"
	"github.com/abhisek/studygenie/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     screen.Env
	router  *router.Router
	notices []notice.Notice
	focused *atomic.Bool
	offline bool
	width   int
	height  int
}

// newAppModel opens on the splash screen.
func newAppModel(env screen.Env) AppModel {
	focused := new(atomic.Bool)
	focused.Store(true)

	m := AppModel{env: env, focused: focused}
	m.router = router.New(welcome.New(m.entry))
	return m
}

// entry is the first real screen: the dashboard when a session is
// already active, the sign-in screen otherwise.
func (m AppModel) entry() screen.Screen {
	if m.env.Ctrl.Session().Active() {
		return home.New(m.env)
	}
	return auth.New(m.env)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.focused.Store(true)
		return m, nil

	case tea.BlurMsg:
		m.focused.Store(false)
		return m, nil

	case screen.NoticesMsg:
		m.notices = msg.Notices
		return m, nil

	case screen.StatusMsg:
		m.offline = msg.Update.Err != nil

	case screen.SignedInMsg:
		return m, m.router.Reset(home.New(m.env))

	case screen.SignedOutMsg:
		m.env.Charts.DisposeAll()
		return m, m.router.Reset(auth.New(m.env))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	v.ReportFocus = true
	return v
}

// frame renders the whole screen: header, active screen, notices and
// footer.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	cur := m.env.Ctrl.Session().Current()
	h := layout.Header{Trail: m.router.Trail(), Offline: m.offline}
	if cur.User != nil {
		h.User = cur.User.DisplayName(cur.IsDemo)
	}
	if cur.LastSystemStatus != nil {
		h.Agents = cur.LastSystemStatus.AgentCount()
	}
	header := layout.RenderHeader(h, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)
	if len(m.notices) > 0 {
		footer = render.Notices(m.notices, m.width) + "\n" + footer
	}

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the program and the status poller. The poller only fires
// while someone is signed in and the terminal has focus.
func Run(ctx context.Context, env screen.Env, pollInterval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	env.Ctx = ctx

	m := newAppModel(env)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	// Program.Send blocks until the event loop runs, and the board
	// reports its current notices as soon as a hook is set. Updates are
	// queued and forwarded in order from one goroutine.
	updates := make(chan tea.Msg, 64)
	queue := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}
	go func() {
		for {
			select {
			case msg := <-updates:
				p.Send(msg)
			case <-ctx.Done():
				return
			}
		}
	}()

	env.Ctrl.Notices().SetOnChange(func(list []notice.Notice) {
		queue(screen.NoticesMsg{Notices: list})
	})
	env.Ctrl.SetOnStatus(func(u controller.StatusUpdate) {
		queue(screen.StatusMsg{Update: u})
	})
	defer func() {
		env.Ctrl.Notices().SetOnChange(nil)
		env.Ctrl.SetOnStatus(nil)
	}()

	go env.Ctrl.RunStatusPoller(ctx, pollInterval, m.focused.Load)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
