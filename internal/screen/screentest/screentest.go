// Package screentest builds screen environments for tests.
package screentest

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/demo"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/transport"
)

// Env returns an Env whose controller talks to gw and has a signed-in
// local session. A nil gw answers from the demo fixtures.
func Env(t *testing.T, gw transport.Gateway) screen.Env {
	t.Helper()
	if gw == nil {
		g, err := demo.NewGateway()
		require.NoError(t, err)
		gw = g
	}
	board := notice.NewBoard(time.Minute)
	t.Cleanup(board.Close)
	ctrl := controller.New(controller.Options{
		Client:      transport.NewClient(gw),
		Notices:     board,
		DemoRefresh: 10 * time.Millisecond,
	})
	t.Cleanup(ctrl.Close)
	ctrl.StartLocal("tester", false)
	return screen.Env{Ctx: context.Background(), Ctrl: ctrl, Charts: render.NewChartSet()}
}

// Failing returns a gateway whose every call fails as if the backend
// were down.
func Failing() transport.Gateway {
	return transport.NewMockGateway()
}

// Run executes cmd and any batch it expands to, returning the messages
// produced. Nested commands are not followed.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, Run(c)...)
	}
	return out
}

// Feed runs cmd and passes every resulting message to s, returning the
// last command s produced.
func Feed(s screen.Screen, cmd tea.Cmd) tea.Cmd {
	var last tea.Cmd
	for _, msg := range Run(cmd) {
		_, last = s.Update(msg)
	}
	return last
}
