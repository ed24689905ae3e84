package components

import (
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Pane is a scrollable result area with a busy indicator for the
// request that fills it.
type Pane struct {
	vp      viewport.Model
	spin    spinner.Model
	busy    bool
	label   string
	content string
}

// NewPane creates an empty, idle pane.
func NewPane() Pane {
	return Pane{
		vp: viewport.New(),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

// Start shows the busy indicator with label and returns the tick that
// animates it.
func (p *Pane) Start(label string) tea.Cmd {
	p.busy = true
	p.label = label
	return p.spin.Tick
}

// Stop hides the busy indicator.
func (p *Pane) Stop() {
	p.busy = false
}

// Busy reports whether a request is outstanding.
func (p Pane) Busy() bool { return p.busy }

// SetContent replaces the text and scrolls to the top. Setting the same
// text again keeps the scroll position.
func (p *Pane) SetContent(s string) {
	if s == p.content {
		return
	}
	p.content = s
	p.vp.SetContent(s)
	p.vp.GotoTop()
}

// Content returns the current text.
func (p Pane) Content() string { return p.content }

// GotoBottom scrolls to the end, as for a chat transcript.
func (p *Pane) GotoBottom() {
	p.vp.GotoBottom()
}

// SetSize sets the visible area.
func (p *Pane) SetSize(w, h int) {
	p.vp.SetWidth(w)
	p.vp.SetHeight(max(h, 1))
}

// ScrollKey reports whether key scrolls a pane rather than editing a form.
func ScrollKey(key string) bool {
	switch key {
	case "pgup", "pgdown":
		return true
	}
	return false
}

// Update animates the spinner and scrolls on keys.
func (p Pane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	if tm, ok := msg.(spinner.TickMsg); ok {
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(tm)
		return p, cmd
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

// View renders the busy line, if any, above the content.
func (p Pane) View() string {
	if p.busy {
		return p.spin.View() + " " + theme.Hint.Render(p.label) + "\n\n" + p.vp.View()
	}
	return p.vp.View()
}
