// Package activity lists the backend calls recorded in the local request
// log.
package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"

	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/store"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

const pageSize = 50

type loadedMsg struct {
	records []store.RequestEventRecord
	stats   []store.OperationStats
	err     error
}

// ActivityScreen displays recent backend calls. Enter expands a call to
// show its bodies.
type ActivityScreen struct {
	ctx      context.Context
	events   store.EventRepo
	records  []store.RequestEventRecord
	stats    []store.OperationStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates the activity screen over env.Events.
func New(env screen.Env) *ActivityScreen {
	ctx := env.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return &ActivityScreen{
		ctx:      ctx,
		events:   env.Events,
		expanded: make(map[int]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ActivityScreen) load() tea.Cmd {
	events, ctx := s.events, s.ctx
	return func() tea.Msg {
		if events == nil {
			return loadedMsg{}
		}
		records, err := events.QueryRequests(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := events.UsageByOperation(ctx)
		if err != nil {
			return loadedMsg{records: records}
		}
		return loadedMsg{records: records, stats: stats}
	}
}

func (s *ActivityScreen) Title() string {
	return "Activity Log"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.records = msg.records
		s.stats = msg.stats
		s.selected = min(s.selected, max(len(s.records)-1, 0))
		clear(s.expanded)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.load()
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return dim.Render("\n\n  Loading activity...")
	case len(s.records) == 0:
		return dim.Italic(true).Render("\n\n  No backend calls recorded yet.")
	}

	var b strings.Builder
	if usage := s.usageLine(); usage != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(usage)))
		b.WriteString("\n\n")
	}

	for i, r := range s.records {
		mark := theme.Correct.Render("✓")
		if !r.Success {
			mark = theme.Incorrect.Render("✗")
		}
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := "-"
		if r.Status > 0 {
			status = fmt.Sprint(r.Status)
		}
		line := fmt.Sprintf("%s%-14s %-18s %-4s %5dms  %s",
			prefix, humanize.Time(r.Timestamp), r.Operation, status, r.LatencyMs, r.Path)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mark+" "+style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(details(r, width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *ActivityScreen) usageLine() string {
	parts := make([]string, 0, len(s.stats))
	for _, st := range s.stats {
		parts = append(parts, fmt.Sprintf("%s %d", st.Operation, st.Calls))
	}
	return strings.Join(parts, " · ")
}

func details(r store.RequestEventRecord, width int) string {
	box := lipgloss.NewStyle().
		Width(min(width-8, 100)).
		Padding(0, 2).
		Foreground(theme.TextDim)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", r.Method, r.Path))
	if r.ErrorMessage != "" {
		lines = append(lines, theme.Incorrect.Render(r.ErrorMessage))
	}
	if r.RequestBody != "" {
		lines = append(lines, theme.Label.Render("Request"), body(r.RequestBody))
	}
	if r.ResponseBody != "" {
		lines = append(lines, theme.Label.Render("Response"), body(r.ResponseBody))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box.Render(strings.Join(lines, "\n")))
}

// body pretty-prints JSON bodies and clips long ones.
func body(s string) string {
	out := strings.TrimSpace(string(pretty.Pretty([]byte(s))))
	if out == "" {
		out = s
	}
	lines := strings.Split(out, "\n")
	if len(lines) > 12 {
		lines = append(lines[:12], "…")
	}
	return strings.Join(lines, "\n")
}
