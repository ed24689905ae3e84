package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screens/welcome"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// stats is the session summary shown above the menu.
type stats struct {
	plans    int
	chats    int
	progress int
	notes    int
	agents   int
	demo     bool
}

func collectStats(env screen.Env) stats {
	cur := env.Ctrl.Session().Current()
	st := stats{
		plans:    len(cur.StudyPlans),
		progress: len(cur.ProgressEntries),
		notes:    len(cur.UploadedNotes),
		demo:     cur.IsDemo,
	}
	for _, m := range cur.ChatHistory {
		if m.Sender == session.SenderUser {
			st.chats++
		}
	}
	if cur.LastSystemStatus != nil {
		st.agents = cur.LastSystemStatus.AgentCount()
	}
	return st
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(welcome.Banner(compact)))
}

func renderStatsBar(st stats, cw int, compact bool) string {
	planStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	chatStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	progStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	agentStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s %s %s",
			planStyle.Render(fmt.Sprintf("▦%d", st.plans)),
			chatStyle.Render(fmt.Sprintf("✉%d", st.chats)),
			progStyle.Render(fmt.Sprintf("↗%d", st.progress)),
			noteStyle.Render(fmt.Sprintf("✎%d", st.notes)),
			agentStyle.Render(fmt.Sprintf("●%d", st.agents)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s  %s",
			planStyle.Render(fmt.Sprintf("▦ %d PLANS", st.plans)),
			chatStyle.Render(fmt.Sprintf("✉ %d ASKED", st.chats)),
			progStyle.Render(fmt.Sprintf("↗ %d LOGGED", st.progress)),
			noteStyle.Render(fmt.Sprintf("✎ %d NOTES", st.notes)),
			agentStyle.Render(fmt.Sprintf("● %d AGENTS", st.agents)),
		)
	}
	if st.demo {
		line += "\n" + theme.Hint.Render("Demo mode: responses are simulated locally")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, two per row.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	var rows []string
	for i := 0; i < len(buttons); i += 2 {
		end := min(i+2, len(buttons))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons[i:end]...))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

// renderMenuCompact renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double-border frame centered within the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
