package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Status renders the last known backend agent state. errText replaces
// the body when the latest poll failed and nothing is known yet.
func Status(st *normalize.SystemStatus, errText string) string {
	if st == nil {
		if errText != "" {
			return theme.Incorrect.Render(errText)
		}
		return theme.Hint.Render("Waiting for system status...")
	}

	lines := []string{theme.Heading.Render(fmt.Sprintf("Active Agents (%d)", st.AgentCount()))}
	if len(st.Agents) == 0 {
		lines = append(lines, theme.Hint.Render("  No agents reported"))
	}
	for _, a := range st.Agents {
		lines = append(lines, fmt.Sprintf("  %s %-28s %s",
			agentDot(a.Status),
			a.Name,
			theme.Hint.Render(a.Status),
		))
	}

	lines = append(lines, "", theme.Heading.Render("Recent Events"))
	if len(st.Events) == 0 {
		lines = append(lines, theme.Hint.Render("  No recent events"))
	}
	for _, e := range st.Events {
		lines = append(lines, "  "+e.String())
	}
	if errText != "" {
		lines = append(lines, "", theme.Incorrect.Render(errText))
	}
	return strings.Join(lines, "\n")
}

func agentDot(status string) string {
	switch strings.ToLower(status) {
	case "active", "running":
		return theme.Correct.Render("●")
	case "error", "failed":
		return theme.Incorrect.Render("●")
	default:
		return theme.Hint.Render("●")
	}
}
