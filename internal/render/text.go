package render

import (
	"strings"

	"charm.land/lipgloss/v2"
)

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string, mark string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "  " + mark + " " + it
	}
	return strings.Join(lines, "\n")
}
