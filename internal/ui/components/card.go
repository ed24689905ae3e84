package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

// ContentWidth returns the inner width used for screen sections so that
// stacked cards line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the card border (2) and padding (2).
	w := frameWidth - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card with an optional title.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Heading.Render(title) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// Centered places content in the middle of a width x height box.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
