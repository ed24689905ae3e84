package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Notices renders the active notices newest last, each on its own line.
func Notices(list []notice.Notice, width int) string {
	if len(list) == 0 {
		return ""
	}
	lines := make([]string, len(list))
	for i, n := range list {
		lines[i] = noticeStyle(n.Level).MaxWidth(width).Render(noticeIcon(n.Level) + " " + n.Message)
	}
	return strings.Join(lines, "\n")
}

func noticeStyle(l notice.Level) lipgloss.Style {
	c := theme.Info
	switch l {
	case notice.Success:
		c = theme.Success
	case notice.Warning:
		c = theme.Warning
	case notice.Error:
		c = theme.Error
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func noticeIcon(l notice.Level) string {
	switch l {
	case notice.Success:
		return "✓"
	case notice.Warning:
		return "!"
	case notice.Error:
		return "✗"
	default:
		return "i"
	}
}
