package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"StudyGenie needs a bigger window.\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		))
	return msg
}

// Header is what the top bar shows.
type Header struct {
	Trail   []string // open screen titles, bottom first
	User    string
	Agents  int
	Offline bool // last status poll failed
}

// RenderHeader renders the top bar: the app name and breadcrumb on the
// left, the signed-in user and backend state on the right.
func RenderHeader(h Header, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  StudyGenie")
	if crumb := breadcrumb(h.Trail); crumb != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ›  ") + crumb
	}

	backend := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("● %d agents", h.Agents))
	if h.Offline {
		backend = lipgloss.NewStyle().Foreground(theme.Error).Render("● offline")
	}
	right := backend
	if h.User != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render(h.User) + "   " + backend
	}

	innerWidth := max(width-4, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return theme.Bar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// breadcrumb joins the titles of the screens above the root. The last
// one is highlighted.
func breadcrumb(trail []string) string {
	if len(trail) <= 1 {
		if len(trail) == 1 {
			return lipgloss.NewStyle().Foreground(theme.Text).Render(trail[0])
		}
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(trail))
	for i, t := range trail {
		if i == len(trail)-1 {
			parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t)
		} else {
			parts[i] = dim.Render(t)
		}
	}
	return strings.Join(parts, dim.Render(" › "))
}

// RenderFooter renders the key hints. Hints that do not fit the width
// are dropped from the end; Esc and Ctrl+C are kept whenever present.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	render := func(h KeyHint) string { return key.Render(h.Key) + " " + desc.Render(h.Description) }
	sep := "   "
	room := width - 6

	var essential, optional []KeyHint
	for _, h := range hints {
		if h.Key == "Esc" || h.Key == "Ctrl+C" {
			essential = append(essential, h)
		} else {
			optional = append(optional, h)
		}
	}
	used := 0
	for _, h := range essential {
		used += lipgloss.Width(render(h)) + len(sep)
	}

	var parts []string
	for _, h := range optional {
		w := lipgloss.Width(render(h)) + len(sep)
		if used+w > room {
			break
		}
		used += w
		parts = append(parts, render(h))
	}
	for _, h := range essential {
		parts = append(parts, render(h))
	}

	return theme.Bar.Width(width).Render("  " + strings.Join(parts, sep))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
