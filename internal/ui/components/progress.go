package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

// ProgressBar draws a 0-100 percentage as a filled bar followed by the
// rounded figure. Fill defaults to the secondary colour.
type ProgressBar struct {
	Label   string
	Percent float64
	Fill    color.Color
	Width   int
}

// NewProgressBar creates a bar for percent, clamped to 0-100.
func NewProgressBar(label string, percent float64, fill color.Color, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: max(0, min(percent, 100)),
		Fill:    fill,
		Width:   width,
	}
}

// View renders the bar within Width columns.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}
	figure := fmt.Sprintf("  %3.0f%%", p.Percent)

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(figure), 4)
	filled := int(float64(barWidth)*p.Percent/100 + 0.5)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(theme.ProgressFilled.Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(figure))
	return b.String()
}
