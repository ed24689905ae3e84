package render

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/progress"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Analysis renders a progress analysis for the snapshot it was requested
// with, followed by the achievements earned over the window.
func Analysis(snap progress.Snapshot, a normalize.Analysis, achievements []progress.Achievement, width int) string {
	completion := snap.CompletionPercent()
	band := progress.BandFor(completion)

	sections := []string{
		theme.Title.Render("Progress Analysis"),
		quickStats(snap, a, width),
		fmt.Sprintf("%s  %s",
			bandStyle(band).Render(band.StatusText()),
			theme.Hint.Render(fmt.Sprintf("focus quality: %s", progress.FocusQuality(snap.FocusLevel))),
		),
	}

	if perHour, ok := progress.Efficiency(snap.CompletedTasks, snap.StudyHours); ok {
		sections = append(sections, theme.Label.Render("Study Efficiency")+"\n"+
			fmt.Sprintf("  %.1f tasks per hour", perHour))
	}

	if a.Insight != "" {
		sections = append(sections, theme.Heading.Render("AI Insights")+"\n"+indent(wrap(a.Insight, width-2), "  "))
	}
	if len(a.Recommendations) > 0 {
		sections = append(sections, theme.Heading.Render("Recommendations")+"\n"+bullets(a.Recommendations, "→"))
	}
	if a.AgentInsights != "" {
		sections = append(sections, theme.Heading.Render("Agent Insights")+"\n"+theme.Hint.Render(indent(a.AgentInsights, "  ")))
	}
	if s := Achievements(achievements); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n\n")
}

func quickStats(snap progress.Snapshot, a normalize.Analysis, width int) string {
	stats := []struct{ label, value string }{
		{"Completion", fmt.Sprintf("%.0f%%", snap.CompletionPercent())},
		{"Productivity", fmt.Sprintf("%.0f%%", a.ProductivityScore*100)},
		{"Focus", fmt.Sprintf("%d/10", snap.FocusLevel)},
		{"Hours", trimFloat(snap.StudyHours) + "h"},
	}
	cellWidth := max(width/len(stats)-2, 12)
	cells := make([]string, len(stats))
	for i, s := range stats {
		cells[i] = lipgloss.NewStyle().Width(cellWidth).Render(
			theme.Hint.Render(s.label) + "\n" + theme.Heading.Render(s.value),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func bandStyle(b progress.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(bandColor(b)).Bold(true)
}

func bandColor(b progress.Band) color.Color {
	switch b {
	case progress.BandExcellent:
		return theme.Success
	case progress.BandGood:
		return theme.Info
	case progress.BandAverage:
		return theme.Warning
	default:
		return theme.Error
	}
}

// Achievements renders earned badges, or nothing when none are earned.
func Achievements(list []progress.Achievement) string {
	if len(list) == 0 {
		return ""
	}
	lines := []string{theme.Heading.Render("Achievements")}
	for _, a := range list {
		lines = append(lines, fmt.Sprintf("  %s %s  %s",
			a.Icon(),
			theme.Badge.Render(a.Title()),
			theme.Hint.Render(a.Description()),
		))
	}
	return strings.Join(lines, "\n")
}
