// Package render turns normalized view models into terminal text. It is
// the only package that draws; screens and commands hand it data and
// print what comes back.
package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Plan renders a normalized study plan with its calendar note, if any.
func Plan(res normalize.PlanResult, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Your AI-Generated Study Plan"))
	b.WriteString("\n\n")
	b.WriteString(PlanView(res.View, width))
	if cal := res.Calendar; cal != nil {
		b.WriteString("\n\n")
		b.WriteString(calendar(cal))
	}
	return b.String()
}

// PlanView renders one plan variant.
func PlanView(v normalize.PlanView, width int) string {
	switch v := v.(type) {
	case normalize.ScheduleTable:
		return scheduleTable(v)
	case normalize.ComplexPlan:
		return complexPlan(v)
	case normalize.StructuredPlan:
		return structuredPlan(v)
	case normalize.GenericPlan:
		return genericPlan(v)
	case normalize.PlainText:
		return wrap(v.Text, width)
	default:
		return ""
	}
}

func scheduleTable(t normalize.ScheduleTable) string {
	var days []string
	for _, d := range t.Days {
		lines := []string{theme.Heading.Render(d.Day)}
		for _, task := range d.Tasks {
			lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
				theme.Label.Render(task.Time),
				theme.Body.Bold(true).Render(task.Task),
				theme.Hint.Render(task.Duration),
				theme.PriorityColor(task.Priority).Render(task.Priority),
			))
			if task.Description != "" {
				lines = append(lines, "    "+theme.Subtitle.Render(task.Description))
			}
		}
		days = append(days, strings.Join(lines, "\n"))
	}
	return strings.Join(days, "\n\n")
}

func complexPlan(p normalize.ComplexPlan) string {
	var sections []string
	for _, d := range p.Days {
		lines := []string{theme.Heading.Render(d.Day)}
		for _, task := range d.Tasks {
			lines = append(lines, fmt.Sprintf("  %s  %s",
				theme.Label.Render(task.TimeRange),
				theme.Body.Bold(true).Render(task.Name),
			))
			lines = append(lines, fmt.Sprintf("    %s", theme.Subtitle.Render(task.Description)))
			lines = append(lines, fmt.Sprintf("    %s · %s · %s",
				theme.Hint.Render(task.Duration),
				theme.PriorityColor(task.Priority).Render(task.Priority),
				theme.Hint.Render(task.Category),
			))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if r := reminders(p.Reminders); r != "" {
		sections = append(sections, r)
	}
	return strings.Join(sections, "\n\n")
}

func structuredPlan(p normalize.StructuredPlan) string {
	var sections []string
	for _, d := range p.Days {
		lines := []string{theme.Heading.Render(d.Day)}
		for _, task := range d.Tasks {
			lines = append(lines, fmt.Sprintf("  %s %s",
				theme.PriorityColor(task.Priority).Render("●"),
				theme.Body.Bold(true).Render(task.Name),
			))
			lines = append(lines, "    "+theme.Subtitle.Render(task.Description))
			lines = append(lines, fmt.Sprintf("    %s · %s · %s",
				theme.Label.Render(task.Deadline),
				theme.Hint.Render(task.Duration),
				theme.PriorityColor(task.Priority).Render(task.Priority),
			))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if r := reminders(p.Reminders); r != "" {
		sections = append(sections, r)
	}
	return strings.Join(sections, "\n\n")
}

func reminders(rs []normalize.Reminder) string {
	if len(rs) == 0 {
		return ""
	}
	lines := []string{theme.Heading.Render("General Reminders")}
	for _, r := range rs {
		lines = append(lines, fmt.Sprintf("  %s %s  %s",
			theme.PriorityColor(r.Priority).Render("◆"),
			theme.Body.Bold(true).Render(r.Name),
			theme.Hint.Render(r.Category+" · "+r.Recurring),
		))
		lines = append(lines, "    "+theme.Subtitle.Render(r.Description))
	}
	return strings.Join(lines, "\n")
}

func genericPlan(p normalize.GenericPlan) string {
	var sections []string
	for _, s := range p.Sections {
		lines := []string{theme.Heading.Render(s.Title)}
		switch s.Kind {
		case normalize.SectionList:
			for _, item := range s.Items {
				lines = append(lines, "  • "+item)
			}
		default:
			lines = append(lines, indent(s.Text, "  "))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func calendar(c *normalize.CalendarAnnotation) string {
	text := fmt.Sprintf("📅 %s (%d events)", c.Message, c.EventsCreated)
	if c.Simulated {
		text += theme.Hint.Render("  simulated")
	}
	return theme.Card.BorderForeground(theme.Secondary).Render(text)
}
