package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Notes renders the outcome of a notes upload.
func Notes(n normalize.NotesResult, width int) string {
	if !n.OK {
		return theme.Incorrect.Render("Notes processing failed") + "\n" + wrap(n.Message, width)
	}

	rows := [][2]string{
		{"Subject", n.Subject},
		{"Content length", humanize.Comma(int64(n.ContentLength)) + " characters"},
		{"Method", n.MethodLabel()},
	}
	if n.FileType != "" {
		rows = append(rows, [2]string{"File type", n.FileType})
	}

	sections := []string{theme.Correct.Render(n.Message)}
	var details []string
	for _, r := range rows {
		details = append(details, fmt.Sprintf("  %s %s", theme.Label.Render(fmt.Sprintf("%-15s", r[0]+":")), r[1]))
	}
	sections = append(sections, strings.Join(details, "\n"))

	if n.Preview != "" {
		sections = append(sections, theme.Heading.Render("Preview")+"\n"+theme.Subtitle.Render(indent(wrap(n.Preview, width-2), "  ")))
	}
	if len(n.KeyTopics) > 0 {
		sections = append(sections, theme.Heading.Render("Key Topics")+"\n"+bullets(n.KeyTopics, "•"))
	}
	if len(n.NextSteps) > 0 {
		sections = append(sections, theme.Heading.Render("Next Steps")+"\n"+bullets(n.NextSteps, "→"))
	}
	return strings.Join(sections, "\n\n")
}
