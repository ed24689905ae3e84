package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Summary is the score of a finished quiz.
type Summary struct {
	Answers  []Answer
	Total    int
	Correct  int
	Skipped  int
	Accuracy float64
}

// Summarize scores answers. Accuracy counts skipped questions as wrong.
func Summarize(answers []Answer) Summary {
	sum := Summary{Answers: answers, Total: len(answers)}
	for _, a := range answers {
		switch {
		case a.Chosen < 0:
			sum.Skipped++
		case a.Correct:
			sum.Correct++
		}
	}
	if sum.Total > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Total)
	}
	return sum
}

// View renders the summary centered in width.
func (sum Summary) View(width int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quiz complete!")))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d        Correct: %d        Skipped: %d        Accuracy: %.0f%%",
		sum.Total, sum.Correct, sum.Skipped, sum.Accuracy*100)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	for i, a := range sum.Answers {
		mark, style := "✗", theme.Incorrect
		switch {
		case a.Chosen < 0:
			mark, style = "–", theme.Hint
		case a.Correct:
			mark, style = "✓", theme.Correct
		}
		text := a.Question.Text
		if r := []rune(text); len(r) > 56 {
			text = string(r[:55]) + "…"
		}
		b.WriteString(center(style.Render(fmt.Sprintf("%s  %d. %-56s", mark, i+1, text))))
		b.WriteString("\n")
	}
	return b.String()
}
