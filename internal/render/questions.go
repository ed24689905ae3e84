package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Questions renders a generated question list. With reveal set, answer
// keys and explanations are shown; the MCQ practice screen hides them
// until the learner answers.
func Questions(list normalize.QuestionList, reveal bool, width int) string {
	if list.Failed {
		return theme.Incorrect.Render(list.Message)
	}

	title := "Practice Questions"
	if list.Kind == normalize.KindMCQs {
		title = "Multiple Choice Questions"
	}
	header := theme.Title.Render(title) + "\n" +
		theme.Hint.Render(fmt.Sprintf("%d generated · type %s", list.TotalGenerated, list.Type))

	parts := []string{header}
	for _, q := range list.Questions {
		parts = append(parts, Question(q, reveal, width))
	}
	return strings.Join(parts, "\n\n")
}

// Question renders one question card body.
func Question(q normalize.Question, reveal bool, width int) string {
	lines := []string{
		fmt.Sprintf("%s  %s",
			theme.Heading.Render(fmt.Sprintf("Q%d.", q.Number)),
			theme.Hint.Render(q.Type+" · "+q.Difficulty),
		),
		wrap(q.Text, width),
	}
	for _, opt := range q.Options {
		line := fmt.Sprintf("  %s) %s", opt.Letter, opt.Text)
		if reveal && opt.Correct {
			line = theme.Correct.Render(line + "  ✓")
		}
		lines = append(lines, line)
	}
	if reveal && q.CorrectAnswer != "" && len(q.Options) == 0 {
		lines = append(lines, theme.Correct.Render("Answer: "+q.CorrectAnswer))
	}
	if reveal && q.Explanation != "" {
		lines = append(lines, theme.Subtitle.Render(wrap("Explanation: "+q.Explanation, width)))
	}
	return strings.Join(lines, "\n")
}

// CorrectIndex returns the index of the keyed option, or -1.
func CorrectIndex(q normalize.Question) int {
	for i, opt := range q.Options {
		if opt.Correct {
			return i
		}
	}
	return -1
}

// OptionTexts returns the option texts in order.
func OptionTexts(q normalize.Question) []string {
	out := make([]string, len(q.Options))
	for i, opt := range q.Options {
		out[i] = opt.Text
	}
	return out
}
