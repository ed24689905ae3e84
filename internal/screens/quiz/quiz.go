// Package quiz steps through generated MCQs one at a time and scores
// the learner's answers.
package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/layout"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// Answer is the learner's pick for one question. Chosen is -1 when the
// question was skipped.
type Answer struct {
	Question normalize.Question
	Chosen   int
	Correct  bool
}

// QuizScreen runs one MCQ quiz.
type QuizScreen struct {
	questions []normalize.Question
	current   int
	mc        components.MultiChoice
	answers   []Answer
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz over questions. Questions without options are
// skipped.
func New(questions []normalize.Question) *QuizScreen {
	s := &QuizScreen{}
	for _, q := range questions {
		if len(q.Options) > 0 {
			s.questions = append(s.questions, q)
		}
	}
	if len(s.questions) > 0 {
		s.mc = multiChoice(s.questions[0])
	}
	return s
}

func multiChoice(q normalize.Question) components.MultiChoice {
	return components.NewMultiChoice(q.Text, render.OptionTexts(q), render.CorrectIndex(q))
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "MCQ Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.Done() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.mc.Submitted {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-" + string(rune('A'+len(s.mc.Options)-1)), Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

// Done reports whether every question has been answered or skipped.
func (s *QuizScreen) Done() bool {
	return s.current >= len(s.questions)
}

// Answers returns the answers so far.
func (s *QuizScreen) Answers() []Answer {
	return s.answers
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.Done() {
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.mc.Submitted {
		if kmsg.String() == "enter" || kmsg.String() == "n" {
			s.advance()
		}
		return s, nil
	}

	if kmsg.String() == "s" && len(s.mc.Options) < 19 {
		s.answers = append(s.answers, Answer{Question: s.questions[s.current], Chosen: -1})
		s.current++
		if !s.Done() {
			s.mc = multiChoice(s.questions[s.current])
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		s.answers = append(s.answers, Answer{
			Question: s.questions[s.current],
			Chosen:   s.mc.ChosenIndex,
			Correct:  s.mc.IsCorrect(),
		})
	}
	return s, cmd
}

func (s *QuizScreen) advance() {
	s.current++
	if !s.Done() {
		s.mc = multiChoice(s.questions[s.current])
	}
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return components.Centered(theme.Hint.Render("No multiple choice questions to practice."), width, height)
	}
	if s.Done() {
		return Summarize(s.answers).View(width)
	}

	cw := components.ContentWidth(width)
	q := s.questions[s.current]
	header := theme.Hint.Render(fmt.Sprintf("Question %d of %d · %s", s.current+1, len(s.questions), q.Difficulty))
	body := header + "\n\n" + s.mc.View()

	if s.mc.Submitted {
		verdict := theme.Incorrect.Render("Not quite.")
		if s.mc.IsCorrect() {
			verdict = theme.Correct.Render("Correct!")
		} else if s.mc.CorrectIndex < 0 {
			verdict = theme.Hint.Render("No answer key for this question.")
		}
		body += "\n" + verdict
		if q.Explanation != "" {
			body += "\n\n" + lipgloss.NewStyle().Width(cw-4).Foreground(theme.TextDim).Render(q.Explanation)
		}
	}
	return components.Centered(components.Card("", body, cw), width, height)
}
