package quiz

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/router"
)

func testQuestions() []normalize.Question {
	return []normalize.Question{
		{
			Number: 1,
			Text:   "What is the powerhouse of the cell?",
			Options: []normalize.Option{
				{Letter: "A", Text: "Nucleus"},
				{Letter: "B", Text: "Mitochondria", Correct: true},
				{Letter: "C", Text: "Ribosome"},
			},
			Explanation: "Mitochondria produce ATP.",
		},
		{Number: 2, Text: "Open question without options"},
		{
			Number: 3,
			Text:   "2 + 2 = ?",
			Options: []normalize.Option{
				{Letter: "A", Text: "4", Correct: true},
				{Letter: "B", Text: "5"},
			},
		},
	}
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestQuiz_SkipsQuestionsWithoutOptions(t *testing.T) {
	s := New(testQuestions())
	assert.Len(t, s.questions, 2)
	assert.Equal(t, "MCQ Quiz", s.Title())
}

func TestQuiz_AnswerAndAdvance(t *testing.T) {
	s := New(testQuestions())

	s.Update(key("b"))
	require.Len(t, s.Answers(), 1)
	assert.True(t, s.Answers()[0].Correct)
	assert.Contains(t, s.View(100, 30), "Correct!")
	assert.Contains(t, s.View(100, 30), "Mitochondria produce ATP.")

	s.Update(enter())
	s.Update(key("b"))
	require.Len(t, s.Answers(), 2)
	assert.False(t, s.Answers()[1].Correct)

	s.Update(enter())
	assert.True(t, s.Done())

	sum := Summarize(s.Answers())
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Correct)
	assert.InDelta(t, 0.5, sum.Accuracy, 0.001)
	assert.Contains(t, s.View(100, 30), "Quiz complete!")
}

func TestQuiz_Skip(t *testing.T) {
	s := New(testQuestions())
	s.Update(key("s"))
	require.Len(t, s.Answers(), 1)
	assert.Equal(t, -1, s.Answers()[0].Chosen)

	sum := Summarize(s.Answers())
	assert.Equal(t, 1, sum.Skipped)
	assert.Zero(t, sum.Accuracy)
}

func TestQuiz_EnterOnSummaryPops(t *testing.T) {
	s := New(testQuestions()[:1])
	s.Update(key("a"))
	s.Update(enter())
	require.True(t, s.Done())

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestQuiz_Empty(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Done())
	assert.Contains(t, s.View(80, 24), "No multiple choice questions")
}
