package practice

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/router"
	"github.com/abhisek/studygenie/internal/screen/screentest"
	"github.com/abhisek/studygenie/internal/screens/quiz"
	"github.com/abhisek/studygenie/internal/ui/components"
)

func TestPractice_FormByKind(t *testing.T) {
	env := screentest.Env(t, nil)

	q := New(env, normalize.KindQuestions)
	require.Len(t, q.form.Fields, 4)
	q.form.Fields[fieldText].SetValue("Photosynthesis converts light to energy")
	q.form.Fields[fieldType].SetValue("short")
	f := q.Form()
	assert.Equal(t, "short", f.Type)
	assert.Equal(t, "Photosynthesis converts light to energy", f.Text)

	m := New(env, normalize.KindMCQs)
	assert.Len(t, m.form.Fields, 3)
	assert.Empty(t, m.Form().Type)
	assert.Equal(t, "MCQ Practice", m.Title())
}

func TestPractice_MCQsOpenQuiz(t *testing.T) {
	s := New(screentest.Env(t, nil), normalize.KindMCQs)
	s.form.Fields[fieldText].SetValue("Cells are the basic unit of life. Mitochondria produce energy.")
	s.form.Fields[fieldCount].SetValue("3")

	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)
	require.NotNil(t, s.list)
	require.NotEmpty(t, s.list.Questions)

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*quiz.QuizScreen)
	assert.True(t, ok)
}

func TestPractice_RevealToggle(t *testing.T) {
	s := New(screentest.Env(t, nil), normalize.KindQuestions)
	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	assert.True(t, s.reveal)
}

func TestPractice_EmptyContentRejected(t *testing.T) {
	s := New(screentest.Env(t, nil), normalize.KindQuestions)
	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)
	assert.Equal(t, "Please enter text content or upload a file", s.errMsg)
	assert.Nil(t, s.list)
}
