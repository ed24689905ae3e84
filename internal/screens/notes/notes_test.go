package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/screen/screentest"
	"github.com/abhisek/studygenie/internal/ui/components"
)

func TestNotes_UploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.md")
	require.NoError(t, os.WriteFile(path, []byte("# Graphs\nBFS visits nodes level by level."), 0o644))

	env := screentest.Env(t, nil)
	s := New(env)
	s.form.Fields[fieldTitle].SetValue("Graphs")
	s.form.Fields[fieldFile].SetValue(path)

	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)

	assert.Empty(t, s.errMsg)
	require.Len(t, env.Ctrl.Session().Current().UploadedNotes, 1)
	assert.Empty(t, s.form.Value(fieldFile))
}

func TestNotes_EmptyRejected(t *testing.T) {
	env := screentest.Env(t, nil)
	s := New(env)
	_, cmd := s.Update(components.FormSubmitMsg{})
	screentest.Feed(s, cmd)

	assert.Equal(t, "Please enter text content or upload a file", s.errMsg)
	assert.Empty(t, env.Ctrl.Session().Current().UploadedNotes)
}
