package requests

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return ve.Field
}

func TestBuildStudyPlan(t *testing.T) {
	req, err := BuildStudyPlan(PlanForm{
		Subjects: []SubjectInput{
			{Name: " Physics ", Difficulty: "hard", ExamDate: "2026-12-01"},
			{Name: ""},
			{Name: "Maths"},
		},
		DailyHours: "4",
	})
	require.NoError(t, err)
	require.Len(t, req.Subjects, 2)
	assert.Equal(t, "Physics", req.Subjects[0].Name)
	assert.Equal(t, Hard, req.Subjects[0].Difficulty)
	assert.Equal(t, Medium, req.Subjects[1].Difficulty)
	assert.Nil(t, req.Subjects[1].ExamDate)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subjects":[
		{"name":"Physics","difficulty":"Hard","exam_date":"2026-12-01"},
		{"name":"Maths","difficulty":"Medium","exam_date":null}],
		"daily_hours":4}`, string(raw))
}

func TestBuildStudyPlan_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		form  PlanForm
		field string
	}{
		{"no subjects", PlanForm{DailyHours: "2"}, "subjects"},
		{"only blank names", PlanForm{Subjects: []SubjectInput{{Name: "  "}}, DailyHours: "2"}, "subjects"},
		{"zero hours", PlanForm{Subjects: []SubjectInput{{Name: "A"}}, DailyHours: "0"}, "daily_hours"},
		{"too many hours", PlanForm{Subjects: []SubjectInput{{Name: "A"}}, DailyHours: "13"}, "daily_hours"},
		{"non numeric hours", PlanForm{Subjects: []SubjectInput{{Name: "A"}}, DailyHours: "lots"}, "daily_hours"},
		{"bad difficulty", PlanForm{Subjects: []SubjectInput{{Name: "A", Difficulty: "brutal"}}, DailyHours: "2"}, "difficulty"},
		{"bad date", PlanForm{Subjects: []SubjectInput{{Name: "A", ExamDate: "next week"}}, DailyHours: "2"}, "exam_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStudyPlan(tt.form)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestBuildProgress(t *testing.T) {
	req, err := BuildProgress(ProgressForm{CompletedTasks: "7", TotalTasks: "10", StudyHours: "", FocusLevel: ""})
	require.NoError(t, err)
	assert.Equal(t, 0.0, req.StudyHours)
	assert.Equal(t, DefaultFocus, req.FocusLevel)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed_tasks":7,"total_tasks":10,"study_hours":0,"focus_level":5,"tasks":[]}`, string(raw))
}

func TestBuildProgress_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		form  ProgressForm
		field string
	}{
		{"non numeric", ProgressForm{CompletedTasks: "x", TotalTasks: "3"}, "tasks"},
		{"negative completed", ProgressForm{CompletedTasks: "-1", TotalTasks: "3"}, "tasks"},
		{"zero total", ProgressForm{CompletedTasks: "0", TotalTasks: "0"}, "tasks"},
		{"completed over total", ProgressForm{CompletedTasks: "4", TotalTasks: "3"}, "completed_tasks"},
		{"negative hours", ProgressForm{CompletedTasks: "1", TotalTasks: "3", StudyHours: "-2"}, "study_hours"},
		{"NaN hours", ProgressForm{CompletedTasks: "1", TotalTasks: "3", StudyHours: "NaN"}, "study_hours"},
		{"infinite hours", ProgressForm{CompletedTasks: "1", TotalTasks: "3", StudyHours: "Inf"}, "study_hours"},
		{"negative infinite hours", ProgressForm{CompletedTasks: "1", TotalTasks: "3", StudyHours: "-Inf"}, "study_hours"},
		{"focus too high", ProgressForm{CompletedTasks: "1", TotalTasks: "3", FocusLevel: "11"}, "focus_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildProgress(tt.form)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestBuildAskDoubt(t *testing.T) {
	_, err := BuildAskDoubt("   ")
	assert.Equal(t, "question", fieldOf(t, err))

	req, err := BuildAskDoubt(" what is entropy? ")
	require.NoError(t, err)
	assert.Equal(t, "what is entropy?", req.Question)
}

func TestBuildNotes_Text(t *testing.T) {
	_, err := BuildNotes(NotesForm{})
	assert.Equal(t, "content", fieldOf(t, err))

	req, err := BuildNotes(NotesForm{ContentForm: ContentForm{Text: "Newton's laws"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultNotesTitle, req.Title)
	assert.Equal(t, DefaultSubject, req.Subject)
	assert.Equal(t, UploadText, req.UploadMethod)
	assert.Equal(t, "text/plain", req.FileType)
	assert.Nil(t, req.FileName)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"file_name":null`)
}

func TestBuildNotes_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "optics.md")
	require.NoError(t, os.WriteFile(path, []byte("# Optics\nlight bends"), 0o644))

	req, err := BuildNotes(NotesForm{ContentForm: ContentForm{Text: "ignored", FilePath: path}, Subject: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, "optics.md", req.Title)
	assert.Equal(t, UploadFile, req.UploadMethod)
	assert.Equal(t, "# Optics\nlight bends", req.Content)
	require.NotNil(t, req.FileName)
	assert.Equal(t, "optics.md", *req.FileName)
}

func TestReadFile_PDFIsBase64(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", c.FileType)
	assert.Equal(t, "JVBERi0xLjQ=", c.Content)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Equal(t, "file", fieldOf(t, err))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadFile(empty)
	assert.Equal(t, "file", fieldOf(t, err))

	_, err = ReadFile(dir)
	assert.Equal(t, "file", fieldOf(t, err))
}

func TestBuildQuestions(t *testing.T) {
	req, err := BuildQuestions(QuestionsForm{ContentForm: ContentForm{Text: "cells"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuestionType, req.Type)
	assert.Equal(t, DefaultQuestionNum, req.NumQuestions)

	mcq, err := BuildMCQs(QuestionsForm{ContentForm: ContentForm{Text: "cells"}, Type: "essay", Count: "10"})
	require.NoError(t, err)
	assert.Equal(t, "mcq", mcq.Type)
	assert.Equal(t, 10, mcq.NumQuestions)

	_, err = BuildQuestions(QuestionsForm{ContentForm: ContentForm{Text: "cells"}, Count: "0"})
	assert.Equal(t, "num_questions", fieldOf(t, err))

	_, err = BuildMCQs(QuestionsForm{})
	assert.Equal(t, "content", fieldOf(t, err))
}

func TestCredentials(t *testing.T) {
	assert.Error(t, ValidateLogin("", "secret"))
	assert.NoError(t, ValidateLogin("a@b.c", "x"))

	assert.Error(t, ValidateSignup("Ada", "a@b.c", "secret1", ""))
	assert.Equal(t, "confirm_password", fieldOf(t, ValidateSignup("Ada", "a@b.c", "secret1", "secret2")))
	assert.Equal(t, "password", fieldOf(t, ValidateSignup("Ada", "a@b.c", "abc", "abc")))
	assert.NoError(t, ValidateSignup("Ada", "a@b.c", "secret1", "secret1"))
}

func TestValidate_ReportsField(t *testing.T) {
	err := Validate(SchemaStudyPlan, StudyPlan{
		Subjects:   []Subject{{Name: "A", Difficulty: "Impossible"}},
		DailyHours: 3,
	})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "subjects.0.difficulty", ve.Field)

	assert.NoError(t, Validate(SchemaAskDoubt, AskDoubt{Question: "why"}))
	assert.Error(t, Validate(SchemaProgress, Progress{TotalTasks: 0, FocusLevel: 5, Tasks: []any{}}))
}
