package requests

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Limits applied to form input.
const (
	MinDailyHours       = 1
	MaxDailyHours       = 12
	MinFocus            = 1
	MaxFocus            = 10
	DefaultFocus        = 5
	MinPasswordLen      = 6
	DefaultQuestionNum  = 5
	MaxQuestionNum      = 20
	DefaultNotesTitle   = "Uploaded Notes"
	DefaultSubject      = "General"
	DefaultQuestionType = "mixed"
	MCQType             = "mcq"
	ExamDateLayout      = "2006-01-02"
)

// SubjectInput is one subject row as typed by the user.
type SubjectInput struct {
	Name       string
	Difficulty string
	ExamDate   string
}

// PlanForm is the raw study plan form.
type PlanForm struct {
	Subjects   []SubjectInput
	DailyHours string
}

// BuildStudyPlan validates the form. Rows without a name are skipped.
func BuildStudyPlan(f PlanForm) (StudyPlan, error) {
	var subjects []Subject
	for _, in := range f.Subjects {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		d, err := parseDifficulty(in.Difficulty)
		if err != nil {
			return StudyPlan{}, err
		}
		s := Subject{Name: name, Difficulty: d}
		if date := strings.TrimSpace(in.ExamDate); date != "" {
			if _, err := time.Parse(ExamDateLayout, date); err != nil {
				return StudyPlan{}, &ValidationError{
					Field:   "exam_date",
					Message: "Exam date must look like 2006-01-02",
					Err:     err,
				}
			}
			s.ExamDate = &date
		}
		subjects = append(subjects, s)
	}
	if len(subjects) == 0 {
		return StudyPlan{}, invalid("subjects", "Please add at least one subject with a name")
	}

	hours, err := strconv.Atoi(strings.TrimSpace(f.DailyHours))
	if err != nil || hours < MinDailyHours || hours > MaxDailyHours {
		return StudyPlan{}, invalid("daily_hours", "Please enter valid daily study hours (1-12)")
	}

	req := StudyPlan{Subjects: subjects, DailyHours: hours}
	return req, Validate(SchemaStudyPlan, req)
}

func parseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return Medium, nil
	case "easy":
		return Easy, nil
	case "hard":
		return Hard, nil
	}
	return "", invalid("difficulty", "Difficulty must be Easy, Medium or Hard")
}

// BuildAskDoubt validates a chat question.
func BuildAskDoubt(question string) (AskDoubt, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return AskDoubt{}, invalid("question", "Please enter a question")
	}
	req := AskDoubt{Question: q}
	return req, Validate(SchemaAskDoubt, req)
}

// ProgressForm is the raw progress tracking form.
type ProgressForm struct {
	CompletedTasks string
	TotalTasks     string
	StudyHours     string
	FocusLevel     string
}

// BuildProgress validates the form. Blank or unparsable hours count as 0
// and a blank or zero focus level counts as 5.
func BuildProgress(f ProgressForm) (Progress, error) {
	completed, errC := strconv.Atoi(strings.TrimSpace(f.CompletedTasks))
	total, errT := strconv.Atoi(strings.TrimSpace(f.TotalTasks))
	if errC != nil || errT != nil {
		return Progress{}, invalid("tasks", "Please enter valid numbers for tasks")
	}
	if completed < 0 || total < 1 {
		return Progress{}, invalid("tasks", "Please enter valid task numbers")
	}
	if completed > total {
		return Progress{}, invalid("completed_tasks", "Completed tasks cannot exceed total tasks")
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(f.StudyHours), 64)
	if err != nil {
		hours = 0
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Progress{}, invalid("study_hours", "Please enter valid study hours")
	}
	if hours < 0 {
		return Progress{}, invalid("study_hours", "Study hours cannot be negative")
	}

	focus, err := strconv.Atoi(strings.TrimSpace(f.FocusLevel))
	if err != nil || focus == 0 {
		focus = DefaultFocus
	}
	if focus < MinFocus || focus > MaxFocus {
		return Progress{}, invalid("focus_level", "Focus level must be between 1 and 10")
	}

	req := Progress{
		CompletedTasks: completed,
		TotalTasks:     total,
		StudyHours:     hours,
		FocusLevel:     focus,
		Tasks:          []any{},
	}
	return req, Validate(SchemaProgress, req)
}

// ContentForm is shared by the notes and question forms: either pasted
// text or a file path must be given. A file wins over text.
type ContentForm struct {
	Text     string
	FilePath string
}

func (f ContentForm) empty() bool {
	return strings.TrimSpace(f.Text) == "" && strings.TrimSpace(f.FilePath) == ""
}

// NotesForm is the raw notes upload form.
type NotesForm struct {
	ContentForm
	Title   string
	Subject string
}

// BuildNotes validates the form and reads the file, if any.
func BuildNotes(f NotesForm) (Notes, error) {
	if f.empty() {
		return Notes{}, invalid("content", "Please enter text content or upload a file")
	}
	c, err := resolveContent(f.ContentForm)
	if err != nil {
		return Notes{}, err
	}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		title = DefaultNotesTitle
		if c.FileName != nil {
			title = *c.FileName
		}
	}
	subject := strings.TrimSpace(f.Subject)
	if subject == "" {
		subject = DefaultSubject
	}

	req := Notes{
		Title:        title,
		Subject:      subject,
		Content:      c.Content,
		UploadMethod: c.Method,
		FileType:     c.FileType,
		FileName:     c.FileName,
	}
	return req, Validate(SchemaNotes, req)
}

// QuestionsForm is the raw question or MCQ generation form.
type QuestionsForm struct {
	ContentForm
	Type  string
	Count string
}

// BuildQuestions validates a practice question request.
func BuildQuestions(f QuestionsForm) (Questions, error) {
	typ := strings.TrimSpace(f.Type)
	if typ == "" {
		typ = DefaultQuestionType
	}
	return buildQuestions(f, typ)
}

// BuildMCQs validates an MCQ request. The type is always "mcq".
func BuildMCQs(f QuestionsForm) (Questions, error) {
	return buildQuestions(f, MCQType)
}

func buildQuestions(f QuestionsForm, typ string) (Questions, error) {
	if f.empty() {
		return Questions{}, invalid("content", "Please enter text content or upload a file")
	}

	n := DefaultQuestionNum
	if s := strings.TrimSpace(f.Count); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > MaxQuestionNum {
			return Questions{}, invalid("num_questions", "Number of questions must be between 1 and 20")
		}
		n = v
	}

	c, err := resolveContent(f.ContentForm)
	if err != nil {
		return Questions{}, err
	}

	req := Questions{
		Content:      c.Content,
		Type:         typ,
		NumQuestions: n,
		UploadMethod: c.Method,
		FileType:     c.FileType,
		FileName:     c.FileName,
	}
	return req, Validate(SchemaQuestions, req)
}

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return invalid("", "Please fill in all fields")
	}
	return nil
}

// ValidateSignup checks the signup form.
func ValidateSignup(name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" || confirm == "" {
		return invalid("", "Please fill in all fields")
	}
	if password != confirm {
		return invalid("confirm_password", "Passwords do not match!")
	}
	if len(password) < MinPasswordLen {
		return invalid("password", "Password must be at least 6 characters long")
	}
	return nil
}
