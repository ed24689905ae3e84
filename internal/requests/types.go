// Package requests builds and validates the bodies sent to the backend.
// Form input arrives as raw strings; the builders apply the same defaults
// and limits the backend expects and return *ValidationError before
// anything is sent.
package requests

import "fmt"

// Difficulty of a subject in a study plan request.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// UploadMethod says where notes or question content came from.
type UploadMethod string

const (
	UploadText UploadMethod = "text"
	UploadFile UploadMethod = "file"
)

// Subject is one entry of a study plan request.
type Subject struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	ExamDate   *string    `json:"exam_date"`
}

// StudyPlan is the body of POST /study-plan.
type StudyPlan struct {
	Subjects   []Subject `json:"subjects"`
	DailyHours int       `json:"daily_hours"`
}

// AskDoubt is the body of POST /ask-doubt.
type AskDoubt struct {
	Question string `json:"question"`
}

// Progress is the body of POST /analyze-progress.
type Progress struct {
	CompletedTasks int     `json:"completed_tasks"`
	TotalTasks     int     `json:"total_tasks"`
	StudyHours     float64 `json:"study_hours"`
	FocusLevel     int     `json:"focus_level"`
	Tasks          []any   `json:"tasks"`
}

// Notes is the body of POST /upload-notes.
type Notes struct {
	Title        string       `json:"title"`
	Subject      string       `json:"subject"`
	Content      string       `json:"content"`
	UploadMethod UploadMethod `json:"upload_method"`
	FileType     string       `json:"file_type"`
	FileName     *string      `json:"file_name"`
}

// Questions is the body of POST /generate-questions and POST /generate-mcqs.
type Questions struct {
	Content      string       `json:"content"`
	Type         string       `json:"type"`
	NumQuestions int          `json:"num_questions"`
	UploadMethod UploadMethod `json:"upload_method"`
	FileType     string       `json:"file_type"`
	FileName     *string      `json:"file_name"`
}

// ValidationError reports user input that failed a local check. Message
// is meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
