// Package transport talks to the study planner backend over JSON/HTTP.
// Every failure, whether a network error or a non-2xx status, comes back
// as a single *Error so callers never have to tell them apart.
package transport

import (
	"context"
	"encoding/json"
)

// Gateway sends one request to the backend.
type Gateway interface {
	// Do sends req and returns the raw payload of a 2xx response.
	// Any other outcome is returned as *Error.
	Do(ctx context.Context, req Request) (*Response, error)

	// Endpoint returns the base URL requests are sent to.
	Endpoint() string
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string

	// Body is marshaled as JSON. Nil means no body.
	Body any
}

// Response is a successful backend reply.
type Response struct {
	Status int
	Body   json.RawMessage
}

// Operation names a backend call for logging and user notices.
type Operation string

const (
	OpStudyPlan         Operation = "study_plan"
	OpAskDoubt          Operation = "ask_doubt"
	OpAnalyzeProgress   Operation = "analyze_progress"
	OpUploadNotes       Operation = "upload_notes"
	OpGenerateQuestions Operation = "generate_questions"
	OpGenerateMCQs      Operation = "generate_mcqs"
	OpSystemStatus      Operation = "system_status"
	OpDemo              Operation = "demo"
	OpHealth            Operation = "health"
)

// Label returns the name used in user-facing messages.
func (o Operation) Label() string {
	switch o {
	case OpStudyPlan:
		return "Study plan generation"
	case OpAskDoubt:
		return "Chat"
	case OpAnalyzeProgress:
		return "Progress analysis"
	case OpUploadNotes:
		return "Notes upload"
	case OpGenerateQuestions:
		return "Question generation"
	case OpGenerateMCQs:
		return "MCQ generation"
	case OpSystemStatus:
		return "System status"
	case OpDemo:
		return "Demo trigger"
	case OpHealth:
		return "Health check"
	default:
		return string(o)
	}
}
