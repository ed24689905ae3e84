package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abhisek/studygenie/internal/requests"
)

// Client exposes one method per backend endpoint. Each returns the raw
// payload for the normalizer.
type Client struct {
	gw Gateway
}

// NewClient creates a Client on top of gw.
func NewClient(gw Gateway) *Client {
	return &Client{gw: gw}
}

// Endpoint returns the backend the client talks to.
func (c *Client) Endpoint() string {
	return c.gw.Endpoint()
}

func (c *Client) call(ctx context.Context, op Operation, method, path string, body any) (json.RawMessage, error) {
	resp, err := c.gw.Do(WithOperation(ctx, op), Request{Method: method, Path: path, Body: body})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// StudyPlan calls POST /study-plan.
func (c *Client) StudyPlan(ctx context.Context, req requests.StudyPlan) (json.RawMessage, error) {
	return c.call(ctx, OpStudyPlan, http.MethodPost, "/study-plan", req)
}

// AskDoubt calls POST /ask-doubt.
func (c *Client) AskDoubt(ctx context.Context, req requests.AskDoubt) (json.RawMessage, error) {
	return c.call(ctx, OpAskDoubt, http.MethodPost, "/ask-doubt", req)
}

// AnalyzeProgress calls POST /analyze-progress.
func (c *Client) AnalyzeProgress(ctx context.Context, req requests.Progress) (json.RawMessage, error) {
	return c.call(ctx, OpAnalyzeProgress, http.MethodPost, "/analyze-progress", req)
}

// UploadNotes calls POST /upload-notes.
func (c *Client) UploadNotes(ctx context.Context, req requests.Notes) (json.RawMessage, error) {
	return c.call(ctx, OpUploadNotes, http.MethodPost, "/upload-notes", req)
}

// GenerateQuestions calls POST /generate-questions.
func (c *Client) GenerateQuestions(ctx context.Context, req requests.Questions) (json.RawMessage, error) {
	return c.call(ctx, OpGenerateQuestions, http.MethodPost, "/generate-questions", req)
}

// GenerateMCQs calls POST /generate-mcqs.
func (c *Client) GenerateMCQs(ctx context.Context, req requests.Questions) (json.RawMessage, error) {
	return c.call(ctx, OpGenerateMCQs, http.MethodPost, "/generate-mcqs", req)
}

// SystemStatus calls GET /system-status.
func (c *Client) SystemStatus(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, OpSystemStatus, http.MethodGet, "/system-status", nil)
}

// TriggerDemo calls GET /demo.
func (c *Client) TriggerDemo(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, OpDemo, http.MethodGet, "/demo", nil)
}

// Health calls GET /.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, OpHealth, http.MethodGet, "/", nil)
}
