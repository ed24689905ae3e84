// Package demo answers backend calls from canned data so the client can
// be explored without a running backend.
package demo

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/abhisek/studygenie/internal/transport"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// Endpoint is what the demo gateway reports as its base URL.
const Endpoint = "demo://local"

const maxEvents = 5

type chatFixture struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

type event struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

// Gateway is a transport.Gateway backed by embedded fixtures. It keeps a
// little state so that repeated calls look alive: chat answers rotate and
// triggered events show up in the system status.
type Gateway struct {
	// Latency is added to every call to mimic a real backend.
	Latency time.Duration

	mu        sync.Mutex
	chatTurn  int
	events    []event
	plan      json.RawMessage
	analysis  gjson.Result
	chat      []chatFixture
	questions json.RawMessage
	mcqs      json.RawMessage
	agents    json.RawMessage
}

// NewGateway loads the fixtures. It only fails if the embedded files are
// corrupt.
func NewGateway() (*Gateway, error) {
	g := &Gateway{
		events: []event{{Type: "system_started", Source: "orchestrator"}},
	}

	var err error
	if g.plan, err = load("study_plan.json"); err != nil {
		return nil, err
	}
	raw, err := load("progress_analysis.json")
	if err != nil {
		return nil, err
	}
	g.analysis = gjson.ParseBytes(raw)
	raw, err = load("chat.json")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &g.chat); err != nil {
		return nil, fmt.Errorf("decode chat fixture: %w", err)
	}
	if g.questions, err = load("questions.json"); err != nil {
		return nil, err
	}
	if g.mcqs, err = load("mcqs.json"); err != nil {
		return nil, err
	}
	if g.agents, err = load("agents.json"); err != nil {
		return nil, err
	}
	return g, nil
}

func load(name string) (json.RawMessage, error) {
	b, err := fixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("fixture %s is not valid JSON", name)
	}
	return b, nil
}

func (g *Gateway) Endpoint() string {
	return Endpoint
}

func (g *Gateway) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	op := transport.OperationFrom(ctx)
	if g.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, &transport.Error{Op: op, Message: ctx.Err().Error(), Err: ctx.Err()}
		case <-time.After(g.Latency):
		}
	}

	var body gjson.Result
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &transport.Error{Op: op, Message: err.Error(), Err: err}
		}
		body = gjson.ParseBytes(b)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var payload any
	switch req.Path {
	case "/":
		payload = map[string]any{"status": "running", "mode": "demo"}
	case "/study-plan":
		payload = g.studyPlan(body)
	case "/ask-doubt":
		payload = g.askDoubt(body)
	case "/analyze-progress":
		payload = g.analyzeProgress(body)
	case "/upload-notes":
		payload = g.uploadNotes(body)
	case "/generate-questions":
		payload = g.generate(body, g.questions, textOr(body.Get("type"), "mixed"))
	case "/generate-mcqs":
		payload = g.generate(body, g.mcqs, "mcq")
	case "/system-status":
		payload = g.systemStatus()
	case "/demo":
		payload = g.triggerDemo()
	default:
		return nil, &transport.Error{Op: op, Status: http.StatusNotFound, Message: "Not Found"}
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return nil, &transport.Error{Op: op, Message: err.Error(), Err: err}
	}
	return &transport.Response{Status: http.StatusOK, Body: out}, nil
}

func (g *Gateway) studyPlan(body gjson.Result) map[string]any {
	g.record("study_plan_created", "task_scheduler")
	tasks := gjson.GetBytes(g.plan, "daily_tasks.#").Int()
	return map[string]any{
		"success": true,
		"plan":    string(g.plan),
		"calendar_events": map[string]any{
			"status":               "success",
			"events_created":       tasks,
			"message":              fmt.Sprintf("Created %d calendar events for %d subject(s)", tasks, len(body.Get("subjects").Array())),
			"calendar_integration": "simulated",
		},
		"autonomous_monitoring": "enabled",
	}
}

func (g *Gateway) askDoubt(body gjson.Result) map[string]any {
	q := strings.TrimSpace(body.Get("question").String())
	for _, c := range g.chat {
		if strings.EqualFold(c.Question, q) {
			return map[string]any{"success": true, "answer": c.Response}
		}
	}
	c := g.chat[g.chatTurn%len(g.chat)]
	g.chatTurn++
	return map[string]any{
		"success": true,
		"answer":  fmt.Sprintf("Here is something related from the demo tutor (%q):\n\n%s", c.Question, c.Response),
	}
}

func (g *Gateway) analyzeProgress(body gjson.Result) map[string]any {
	completed := body.Get("completed_tasks").Float()
	total := body.Get("total_tasks").Float()
	score := 0.0
	if total > 0 {
		score = math.Round(completed/total*100) / 100
	}

	status := "needs_improvement"
	switch {
	case score >= 0.8:
		status = "excellent"
	case score >= 0.6:
		status = "good"
	case score >= 0.4:
		status = "average"
	}

	var insights []string
	for _, in := range g.analysis.Get("productivity_insights").Array() {
		insights = append(insights, in.Get("message").String())
	}
	var recs []string
	for _, r := range g.analysis.Get("recommendations").Array() {
		recs = append(recs, r.String())
	}

	if score < 0.4 {
		g.record("low_productivity_detected", "progress_analyzer")
	}
	return map[string]any{
		"success": true,
		"analysis": map[string]any{
			"current_analysis": map[string]any{
				"productivity_score": score,
				"status":             status,
				"insight":            fmt.Sprintf("You completed %.0f of %.0f tasks with %.1f study hours.", completed, total, body.Get("study_hours").Float()),
				"recommendations":    recs,
			},
			"autonomous_insights": map[string]any{
				"behavior_coach": insights,
			},
		},
	}
}

func (g *Gateway) uploadNotes(body gjson.Result) map[string]any {
	content := body.Get("content").String()
	preview := content
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	g.record("notes_uploaded", "knowledge_curator")
	return map[string]any{
		"success": true,
		"processing_result": map[string]any{
			"message":                   "Notes processed and indexed for the tutor",
			"subject":                   textOr(body.Get("subject"), "General"),
			"content_length":            len(content),
			"upload_method":             textOr(body.Get("upload_method"), "text"),
			"file_type":                 body.Get("file_type").String(),
			"processed_content_preview": preview,
			"key_topics":                keyTopics(content),
		},
	}
}

func (g *Gateway) generate(body gjson.Result, pool json.RawMessage, typ string) map[string]any {
	n := int(body.Get("num_questions").Int())
	items := gjson.ParseBytes(pool).Array()
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	questions := make([]json.RawMessage, 0, n)
	for _, q := range items[:n] {
		questions = append(questions, json.RawMessage(q.Raw))
	}
	return map[string]any{
		"success":         true,
		"questions":       questions,
		"total_generated": len(questions),
		"type":            typ,
	}
}

func (g *Gateway) systemStatus() map[string]any {
	events := make([]event, len(g.events))
	copy(events, g.events)
	return map[string]any{
		"success":           true,
		"autonomous_agents": g.agents,
		"recent_events":     events,
		"system_health":     "operational",
	}
}

func (g *Gateway) triggerDemo() map[string]any {
	g.record("low_productivity_detected", "demo")
	g.record("deadline_approaching", "demo")
	return map[string]any{
		"success":                  true,
		"message":                  "Autonomous behavior triggered!",
		"events_posted":            2,
		"check_system_status":      "/system-status",
		"expected_agent_responses": []string{"Behavior Coach", "Task Scheduler", "Progress Analyzer"},
	}
}

// record appends an event, keeping only the most recent few.
func (g *Gateway) record(typ, source string) {
	g.events = append(g.events, event{Type: typ, Source: source})
	if len(g.events) > maxEvents {
		g.events = g.events[len(g.events)-maxEvents:]
	}
}

func textOr(r gjson.Result, fallback string) string {
	if s := strings.TrimSpace(r.String()); s != "" {
		return s
	}
	return fallback
}

// keyTopics picks capitalized words as a stand-in for topic extraction.
func keyTopics(content string) []string {
	seen := map[string]bool{}
	var topics []string
	for _, w := range strings.Fields(content) {
		w = strings.Trim(w, ".,;:!?()[]{}\"'#*")
		if len(w) < 4 || strings.ToUpper(w[:1]) != w[:1] || strings.ToLower(w[:1]) == w[:1] {
			continue
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		topics = append(topics, w)
		if len(topics) == 5 {
			break
		}
	}
	return topics
}

var _ transport.Gateway = (*Gateway)(nil)
