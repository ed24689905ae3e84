package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sevenOfTen = AnalysisInput{CompletedTasks: 7, TotalTasks: 10}

func TestNormalizeAnalysis_CurrentAnalysis(t *testing.T) {
	raw := json.RawMessage(`{"success": true, "analysis": {"current_analysis": {
		"productivity_score": 0.7, "status": "good", "recommendations": ["Keep going"]
	}}}`)

	a := NormalizeAnalysis(raw, sevenOfTen)
	assert.Equal(t, FromCurrentAnalysis, a.Source)
	assert.InDelta(t, 0.7, a.ProductivityScore, 1e-9)
	assert.Equal(t, "good", a.Status)
	assert.Equal(t, []string{"Keep going"}, a.Recommendations)
	assert.Equal(t, "Keep up the good work!", a.Insight)
}

func TestNormalizeAnalysis_EncodedString(t *testing.T) {
	raw := json.RawMessage(`{"success": true, "analysis": "{\"productivity_score\": 0.5, \"status\": \"average\"}"}`)

	a := NormalizeAnalysis(raw, sevenOfTen)
	assert.Equal(t, FromEncodedString, a.Source)
	assert.InDelta(t, 0.5, a.ProductivityScore, 1e-9)
	assert.Equal(t, "average", a.Status)
}

func TestNormalizeAnalysis_AnalysisObjectWithInsights(t *testing.T) {
	raw := json.RawMessage(`{"analysis": {
		"status": "good",
		"recommendations": ["a"],
		"autonomous_insights": {"trend": "up"},
		"agent_insights": {"ignored": true}
	}}`)

	a := NormalizeAnalysis(raw, sevenOfTen)
	assert.Equal(t, FromAnalysisObject, a.Source)
	// No score in the payload: derived from completion.
	assert.InDelta(t, 0.7, a.ProductivityScore, 1e-9)
	assert.Contains(t, a.AgentInsights, `"trend": "up"`)
	assert.NotContains(t, a.AgentInsights, "ignored")
}

func TestNormalizeAnalysis_AgentInsightsAlternateName(t *testing.T) {
	raw := json.RawMessage(`{"analysis": {"current_analysis": {"status": "ok"}, "agent_insights": {"note": "x"}}}`)

	a := NormalizeAnalysis(raw, sevenOfTen)
	assert.Equal(t, FromCurrentAnalysis, a.Source)
	assert.Contains(t, a.AgentInsights, `"note": "x"`)
}

func TestNormalizeAnalysis_PayloadRoot(t *testing.T) {
	raw := json.RawMessage(`{"productivity_score": 0.9, "status": "excellent"}`)

	a := NormalizeAnalysis(raw, sevenOfTen)
	assert.Equal(t, FromPayloadRoot, a.Source)
	assert.InDelta(t, 0.9, a.ProductivityScore, 1e-9)
	assert.Empty(t, a.AgentInsights)
}

func TestNormalizeAnalysis_Fallback(t *testing.T) {
	payloads := []string{
		`{"success": false}`,
		`{"analysis": "not json at all"}`,
		`not json`,
		`[1, 2]`,
	}
	for _, p := range payloads {
		a := NormalizeAnalysis(json.RawMessage(p), sevenOfTen)
		if a.Source != FromFallback {
			t.Errorf("%s: source = %q, want fallback", p, a.Source)
		}
		if a.ProductivityScore != 0.7 {
			t.Errorf("%s: score = %v, want 0.7", p, a.ProductivityScore)
		}
		if a.Status != "unknown" {
			t.Errorf("%s: status = %q, want unknown", p, a.Status)
		}
		if len(a.Recommendations) != 2 {
			t.Errorf("%s: expected two generic recommendations, got %v", p, a.Recommendations)
		}
	}
}

func TestNormalizeAnalysis_ZeroScoreUsesCompletion(t *testing.T) {
	raw := json.RawMessage(`{"analysis": {"current_analysis": {"productivity_score": 0}}}`)
	a := NormalizeAnalysis(raw, AnalysisInput{CompletedTasks: 1, TotalTasks: 4})
	assert.InDelta(t, 0.25, a.ProductivityScore, 1e-9)
}
