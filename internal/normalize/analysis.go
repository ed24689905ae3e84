package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// AnalysisSource records where in the payload the analysis was found.
type AnalysisSource string

const (
	FromCurrentAnalysis AnalysisSource = "current_analysis"
	FromEncodedString   AnalysisSource = "encoded"
	FromAnalysisObject  AnalysisSource = "analysis"
	FromPayloadRoot     AnalysisSource = "root"
	FromFallback        AnalysisSource = "fallback"
)

// Recommendations used when the backend returns nothing usable.
var FallbackRecommendations = []string{
	"Continue working on your tasks",
	"Track your progress regularly",
}

// AnalysisInput carries the task counts the analysis was requested for.
type AnalysisInput struct {
	CompletedTasks int
	TotalTasks     int
}

// CompletionRatio returns completed/total in [0, 1].
func (in AnalysisInput) CompletionRatio() float64 {
	if in.TotalTasks <= 0 {
		return 0
	}
	return float64(in.CompletedTasks) / float64(in.TotalTasks)
}

// Analysis is the normalized progress-analysis view.
type Analysis struct {
	ProductivityScore float64
	Status            string
	Insight           string
	Recommendations   []string
	// AgentInsights is pretty-printed JSON, empty when the backend sent none.
	AgentInsights string
	Source        AnalysisSource
}

var analysisStrategies = []struct {
	source AnalysisSource
	try    attempt
}{
	{FromCurrentAnalysis, func(p gjson.Result) (gjson.Result, bool) {
		a := p.Get("analysis.current_analysis")
		return a, a.IsObject()
	}},
	{FromEncodedString, func(p gjson.Result) (gjson.Result, bool) {
		a := p.Get("analysis")
		if a.Type != gjson.String {
			return gjson.Result{}, false
		}
		parsed, ok := parseEmbedded(a.Str)
		return parsed, ok && parsed.IsObject()
	}},
	{FromAnalysisObject, func(p gjson.Result) (gjson.Result, bool) {
		a := p.Get("analysis")
		return a, a.IsObject()
	}},
	{FromPayloadRoot, func(p gjson.Result) (gjson.Result, bool) {
		if p.Get("productivity_score").Exists() || p.Get("recommendations").IsArray() {
			return p, true
		}
		return gjson.Result{}, false
	}},
}

// NormalizeAnalysis locates the analysis object inside a payload and
// always returns a renderable result, synthesizing one from the task
// counts when nothing usable is found.
func NormalizeAnalysis(raw json.RawMessage, in AnalysisInput) Analysis {
	completionScore := in.CompletionRatio()
	fallback := Analysis{
		ProductivityScore: completionScore,
		Status:            "unknown",
		Insight:           "Keep up the good work!",
		Recommendations:   append([]string(nil), FallbackRecommendations...),
		Source:            FromFallback,
	}
	if !gjson.ValidBytes(raw) {
		return fallback
	}
	payload := gjson.ParseBytes(raw)
	if !payload.IsObject() {
		return fallback
	}

	for _, s := range analysisStrategies {
		obj, ok := s.try(payload)
		if !ok {
			continue
		}
		a := Analysis{
			ProductivityScore: completionScore,
			Status:            textOr(obj.Get("status"), "unknown"),
			Insight:           textOr(obj.Get("insight"), "Keep up the good work!"),
			Recommendations:   stringList(obj.Get("recommendations")),
			AgentInsights:     agentInsights(payload.Get("analysis")),
			Source:            s.source,
		}
		if score, ok := number(obj.Get("productivity_score")); ok && score != 0 {
			a.ProductivityScore = score
		}
		return a
	}
	return fallback
}

func agentInsights(analysis gjson.Result) string {
	if !analysis.IsObject() {
		return ""
	}
	field := func(key string) attempt {
		return func(r gjson.Result) (gjson.Result, bool) {
			v := r.Get(key)
			return v, truthy(v)
		}
	}
	v, ok := firstOf(analysis, field("autonomous_insights"), field("agent_insights"))
	switch {
	case !ok:
		return ""
	case v.IsObject() && !hasKeys(v):
		return ""
	case v.Type == gjson.JSON:
		return prettyJSON(v.Raw)
	}
	return scalarText(v)
}
