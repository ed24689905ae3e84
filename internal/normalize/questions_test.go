package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuestions_MCQs(t *testing.T) {
	raw := json.RawMessage(`{
		"success": true,
		"total_generated": 2,
		"questions": [
			{"question": "2+2?", "options": ["3", "4", "5"], "correct_answer": "B", "difficulty": "Easy", "explanation": "basic"},
			{}
		]
	}`)

	list := NormalizeQuestions(raw, KindMCQs)
	require.False(t, list.Failed)
	assert.Equal(t, 2, list.TotalGenerated)
	assert.Equal(t, "mcq", list.Type)
	require.Len(t, list.Questions, 2)

	q := list.Questions[0]
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, "Easy", q.Difficulty)
	assert.Equal(t, "basic", q.Explanation)
	assert.Equal(t, []Option{
		{Letter: "A", Text: "3"},
		{Letter: "B", Text: "4", Correct: true},
		{Letter: "C", Text: "5"},
	}, q.Options)

	empty := list.Questions[1]
	assert.Equal(t, 2, empty.Number)
	assert.Equal(t, "Unknown", empty.Type)
	assert.Equal(t, "Medium", empty.Difficulty)
	assert.Equal(t, "No question text", empty.Text)
	assert.Empty(t, empty.Options)
	assert.Empty(t, empty.CorrectAnswer)
}

func TestNormalizeQuestions_TotalDefaultsToCount(t *testing.T) {
	raw := json.RawMessage(`{"success": true, "type": "short", "questions": [{"question": "Why?"}]}`)

	list := NormalizeQuestions(raw, KindQuestions)
	assert.Equal(t, 1, list.TotalGenerated)
	assert.Equal(t, "short", list.Type)
}

func TestNormalizeQuestions_Failures(t *testing.T) {
	tests := []struct {
		raw  string
		kind QuestionKind
		want string
	}{
		{`{"success": true, "questions": []}`, KindQuestions, "Failed to generate questions or no questions returned"},
		{`{"success": false, "questions": [{}]}`, KindMCQs, "Failed to generate MCQs or no MCQs returned"},
		{`{}`, KindMCQs, "Failed to generate MCQs or no MCQs returned"},
		{`garbage`, KindQuestions, "Failed to generate questions or no questions returned"},
	}
	for _, tt := range tests {
		list := NormalizeQuestions(json.RawMessage(tt.raw), tt.kind)
		if !list.Failed {
			t.Errorf("%s: expected failure", tt.raw)
		}
		if list.Message != tt.want {
			t.Errorf("%s: message = %q, want %q", tt.raw, list.Message, tt.want)
		}
	}
}

func TestNormalizeNotes(t *testing.T) {
	raw := json.RawMessage(`{"success": true, "processing_result": {
		"content_length": 1200,
		"upload_method": "file",
		"file_type": "application/pdf",
		"key_topics": ["cells", "mitosis"]
	}}`)

	n := NormalizeNotes(raw)
	require.True(t, n.OK)
	assert.Equal(t, "Notes processed successfully", n.Message)
	assert.Equal(t, "General", n.Subject)
	assert.Equal(t, 1200, n.ContentLength)
	assert.Equal(t, "File Upload", n.MethodLabel())
	assert.Equal(t, "application/pdf", n.FileType)
	assert.Equal(t, []string{"cells", "mitosis"}, n.KeyTopics)
	assert.Len(t, n.NextSteps, 4)

	n = NormalizeNotes(json.RawMessage(`{"success": true, "processing_result": {"upload_method": "text"}}`))
	assert.Equal(t, "Text Input", n.MethodLabel())
	assert.Len(t, n.NextSteps, 3)
}

func TestNormalizeNotes_Failure(t *testing.T) {
	n := NormalizeNotes(json.RawMessage(`{"success": false, "processing_result": {"message": "too short"}}`))
	assert.False(t, n.OK)
	assert.Equal(t, "too short", n.Message)

	n = NormalizeNotes(json.RawMessage(`{"success": false}`))
	assert.Equal(t, "Failed to process notes", n.Message)
}

func TestNormalizeStatus(t *testing.T) {
	raw := json.RawMessage(`{
		"success": true,
		"autonomous_agents": {
			"planner": {"name": "Planner Agent", "status": "busy"},
			"tracker": {}
		},
		"recent_events": [{"type": "plan_created", "source": "planner"}]
	}`)

	st := NormalizeStatus(raw)
	assert.Equal(t, 2, st.AgentCount())
	assert.Equal(t, Agent{Key: "planner", Name: "Planner Agent", Status: "busy"}, st.Agents[0])
	assert.Equal(t, Agent{Key: "tracker", Name: "tracker", Status: "idle"}, st.Agents[1])
	require.Len(t, st.Events, 1)
	assert.Equal(t, "plan_created - planner", st.Events[0].String())

	assert.Zero(t, NormalizeStatus(json.RawMessage(`{"success": false}`)).AgentCount())
}
