package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlan_ScheduleTableWinsOverPlan(t *testing.T) {
	raw := json.RawMessage(`{
		"success": true,
		"formatted_schedule": {"schedule_table": {
			"Monday": [{"time": "9:00", "task": "Math"}],
			"Tuesday": [{}]
		}},
		"plan": {"daily_study_plan": [{"task_name": "ignored"}]}
	}`)

	res := NormalizePlan(raw)
	table, ok := res.View.(ScheduleTable)
	require.True(t, ok, "expected ScheduleTable, got %T", res.View)
	require.Len(t, table.Days, 2)

	assert.Equal(t, "Monday", table.Days[0].Day)
	assert.Equal(t, ScheduledTask{
		Time:        "9:00",
		Task:        "Math",
		Description: NoDescription,
		Duration:    NotSpecified,
		Priority:    DefaultPriority,
	}, table.Days[0].Tasks[0])

	assert.Equal(t, "Tuesday", table.Days[1].Day)
	assert.Equal(t, NotScheduled, table.Days[1].Tasks[0].Time)
	assert.Equal(t, UnnamedTask, table.Days[1].Tasks[0].Task)
}

func TestNormalizePlan_ComplexPlanFromEncodedString(t *testing.T) {
	plan := `{
		"daily_study_plan": [
			{"task_name": "Algebra", "day_of_week": "Monday", "start_time": "09:00", "end_time": "10:30", "estimated_duration_minutes": 90},
			{"task_name": "Physics", "day_of_week": "Tuesday", "estimated_duration_minutes": 0},
			{"day_of_week": "Monday", "start_time": "11:00"},
			{"task_name": "Free"}
		],
		"general_reminders": [{"name": "Hydrate"}]
	}`
	body, err := json.Marshal(map[string]any{"success": true, "plan": plan})
	require.NoError(t, err)

	res := NormalizePlan(body)
	cp, ok := res.View.(ComplexPlan)
	require.True(t, ok, "expected ComplexPlan, got %T", res.View)

	require.Len(t, cp.Days, 3)
	assert.Equal(t, "Monday", cp.Days[0].Day)
	assert.Equal(t, "Tuesday", cp.Days[1].Day)
	assert.Equal(t, Unscheduled, cp.Days[2].Day)

	monday := cp.Days[0].Tasks
	require.Len(t, monday, 2)
	assert.Equal(t, "Algebra", monday[0].Name)
	assert.Equal(t, "09:00 - 10:30", monday[0].TimeRange)
	assert.Equal(t, "1h 30m", monday[0].Duration)
	assert.Equal(t, DefaultCategory, monday[0].Category)
	assert.Equal(t, UnnamedTask, monday[1].Name)
	assert.Equal(t, NotScheduled, monday[1].TimeRange)
	assert.Equal(t, NotSpecified, monday[1].Duration)

	assert.Equal(t, "0h 0m", cp.Days[1].Tasks[0].Duration)

	require.Len(t, cp.Reminders, 1)
	assert.Equal(t, Reminder{
		Name:        "Hydrate",
		Description: NoDescription,
		Priority:    "Medium",
		Category:    "General",
		Recurring:   "One-time",
	}, cp.Reminders[0])
}

func TestNormalizePlan_StructuredPlan(t *testing.T) {
	raw := json.RawMessage(`{
		"success": true,
		"plan": {
			"daily_tasks": [
				{"name": "Read ch1", "deadline": "Monday 5pm", "estimated_duration_minutes": 45},
				{"name": "Quiz"},
				{"name": "Review", "deadline": "Monday 9pm"}
			],
			"general_reminders": [{"name": "Sleep"}]
		}
	}`)

	res := NormalizePlan(raw)
	sp, ok := res.View.(StructuredPlan)
	require.True(t, ok, "expected StructuredPlan, got %T", res.View)

	require.Len(t, sp.Days, 2)
	assert.Equal(t, "Monday", sp.Days[0].Day)
	require.Len(t, sp.Days[0].Tasks, 2)
	assert.Equal(t, "Read ch1", sp.Days[0].Tasks[0].Name)
	assert.Equal(t, "Review", sp.Days[0].Tasks[1].Name)
	assert.Equal(t, "Monday 5pm", sp.Days[0].Tasks[0].Deadline)
	assert.Equal(t, "0h 45m", sp.Days[0].Tasks[0].Duration)

	assert.Equal(t, Unscheduled, sp.Days[1].Day)
	assert.Equal(t, NoDeadline, sp.Days[1].Tasks[0].Deadline)
	assert.Equal(t, NoDuration, sp.Days[1].Tasks[0].Duration)

	require.Len(t, sp.Reminders, 1)
	assert.Equal(t, "Low", sp.Reminders[0].Priority)
}

func TestNormalizePlan_GenericPlan(t *testing.T) {
	raw := json.RawMessage(`{
		"plan": {
			"study_tips": [{"title": "Pomodoro", "description": "25 min"}, {"x": 1}, "sleep well"],
			"weekly_goal": {"hours": 10},
			"motto": "keep going"
		}
	}`)

	res := NormalizePlan(raw)
	gp, ok := res.View.(GenericPlan)
	require.True(t, ok, "expected GenericPlan, got %T", res.View)
	require.Len(t, gp.Sections, 3)

	assert.Equal(t, "STUDY TIPS", gp.Sections[0].Title)
	assert.Equal(t, SectionList, gp.Sections[0].Kind)
	assert.Equal(t, []string{"Pomodoro: 25 min", `Item: {"x":1}`, "sleep well"}, gp.Sections[0].Items)

	assert.Equal(t, "WEEKLY GOAL", gp.Sections[1].Title)
	assert.Equal(t, SectionJSON, gp.Sections[1].Kind)
	assert.Contains(t, gp.Sections[1].Text, `"hours": 10`)

	assert.Equal(t, "MOTTO", gp.Sections[2].Title)
	assert.Equal(t, SectionText, gp.Sections[2].Kind)
	assert.Equal(t, "keep going", gp.Sections[2].Text)
}

func TestNormalizePlan_PlainTextVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"prose", `{"plan": "Just study every day"}`, "Just study every day"},
		{"numeric string", `{"plan": "42"}`, "42"},
		{"encoded null", `{"plan": "null"}`, "null"},
		{"no plan", `{"success": true}`, PlanGeneratedText},
		{"empty plan", `{"plan": ""}`, PlanGeneratedText},
		{"unsuccessful keeps raw plan", `{"success": false, "plan": "{\"daily_tasks\":[1]}"}`, `{"daily_tasks":[1]}`},
		{"unsuccessful without plan", `{"success": false}`, PlanGeneratedText},
		{"not json", `oops`, "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NormalizePlan(json.RawMessage(tt.raw))
			pt, ok := res.View.(PlainText)
			if !ok {
				t.Fatalf("expected PlainText, got %T", res.View)
			}
			if pt.Text != tt.want {
				t.Errorf("text = %q, want %q", pt.Text, tt.want)
			}
		})
	}
}

func TestNormalizePlan_CalendarAnnotation(t *testing.T) {
	res := NormalizePlan(json.RawMessage(`{
		"plan": "Study",
		"calendar_events": {"status": "success", "events_created": 3, "calendar_integration": "simulated"}
	}`))
	require.NotNil(t, res.Calendar)
	assert.Equal(t, CalendarAnnotation{
		EventsCreated: 3,
		Message:       "Calendar events created successfully",
		Simulated:     true,
	}, *res.Calendar)

	res = NormalizePlan(json.RawMessage(`{"plan": "Study", "calendar_events": {"status": "failed"}}`))
	assert.Nil(t, res.Calendar)
}

func TestNormalizePlan_AlwaysProducesAView(t *testing.T) {
	payloads := []string{
		``,
		`null`,
		`[]`,
		`{"formatted_schedule": {"schedule_table": {"Mon": "not a list"}}}`,
		`{"plan": {"daily_study_plan": "yes"}}`,
		`{"plan": [1, 2, 3]}`,
		`{"plan": true}`,
		`{"plan": {"daily_study_plan": [{"estimated_duration_minutes": 1e30}]}}`,
	}
	for _, p := range payloads {
		res := NormalizePlan(json.RawMessage(p))
		if res.View == nil {
			t.Errorf("payload %q produced no view", p)
		}
	}
}

func TestNormalizePlan_OutOfRangeDurationFallsBack(t *testing.T) {
	raw := json.RawMessage(`{"plan": {"daily_study_plan": [
		{"task_name": "Huge", "day_of_week": "Monday", "estimated_duration_minutes": 1e30},
		{"task_name": "Long", "day_of_week": "Monday", "estimated_duration_minutes": 3000}
	]}}`)
	cp, ok := NormalizePlan(raw).View.(ComplexPlan)
	require.True(t, ok)
	require.Len(t, cp.Days[0].Tasks, 2)
	assert.Equal(t, NotSpecified, cp.Days[0].Tasks[0].Duration)
	assert.Equal(t, "50h 0m", cp.Days[0].Tasks[1].Duration)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{90, "1h 30m"},
		{0, "0h 0m"},
		{125, "2h 5m"},
		{59, "0h 59m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
