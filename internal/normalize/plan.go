// Package normalize maps loosely shaped backend payloads to typed view models.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// PlanKind names a PlanView variant.
type PlanKind string

const (
	KindScheduleTable PlanKind = "schedule-table"
	KindComplex       PlanKind = "complex"
	KindStructured    PlanKind = "structured"
	KindGeneric       PlanKind = "generic"
	KindPlainText     PlanKind = "plain-text"
)

// PlanView is the normalized form of a study plan payload. The concrete
// type is one of ScheduleTable, ComplexPlan, StructuredPlan, GenericPlan
// or PlainText.
type PlanView interface {
	Kind() PlanKind
	planView()
}

// Placeholders used when a task field is missing.
const (
	NotScheduled      = "Not scheduled"
	NotSpecified      = "Not specified"
	NoDescription     = "No description"
	NoDuration        = "No duration"
	NoDeadline        = "No deadline"
	UnnamedTask       = "Unnamed Task"
	Unscheduled       = "Unscheduled"
	DefaultPriority   = "Medium"
	DefaultCategory   = "Study"
	PlanGeneratedText = "Study plan generated successfully! Check the response for details."
)

// ScheduledTask is one row of a pre-formatted schedule table.
type ScheduledTask struct {
	Time        string
	Task        string
	Description string
	Duration    string
	Priority    string
}

// ScheduleDay groups schedule rows under a day label.
type ScheduleDay struct {
	Day   string
	Tasks []ScheduledTask
}

// ScheduleTable is a schedule the backend already laid out by day.
type ScheduleTable struct {
	Days []ScheduleDay
}

// DetailedTask is a task with an explicit time slot.
type DetailedTask struct {
	Name        string
	Description string
	TimeRange   string
	Duration    string
	Priority    string
	Category    string
}

// DetailedDay groups detailed tasks under their day of week.
type DetailedDay struct {
	Day   string
	Tasks []DetailedTask
}

// Reminder is a general, non-scheduled reminder attached to a plan.
type Reminder struct {
	Name        string
	Description string
	Priority    string
	Category    string
	Recurring   string
}

// ComplexPlan is a day-of-week plan with time slots and reminders.
type ComplexPlan struct {
	Days      []DetailedDay
	Reminders []Reminder
}

// Task is a flat task with a deadline.
type Task struct {
	Name        string
	Description string
	Deadline    string
	Duration    string
	Priority    string
}

// TaskDay groups tasks by the day portion of their deadline.
type TaskDay struct {
	Day   string
	Tasks []Task
}

// StructuredPlan is a deadline-driven task list.
type StructuredPlan struct {
	Days      []TaskDay
	Reminders []Reminder
}

// SectionKind describes how a generic section's value is shaped.
type SectionKind int

const (
	SectionText SectionKind = iota
	SectionList
	SectionJSON
)

// Section is one top-level key of a plan object of unknown shape.
type Section struct {
	Title string
	Kind  SectionKind
	Items []string
	Text  string
}

// GenericPlan renders any other plan object section by section.
type GenericPlan struct {
	Sections []Section
}

// PlainText is the lowest-fidelity plan view.
type PlainText struct {
	Text string
}

func (ScheduleTable) Kind() PlanKind  { return KindScheduleTable }
func (ComplexPlan) Kind() PlanKind    { return KindComplex }
func (StructuredPlan) Kind() PlanKind { return KindStructured }
func (GenericPlan) Kind() PlanKind    { return KindGeneric }
func (PlainText) Kind() PlanKind      { return KindPlainText }

func (ScheduleTable) planView()  {}
func (ComplexPlan) planView()    {}
func (StructuredPlan) planView() {}
func (GenericPlan) planView()    {}
func (PlainText) planView()      {}

// CalendarAnnotation reports calendar events the backend created for a plan.
type CalendarAnnotation struct {
	EventsCreated int
	Message       string
	Simulated     bool
}

// PlanResult is a normalized plan plus optional calendar metadata.
type PlanResult struct {
	View     PlanView
	Calendar *CalendarAnnotation
}

// NormalizePlan maps a plan payload to exactly one PlanView. Rules are
// evaluated in order and the first match wins.
func NormalizePlan(raw json.RawMessage) PlanResult {
	if !gjson.ValidBytes(raw) {
		return PlanResult{View: PlainText{Text: fallbackText(string(raw))}}
	}
	payload := gjson.ParseBytes(raw)

	if explicitlyFalse(payload.Get("success")) {
		return PlanResult{View: PlainText{Text: textOr(payload.Get("plan"), PlanGeneratedText)}}
	}

	res := PlanResult{View: planView(payload)}
	res.Calendar = calendarAnnotation(payload.Get("calendar_events"))
	return res
}

func planView(payload gjson.Result) PlanView {
	if table := payload.Get("formatted_schedule.schedule_table"); table.IsObject() {
		return scheduleTable(table)
	}

	plan := payload.Get("plan")
	if !truthy(plan) {
		return PlainText{Text: PlanGeneratedText}
	}

	text := plan.Raw
	if plan.Type == gjson.String {
		text = plan.Str
	}
	parsed, ok := parseEmbedded(text)
	if !ok {
		return PlainText{Text: text}
	}

	switch {
	case parsed.Type == gjson.Null:
		return PlainText{Text: text}
	case parsed.IsObject() && truthy(parsed.Get("daily_study_plan")):
		return complexPlan(parsed)
	case parsed.IsObject() && truthy(parsed.Get("daily_tasks")):
		return structuredPlan(parsed)
	case parsed.IsObject() || parsed.IsArray():
		return genericPlan(parsed)
	}
	return PlainText{Text: scalarText(parsed)}
}

func scheduleTable(table gjson.Result) ScheduleTable {
	var out ScheduleTable
	table.ForEach(func(day, tasks gjson.Result) bool {
		d := ScheduleDay{Day: day.String()}
		if !tasks.IsArray() {
			out.Days = append(out.Days, d)
			return true
		}
		tasks.ForEach(func(_, t gjson.Result) bool {
			d.Tasks = append(d.Tasks, ScheduledTask{
				Time:        textOr(t.Get("time"), NotScheduled),
				Task:        textOr(t.Get("task"), UnnamedTask),
				Description: textOr(t.Get("description"), NoDescription),
				Duration:    textOr(t.Get("duration"), NotSpecified),
				Priority:    textOr(t.Get("priority"), DefaultPriority),
			})
			return true
		})
		out.Days = append(out.Days, d)
		return true
	})
	return out
}

func complexPlan(plan gjson.Result) ComplexPlan {
	var out ComplexPlan
	index := map[string]int{}
	tasks := plan.Get("daily_study_plan")
	if !tasks.IsArray() {
		tasks = gjson.Result{}
	}
	tasks.ForEach(func(_, t gjson.Result) bool {
		if !t.IsObject() {
			return true
		}
		day := textOr(t.Get("day_of_week"), Unscheduled)
		i, ok := index[day]
		if !ok {
			i = len(out.Days)
			index[day] = i
			out.Days = append(out.Days, DetailedDay{Day: day})
		}
		out.Days[i].Tasks = append(out.Days[i].Tasks, DetailedTask{
			Name:        textOr(t.Get("task_name"), UnnamedTask),
			Description: textOr(t.Get("description"), NoDescription),
			TimeRange:   timeRange(t.Get("start_time"), t.Get("end_time")),
			Duration:    durationOr(t.Get("estimated_duration_minutes"), NotSpecified),
			Priority:    textOr(t.Get("priority"), DefaultPriority),
			Category:    textOr(t.Get("category"), DefaultCategory),
		})
		return true
	})
	out.Reminders = reminders(plan.Get("general_reminders"), DefaultPriority)
	return out
}

func structuredPlan(plan gjson.Result) StructuredPlan {
	var out StructuredPlan
	index := map[string]int{}
	tasks := plan.Get("daily_tasks")
	if !tasks.IsArray() {
		tasks = gjson.Result{}
	}
	tasks.ForEach(func(_, t gjson.Result) bool {
		if !t.IsObject() {
			return true
		}
		deadline := t.Get("deadline")
		day := Unscheduled
		if truthy(deadline) {
			day, _, _ = strings.Cut(scalarText(deadline), " ")
		}
		i, ok := index[day]
		if !ok {
			i = len(out.Days)
			index[day] = i
			out.Days = append(out.Days, TaskDay{Day: day})
		}
		out.Days[i].Tasks = append(out.Days[i].Tasks, Task{
			Name:        textOr(t.Get("name"), UnnamedTask),
			Description: textOr(t.Get("description"), NoDescription),
			Deadline:    textOr(deadline, NoDeadline),
			Duration:    durationOr(t.Get("estimated_duration_minutes"), NoDuration),
			Priority:    textOr(t.Get("priority"), DefaultPriority),
		})
		return true
	})
	// Deadline-driven plans list reminders as low priority unless told otherwise.
	out.Reminders = reminders(plan.Get("general_reminders"), "Low")
	return out
}

func reminders(list gjson.Result, priority string) []Reminder {
	var out []Reminder
	list.ForEach(func(_, r gjson.Result) bool {
		out = append(out, Reminder{
			Name:        textOr(r.Get("name"), "Reminder"),
			Description: textOr(r.Get("description"), NoDescription),
			Priority:    textOr(r.Get("priority"), priority),
			Category:    textOr(r.Get("category"), "General"),
			Recurring:   textOr(r.Get("recurring"), "One-time"),
		})
		return true
	})
	return out
}

func genericPlan(plan gjson.Result) GenericPlan {
	var out GenericPlan
	plan.ForEach(func(key, value gjson.Result) bool {
		title := key.String()
		if !key.Exists() {
			title = strconv.Itoa(len(out.Sections))
		}
		s := Section{Title: sectionLabel(title)}
		switch {
		case value.IsArray():
			s.Kind = SectionList
			value.ForEach(func(_, item gjson.Result) bool {
				if item.IsObject() {
					name := firstText(item, "Item", "name", "title")
					s.Items = append(s.Items, name+": "+textOr(item.Get("description"), compactJSON(item.Raw)))
				} else {
					s.Items = append(s.Items, scalarText(item))
				}
				return true
			})
		case value.IsObject():
			s.Kind = SectionJSON
			s.Text = prettyJSON(value.Raw)
		default:
			s.Kind = SectionText
			s.Text = scalarText(value)
		}
		out.Sections = append(out.Sections, s)
		return true
	})
	return out
}

func calendarAnnotation(cal gjson.Result) *CalendarAnnotation {
	if cal.Get("status").String() != "success" {
		return nil
	}
	count, _ := number(cal.Get("events_created"))
	return &CalendarAnnotation{
		EventsCreated: int(count),
		Message:       textOr(cal.Get("message"), "Calendar events created successfully"),
		Simulated:     cal.Get("calendar_integration").String() == "simulated",
	}
}

func timeRange(start, end gjson.Result) string {
	if !truthy(start) || !truthy(end) {
		return NotScheduled
	}
	return scalarText(start) + " - " + scalarText(end)
}

// FormatDuration renders a minute count as hours and minutes: 90 → "1h 30m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// maxMinutes bounds a displayable duration.
const maxMinutes = math.MaxInt32

// durationOr formats a minutes field, or returns fallback when the field is
// absent or not a usable number.
func durationOr(r gjson.Result, fallback string) string {
	m, ok := number(r)
	if !ok || m < 0 || math.IsNaN(m) || math.IsInf(m, 0) || m > maxMinutes {
		return fallback
	}
	return FormatDuration(int(math.Round(m)))
}

func fallbackText(s string) string {
	if strings.TrimSpace(s) == "" {
		return PlanGeneratedText
	}
	return s
}
