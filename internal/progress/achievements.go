package progress

// AchievementKind identifies a progress achievement.
type AchievementKind string

const (
	TaskMaster      AchievementKind = "task-master"
	HighAchiever    AchievementKind = "high-achiever"
	StudyMarathon   AchievementKind = "study-marathon"
	LaserFocus      AchievementKind = "laser-focus"
	ConsistencyKing AchievementKind = "consistency-king"
)

// AllAchievementKinds returns every achievement in display order.
func AllAchievementKinds() []AchievementKind {
	return []AchievementKind{TaskMaster, HighAchiever, StudyMarathon, LaserFocus, ConsistencyKing}
}

// DisplayName returns the achievement title.
func (k AchievementKind) DisplayName() string {
	switch k {
	case TaskMaster:
		return "Task Master"
	case HighAchiever:
		return "High Achiever"
	case StudyMarathon:
		return "Study Marathon"
	case LaserFocus:
		return "Laser Focus"
	case ConsistencyKing:
		return "Consistency King"
	default:
		return string(k)
	}
}

// Description explains what earned the achievement.
func (k AchievementKind) Description() string {
	switch k {
	case TaskMaster:
		return "Completed all tasks!"
	case HighAchiever:
		return "80%+ completion rate"
	case StudyMarathon:
		return "8+ hours of study"
	case LaserFocus:
		return "Exceptional focus level"
	case ConsistencyKing:
		return "7 days of tracking"
	default:
		return ""
	}
}

// Icon returns the display icon for the achievement.
func (k AchievementKind) Icon() string {
	switch k {
	case TaskMaster:
		return "👑"
	case HighAchiever:
		return "⭐"
	case StudyMarathon:
		return "⏱"
	case LaserFocus:
		return "🎯"
	case ConsistencyKing:
		return "📅"
	default:
		return "✦"
	}
}

// Achievement is an earned achievement.
type Achievement struct {
	Kind AchievementKind
}

func (a Achievement) Title() string       { return a.Kind.DisplayName() }
func (a Achievement) Description() string { return a.Kind.Description() }
func (a Achievement) Icon() string        { return a.Kind.Icon() }

// EvaluateAchievements checks every predicate independently against the
// latest snapshot and the history length, returning all that hold.
func EvaluateAchievements(latest Snapshot, historyLen int) []Achievement {
	completion := latest.CompletionPercent()
	checks := []struct {
		kind AchievementKind
		ok   bool
	}{
		{TaskMaster, completion >= 100},
		{HighAchiever, completion >= 80},
		{StudyMarathon, latest.StudyHours >= 8},
		{LaserFocus, latest.FocusLevel >= 9},
		{ConsistencyKing, historyLen >= HistoryCapacity},
	}

	var out []Achievement
	for _, c := range checks {
		if c.ok {
			out = append(out, Achievement{Kind: c.kind})
		}
	}
	return out
}
