package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(as []Achievement) []AchievementKind {
	out := make([]AchievementKind, len(as))
	for i, a := range as {
		out[i] = a.Kind
	}
	return out
}

func TestEvaluateAchievements(t *testing.T) {
	tests := []struct {
		name       string
		snap       Snapshot
		historyLen int
		want       []AchievementKind
	}{
		{
			name:       "nothing earned",
			snap:       Snapshot{CompletedTasks: 1, TotalTasks: 10, StudyHours: 1, FocusLevel: 3},
			historyLen: 1,
			want:       []AchievementKind{},
		},
		{
			name:       "seventy percent is not high achiever",
			snap:       Snapshot{CompletedTasks: 7, TotalTasks: 10, StudyHours: 5, FocusLevel: 8},
			historyLen: 1,
			want:       []AchievementKind{},
		},
		{
			name:       "full completion earns both completion badges",
			snap:       Snapshot{CompletedTasks: 4, TotalTasks: 4, StudyHours: 1, FocusLevel: 5},
			historyLen: 1,
			want:       []AchievementKind{TaskMaster, HighAchiever},
		},
		{
			name:       "everything",
			snap:       Snapshot{CompletedTasks: 10, TotalTasks: 10, StudyHours: 8, FocusLevel: 9},
			historyLen: 7,
			want:       []AchievementKind{TaskMaster, HighAchiever, StudyMarathon, LaserFocus, ConsistencyKing},
		},
		{
			name:       "independent of completion",
			snap:       Snapshot{CompletedTasks: 0, TotalTasks: 10, StudyHours: 9.5, FocusLevel: 10},
			historyLen: 7,
			want:       []AchievementKind{StudyMarathon, LaserFocus, ConsistencyKing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(EvaluateAchievements(tt.snap, tt.historyLen))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskMasterIgnoresOtherFields(t *testing.T) {
	for focus := 1; focus <= 10; focus++ {
		for _, hours := range []float64{0, 4, 12} {
			got := kinds(EvaluateAchievements(Snapshot{CompletedTasks: 3, TotalTasks: 3, FocusLevel: focus, StudyHours: hours}, 1))
			assert.Contains(t, got, TaskMaster)
		}
	}
}

func TestAchievementMetadata(t *testing.T) {
	for _, k := range AllAchievementKinds() {
		assert.NotEqual(t, string(k), k.DisplayName(), "missing display name for %s", k)
		assert.NotEmpty(t, k.Description())
		assert.NotEqual(t, "✦", k.Icon())
	}
	assert.Equal(t, "Laser Focus", Achievement{Kind: LaserFocus}.Title())
}

func TestBands(t *testing.T) {
	assert.Equal(t, BandExcellent, BandFor(80))
	assert.Equal(t, BandGood, BandFor(79.9))
	assert.Equal(t, BandAverage, BandFor(40))
	assert.Equal(t, BandNeedsImprovement, BandFor(39))
	assert.Equal(t, "Making Progress", BandAverage.StatusText())

	assert.Equal(t, "Excellent", FocusQuality(8))
	assert.Equal(t, "Needs Work", FocusQuality(3))

	_, ok := Efficiency(3, 0)
	assert.False(t, ok)
	perHour, ok := Efficiency(6, 4)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, perHour, 1e-9)

	assert.Equal(t, 100.0, HoursPercent(12))
}
