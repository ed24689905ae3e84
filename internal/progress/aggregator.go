package progress

import "sync"

// HistoryCapacity is the number of days kept in the rolling window.
const HistoryCapacity = 7

// Point is one value of a per-day chart series.
type Point struct {
	Date  string
	Value float64
}

// Aggregator holds at most HistoryCapacity snapshots, one per date key.
// Recording a known date overwrites that entry in place; recording a new
// date appends and evicts the oldest entry once the window is full.
type Aggregator struct {
	mu      sync.RWMutex
	entries []Snapshot
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record inserts or replaces the snapshot for s.Date.
func (a *Aggregator) Record(s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.entries {
		if a.entries[i].Date == s.Date {
			a.entries[i] = s
			return nil
		}
	}

	a.entries = append(a.entries, s)
	if over := len(a.entries) - HistoryCapacity; over > 0 {
		a.entries = append([]Snapshot(nil), a.entries[over:]...)
	}
	return nil
}

// Entries returns a copy of the window, oldest first.
func (a *Aggregator) Entries() []Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Snapshot(nil), a.entries...)
}

// Len returns the number of days in the window.
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

// Latest returns the last entry in the window.
func (a *Aggregator) Latest() (Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.entries) == 0 {
		return Snapshot{}, false
	}
	return a.entries[len(a.entries)-1], true
}

// Reset drops all history.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
}

// CompletionTrend returns the completion percentage per day.
func (a *Aggregator) CompletionTrend() []Point {
	return a.series(func(s Snapshot) float64 { return s.CompletionPercent() })
}

// FocusSeries returns focus level scaled to a percentage (level × 10).
func (a *Aggregator) FocusSeries() []Point {
	return a.series(func(s Snapshot) float64 { return float64(s.FocusLevel * 10) })
}

// HoursSeries returns study hours per day.
func (a *Aggregator) HoursSeries() []Point {
	return a.series(func(s Snapshot) float64 { return s.StudyHours })
}

// Achievements evaluates the achievement set against the latest snapshot.
func (a *Aggregator) Achievements() []Achievement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.entries) == 0 {
		return nil
	}
	return EvaluateAchievements(a.entries[len(a.entries)-1], len(a.entries))
}

func (a *Aggregator) series(value func(Snapshot) float64) []Point {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Point, len(a.entries))
	for i, s := range a.entries {
		out[i] = Point{Date: s.Date, Value: value(s)}
	}
	return out
}
