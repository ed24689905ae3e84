// Package progress keeps the rolling week of progress snapshots and the
// trend, band and achievement data derived from it.
package progress

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format, one snapshot per key.
const DateLayout = "1/2/2006"

// DateKey returns the calendar-day key for t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ErrInvalidSnapshot is returned when a snapshot field is out of range.
var ErrInvalidSnapshot = errors.New("invalid progress snapshot")

// Snapshot is one day's progress data point.
type Snapshot struct {
	Date              string
	CompletedTasks    int
	TotalTasks        int
	StudyHours        float64
	FocusLevel        int
	ProductivityScore float64
}

// CompletionPercent returns completed/total as a percentage.
func (s Snapshot) CompletionPercent() float64 {
	if s.TotalTasks <= 0 {
		return 0
	}
	return float64(s.CompletedTasks) * 100 / float64(s.TotalTasks)
}

// Validate checks every field range.
func (s Snapshot) Validate() error {
	switch {
	case s.Date == "":
		return fmt.Errorf("%w: missing date", ErrInvalidSnapshot)
	case s.TotalTasks < 1:
		return fmt.Errorf("%w: total tasks must be at least 1", ErrInvalidSnapshot)
	case s.CompletedTasks < 0:
		return fmt.Errorf("%w: completed tasks cannot be negative", ErrInvalidSnapshot)
	case s.CompletedTasks > s.TotalTasks:
		return fmt.Errorf("%w: completed tasks cannot exceed total tasks", ErrInvalidSnapshot)
	case s.StudyHours < 0:
		return fmt.Errorf("%w: study hours cannot be negative", ErrInvalidSnapshot)
	case s.FocusLevel < 1 || s.FocusLevel > 10:
		return fmt.Errorf("%w: focus level must be between 1 and 10", ErrInvalidSnapshot)
	}
	return nil
}
