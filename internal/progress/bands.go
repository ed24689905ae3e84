package progress

// Band classifies a percentage into a coarse status.
type Band string

const (
	BandExcellent        Band = "excellent"
	BandGood             Band = "good"
	BandAverage          Band = "average"
	BandNeedsImprovement Band = "needs-improvement"
)

// BandFor maps a 0-100 percentage to its band.
func BandFor(percent float64) Band {
	switch {
	case percent >= 80:
		return BandExcellent
	case percent >= 60:
		return BandGood
	case percent >= 40:
		return BandAverage
	default:
		return BandNeedsImprovement
	}
}

// StatusText is the headline shown for a completion band.
func (b Band) StatusText() string {
	switch b {
	case BandExcellent:
		return "Excellent Progress"
	case BandGood:
		return "Good Progress"
	case BandAverage:
		return "Making Progress"
	default:
		return "Needs Improvement"
	}
}

// FocusQuality describes a 1-10 focus level.
func FocusQuality(level int) string {
	switch {
	case level >= 8:
		return "Excellent"
	case level >= 6:
		return "Good"
	case level >= 4:
		return "Average"
	default:
		return "Needs Work"
	}
}

// Efficiency returns completed tasks per study hour. ok is false when no
// hours were logged.
func Efficiency(completed int, hours float64) (perHour float64, ok bool) {
	if hours <= 0 {
		return 0, false
	}
	return float64(completed) / hours, true
}

// HoursPercent scales study hours onto 0-100, saturating at 8 hours.
func HoursPercent(hours float64) float64 {
	return min(hours*12.5, 100)
}
