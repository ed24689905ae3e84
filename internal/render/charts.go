package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studygenie/internal/progress"
	"github.com/abhisek/studygenie/internal/ui/components"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

// ChartID names one chart slot of the progress view.
type ChartID string

const (
	ChartCompletion ChartID = "completion"
	ChartTrend      ChartID = "trend"
	ChartWeekly     ChartID = "weekly"
	ChartHours      ChartID = "hours"
)

var chartOrder = []ChartID{ChartCompletion, ChartTrend, ChartWeekly, ChartHours}

// Chart is a text chart that can be drawn at any width.
type Chart interface {
	Render(width int) string
}

// ChartSet owns the live charts of the progress view. A chart is created
// or swapped with Replace and released with Dispose; nothing else keeps a
// handle to it.
type ChartSet struct {
	mu     sync.Mutex
	charts map[ChartID]Chart
}

// NewChartSet creates an empty set.
func NewChartSet() *ChartSet {
	return &ChartSet{charts: make(map[ChartID]Chart)}
}

// Replace installs c in slot id and reports whether an older chart was
// released.
func (s *ChartSet) Replace(id ChartID, c Chart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, had := s.charts[id]
	s.charts[id] = c
	return had
}

// Dispose releases the chart in slot id.
func (s *ChartSet) Dispose(id ChartID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, id)
}

// DisposeAll releases every chart, as on logout.
func (s *ChartSet) DisposeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.charts)
}

// Len returns the number of live charts.
func (s *ChartSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.charts)
}

// Get returns the chart in slot id.
func (s *ChartSet) Get(id ChartID) (Chart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charts[id]
	return c, ok
}

// Render draws the live charts in a fixed order.
func (s *ChartSet) Render(width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parts []string
	for _, id := range chartOrder {
		if c, ok := s.charts[id]; ok {
			parts = append(parts, c.Render(width))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Refresh rebuilds every chart from the aggregator, replacing the old
// ones. An empty window disposes all charts.
func (s *ChartSet) Refresh(agg *progress.Aggregator) {
	latest, ok := agg.Latest()
	if !ok {
		s.DisposeAll()
		return
	}
	s.Replace(ChartCompletion, Gauge{
		Title:   "Task Completion",
		Percent: latest.CompletionPercent(),
		Detail:  fmt.Sprintf("%d completed, %d pending", latest.CompletedTasks, latest.TotalTasks-latest.CompletedTasks),
	})
	s.Replace(ChartTrend, Sparkline{Title: "Completion Trend", Points: agg.CompletionTrend(), Max: 100, Unit: "%"})
	s.Replace(ChartWeekly, PairedBars{
		Title:  "Weekly Progress",
		Labels: [2]string{"Completion %", "Focus %"},
		A:      agg.CompletionTrend(),
		B:      agg.FocusSeries(),
	})
	s.Replace(ChartHours, Sparkline{Title: "Study Hours", Points: agg.HoursSeries(), Max: 12, Unit: "h"})
}

// Gauge is a single percentage drawn as a bar, standing in for a doughnut.
type Gauge struct {
	Title   string
	Percent float64
	Detail  string
}

func (g Gauge) Render(width int) string {
	bar := components.NewProgressBar("", g.Percent, bandColor(progress.BandFor(g.Percent)), width)
	out := theme.Heading.Render(g.Title) + "\n" + bar.View()
	if g.Detail != "" {
		out += "\n" + theme.Hint.Render(g.Detail)
	}
	return out
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one value per day.
type Sparkline struct {
	Title  string
	Points []progress.Point
	Max    float64
	Unit   string
}

func (s Sparkline) Render(width int) string {
	var b strings.Builder
	for _, p := range s.Points {
		b.WriteRune(tick(p.Value, s.Max))
		b.WriteRune(' ')
	}
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Render(b.String())

	last := ""
	if n := len(s.Points); n > 0 {
		last = theme.Hint.Render(fmt.Sprintf("  latest %s%s", trimFloat(s.Points[n-1].Value), s.Unit))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(theme.Heading.Render(s.Title) + "\n" + line + last)
}

func tick(v, top float64) rune {
	if top <= 0 || v <= 0 {
		return sparkTicks[0]
	}
	i := int(math.Round(math.Min(v/top, 1) * float64(len(sparkTicks)-1)))
	return sparkTicks[i]
}

// PairedBars draws two percentage series side by side per day.
type PairedBars struct {
	Title  string
	Labels [2]string
	A, B   []progress.Point
}

func (p PairedBars) Render(width int) string {
	barWidth := (width - 14) / 2
	if barWidth < 4 {
		barWidth = 4
	}
	lines := []string{
		theme.Heading.Render(p.Title),
		theme.Hint.Render(fmt.Sprintf("%-10s %s / %s", "", p.Labels[0], p.Labels[1])),
	}
	for i, a := range p.A {
		b := 0.0
		if i < len(p.B) {
			b = p.B[i].Value
		}
		lines = append(lines, fmt.Sprintf("%-10s %s %s",
			a.Date,
			hbar(a.Value/100, barWidth, theme.Secondary),
			hbar(b/100, barWidth, theme.Accent),
		))
	}
	return strings.Join(lines, "\n")
}

func hbar(frac float64, width int, fill color.Color) string {
	n := int(math.Round(math.Max(0, math.Min(frac, 1)) * float64(width)))
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-n))
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
