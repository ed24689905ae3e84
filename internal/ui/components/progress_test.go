package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar_ClampsAndFits(t *testing.T) {
	assert.Equal(t, 100.0, NewProgressBar("", 140, nil, 40).Percent)
	assert.Equal(t, 0.0, NewProgressBar("", -5, nil, 40).Percent)

	bar := NewProgressBar("Done", 70, nil, 40)
	view := bar.View()
	assert.Contains(t, view, "70%")
	assert.Equal(t, 40, lipgloss.Width(view))
}
