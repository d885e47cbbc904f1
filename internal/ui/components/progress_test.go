package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBarView(t *testing.T) {
	tests := []struct {
		name       string
		percent    float64
		wantFilled int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 10},
		{"full", 1, 20},
		{"over", 1.7, 20},
		{"negative", -0.2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewProgressBar("", tt.percent, false, 20).View()
			assert.Equal(t, tt.wantFilled, strings.Count(view, "█"))
			assert.Equal(t, 20-tt.wantFilled, strings.Count(view, "░"))
		})
	}
}

func TestProgressBarFitsWidth(t *testing.T) {
	view := NewProgressBar("Easy", 0.4, true, 30).View()
	assert.Equal(t, 30, lipgloss.Width(view))
	assert.Contains(t, view, "40%")
}
