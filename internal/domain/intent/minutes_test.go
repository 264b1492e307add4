package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"digits before minuten", "timer für 10 minuten", 10},
		{"digits before min", "fokus 12 min", 12},
		{"digits after timer", "timer 40", 40},
		{"digits after fokus für", "fokus für 8", 8},
		{"number word fünf", "timer fünf minuten", 5},
		{"number word fünfzehn not fünf", "timer fünfzehn minuten", 15},
		{"number word dreißig not drei", "fokus dreißig", 30},
		{"bare int in range", "konzentration 90 bitte timer", 90},
		{"bare int above range ignored", "stelle mir minuten klingel 500 ein", DefaultMinutes},
		{"bare zero ignored", "stelle 0 minuten", DefaultMinutes},
		{"nothing defaults", "starte den fokusmodus", DefaultMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMinutes(tt.input))
		})
	}
}

func TestClampMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
		clamped  bool
	}{
		{"within limit", 25, 25, false},
		{"at limit", 60, 60, false},
		{"above limit", 90, 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampMinutes(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}
