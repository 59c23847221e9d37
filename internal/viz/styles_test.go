package viz

import (
	"strings"
	"testing"
)

func TestGauge(t *testing.T) {
	tests := []struct {
		fraction     float64
		width        int
		filled, open int
	}{
		{0, 10, 0, 10},
		{0.5, 10, 5, 5},
		{1, 4, 4, 0},
		{2, 4, 4, 0},
		{-1, 4, 0, 4},
	}
	for _, tt := range tests {
		out := Gauge(tt.fraction, tt.width)
		if got := strings.Count(out, "▰"); got != tt.filled {
			t.Errorf("Gauge(%v, %d): expected %d filled cells, got %d", tt.fraction, tt.width, tt.filled, got)
		}
		if got := strings.Count(out, "▱"); got != tt.open {
			t.Errorf("Gauge(%v, %d): expected %d open cells, got %d", tt.fraction, tt.width, tt.open, got)
		}
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("expected empty output for empty text")
	}
	out := GradientText("spark", "#ffcc33", "not-a-color")
	for _, r := range "spark" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("expected %q in output", r)
		}
	}
}

func TestRule(t *testing.T) {
	if got := strings.Count(Rule(6), "─"); got != 6 {
		t.Errorf("expected 6 rule cells, got %d", got)
	}
	if strings.Contains(Rule(-2), "─") {
		t.Error("expected empty rule for negative width")
	}
}
