package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Ember palette shared by the live view and the preset menu.
var (
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b5f5a"))

	Running = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dff9a"))
	Paused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffb347"))
	Failure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5c5c"))

	StatLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#9a8f88")).Width(10)
	StatValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd27f")).Bold(true)

	Hint  = Muted.Italic(true)
	Chart = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9a4d")).Padding(1, 0)

	Title    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9a4d")).Bold(true)
	Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff4e0")).Bold(true)
	Cursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc33")).Bold(true)
	Detail   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff80b0"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4a4440"))

	gaugeHot  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d4d"))
	gaugeWarm = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347"))
	gaugeCool = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dff9a"))
)

// GradientText colors each rune of text along a Lab blend from start to end.
// Invalid hex colors fall back to white.
func GradientText(text, start, end string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err := colorful.Hex(start)
	if err != nil {
		from = colorful.Color{R: 1, G: 1, B: 1}
	}
	to, err := colorful.Hex(end)
	if err != nil {
		to = from
	}

	var b strings.Builder
	last := max(len(runes)-1, 1)
	for i, r := range runes {
		c := from.BlendLab(to, float64(i)/float64(last)).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	return b.String()
}

// Gauge renders fraction (0..1) of width cells, hotter as it fills.
func Gauge(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)

	switch {
	case fraction > 0.8:
		return gaugeHot.Render(bar)
	case fraction > 0.4:
		return gaugeWarm.Render(bar)
	default:
		return gaugeCool.Render(bar)
	}
}

// Rule is a muted horizontal line.
func Rule(width int) string {
	return Muted.Render(strings.Repeat("─", max(width, 0)))
}
