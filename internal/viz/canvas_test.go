package viz

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/sparks/internal/physics"
)

var red = colorful.Color{R: 1}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0, red)
	c.Set(1, 3, red)
	c.Set(-1, 0, red)
	c.Set(4, 0, red)
	c.Set(0, 4, red)

	if got, want := c.Grid[0][0], rune(blank|0x1|0x80); got != want {
		t.Errorf("expected %U, got %U", want, got)
	}
	if c.Grid[0][1] != blank {
		t.Errorf("expected second cell blank, got %U", c.Grid[0][1])
	}
	if c.Dots() != 2 {
		t.Errorf("expected 2 dots, got %d", c.Dots())
	}

	c.Clear()
	if c.Dots() != 0 || c.Colors[0][0] != (colorful.Color{}) {
		t.Error("clear left state behind")
	}
}

func TestCanvasPlotFlipsY(t *testing.T) {
	c := NewCanvas(10, 10)
	view := physics.Bounds{Width: 100, Height: 100}

	c.Plot(physics.Vec2{X: 0, Y: 100}, view, red)
	if c.Grid[0][0] == blank {
		t.Error("top-left viewport point not in top-left cell")
	}

	c.Plot(physics.Vec2{X: 100, Y: 0}, view, red)
	if c.Grid[9][9] == blank {
		t.Error("bottom-right viewport point not in bottom-right cell")
	}

	c.Plot(physics.Vec2{X: -1, Y: 50}, view, red)
	if c.Dots() != 2 {
		t.Errorf("expected outside point ignored, got %d dots", c.Dots())
	}
}

func TestCanvasToViewport(t *testing.T) {
	c := NewCanvas(4, 2)
	view := physics.Bounds{Width: 400, Height: 200}

	got := c.ToViewport(0, 0, view)
	if got.X != 50 || got.Y != 150 {
		t.Errorf("expected (50,150), got %v", got)
	}
	got = c.ToViewport(3, 1, view)
	if got.X != 350 || got.Y != 50 {
		t.Errorf("expected (350,50), got %v", got)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0, red)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	out := c.Render()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 rendered lines, got %q", out)
	}
	if !strings.Contains(out, string(rune(blank))) {
		t.Error("expected blank cells in render")
	}
}
