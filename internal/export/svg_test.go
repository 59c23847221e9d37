package export

import (
	"slices"
	"strings"
	"testing"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

func TestFrameToSVG(t *testing.T) {
	view := physics.Bounds{Width: 100, Height: 50}
	particles := []engine.Particle{
		{Position: physics.Vec2{X: 10, Y: 40}, Color: engine.Red},
		{Position: physics.Vec2{X: 90, Y: 0}, Color: engine.Color{R: 0, G: 0, B: 1, A: 0.5}},
		{Position: physics.Vec2{X: -5, Y: 10}, Color: engine.Green},
	}

	svg := FrameToSVG(slices.Values(particles), view, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed svg:\n%s", svg)
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("expected scaled dimensions")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	// y=40 of 50 flips to 10, scaled to 20
	if !strings.Contains(svg, `cx="20.0" cy="20.0"`) {
		t.Errorf("expected flipped first particle:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) || !strings.Contains(svg, `fill="#0000ff" fill-opacity="0.50"`) {
		t.Errorf("expected particle colors:\n%s", svg)
	}
}

func TestFrameToSVGEmptyViewport(t *testing.T) {
	if svg := FrameToSVG(slices.Values([]engine.Particle{}), physics.Bounds{}, 1); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]Point{{0, 0}}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]Point{{0, 0}, {1, 10}, {2, 5}}, 100, 50, "#00ff88")
	if !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("expected stroke color")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments:\n%s", svg)
	}
}
