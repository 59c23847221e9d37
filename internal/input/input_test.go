package input

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

type recordingTarget struct {
	at     []physics.Vec2
	colors []engine.Color
	err    error
}

func (r *recordingTarget) SpawnEffect(pos physics.Vec2, c engine.Color) error {
	if r.err != nil {
		return r.err
	}
	r.at = append(r.at, pos)
	r.colors = append(r.colors, c)
	return nil
}

type recordingHandler struct {
	events []string
	keys   []string
}

func (h *recordingHandler) OnMove(pos physics.Vec2, held Buttons) {
	h.events = append(h.events, "move")
}
func (h *recordingHandler) OnDown(pos physics.Vec2, btn Button) {
	h.events = append(h.events, "down:"+btn.String())
}
func (h *recordingHandler) OnUp(pos physics.Vec2, btn Button) {
	h.events = append(h.events, "up:"+btn.String())
}
func (h *recordingHandler) OnWheel(pos physics.Vec2, delta float32) {
	h.events = append(h.events, "wheel")
}
func (h *recordingHandler) OnKey(name string, down bool) {
	h.keys = append(h.keys, name)
}

var quiet = slog.New(slog.DiscardHandler)

func TestButtons(t *testing.T) {
	var b Buttons
	b = b.With(ButtonLeft).With(ButtonMiddle)

	if !b.Has(ButtonLeft) || !b.Has(ButtonMiddle) || b.Has(ButtonRight) {
		t.Errorf("unexpected set %08b", b)
	}
	b = b.Without(ButtonLeft)
	if b.Has(ButtonLeft) {
		t.Error("left still held after Without")
	}
}

func TestMouseDispatch(t *testing.T) {
	m := NewMouse(engine.DefaultViewport)
	h := &recordingHandler{}
	m.Connect(h)

	p := physics.Vec2{X: 3, Y: 4}
	m.Dispatch(MouseButton{Pos: p, Button: ButtonLeft, Down: true})
	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 5, Y: 6}})
	m.Dispatch(MouseButton{Pos: p, Button: ButtonRight, Down: true})
	m.Dispatch(Wheel{Pos: p, Delta: 1})
	m.Dispatch(MouseButton{Pos: p, Button: ButtonLeft})
	m.Dispatch(Key{Name: "space", Down: true})
	m.Dispatch(Resize{Width: 640, Height: 480})

	want := []string{"down:left", "move", "down:right", "wheel", "up:left"}
	if len(h.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, h.events)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], h.events[i])
		}
	}
	if len(h.keys) != 1 || h.keys[0] != "space" {
		t.Errorf("expected key space, got %v", h.keys)
	}

	if m.Position() != p {
		t.Errorf("expected position %v, got %v", p, m.Position())
	}
	if held := m.Held(); held.Has(ButtonLeft) || !held.Has(ButtonRight) {
		t.Errorf("expected only right held, got %08b", held)
	}
	if b := m.Bounds(); b.Width != 640 || b.Height != 480 {
		t.Errorf("expected resized bounds, got %v", b)
	}
}

func TestSpawnerClickAndDrag(t *testing.T) {
	target := &recordingTarget{}
	s := NewSpawner(target, NewPalette(0), quiet)
	s.DragSpacing = 10

	m := NewMouse(engine.DefaultViewport)
	m.Connect(s)

	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 0, Y: 0}})
	m.Dispatch(MouseButton{Pos: physics.Vec2{X: 0, Y: 0}, Button: ButtonLeft, Down: true})
	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 5, Y: 0}})
	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 12, Y: 0}})
	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 30, Y: 0}})
	m.Dispatch(MouseButton{Pos: physics.Vec2{X: 30, Y: 0}, Button: ButtonLeft})
	m.Dispatch(MouseMove{Pos: physics.Vec2{X: 100, Y: 0}})
	m.Dispatch(MouseButton{Pos: physics.Vec2{X: 1, Y: 1}, Button: ButtonRight, Down: true})

	want := []float32{0, 12, 30}
	if len(target.at) != len(want) {
		t.Fatalf("expected spawns at x=%v, got %v", want, target.at)
	}
	for i, x := range want {
		if target.at[i].X != x {
			t.Errorf("spawn %d: expected x=%v, got %v", i, x, target.at[i].X)
		}
	}
	if target.colors[0] == target.colors[1] {
		t.Error("successive spawns share a color")
	}
	if s.Spawned() != 3 {
		t.Errorf("expected 3 spawned, got %d", s.Spawned())
	}
}

func TestSpawnerCountsRejections(t *testing.T) {
	target := &recordingTarget{err: engine.ErrSlotsSaturated}
	s := NewSpawner(target, nil, quiet)

	if err := s.Spawn(physics.Vec2{}); !errors.Is(err, engine.ErrSlotsSaturated) {
		t.Errorf("expected ErrSlotsSaturated, got %v", err)
	}
	if s.Rejected() != 1 || s.Spawned() != 0 {
		t.Errorf("expected 1 rejected 0 spawned, got %d/%d", s.Rejected(), s.Spawned())
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette(-30)
	if p.Hue() != 330 {
		t.Errorf("expected hue wrapped to 330, got %f", p.Hue())
	}

	seen := make(map[engine.Color]bool)
	for i := 0; i < 16; i++ {
		c := p.Next()
		for _, v := range []float32{c.R, c.G, c.B} {
			if v < 0 || v > 1 {
				t.Fatalf("channel %f out of range in %v", v, c)
			}
		}
		if c.A != 1 {
			t.Errorf("expected opaque color, got alpha %f", c.A)
		}
		seen[c] = true
	}
	if len(seen) != 16 {
		t.Errorf("expected 16 distinct colors, got %d", len(seen))
	}

	p.Shift(720 + 10)
	if h := p.Hue(); h < 0 || h >= 360 {
		t.Errorf("hue %f not wrapped", h)
	}
}

func TestSpawnerWheelShiftsHue(t *testing.T) {
	p := NewPalette(100)
	s := NewSpawner(&recordingTarget{}, p, quiet)

	s.OnWheel(physics.Vec2{}, 2)
	if math.Abs(p.Hue()-130) > 1e-9 {
		t.Errorf("expected hue 130, got %f", p.Hue())
	}
}
