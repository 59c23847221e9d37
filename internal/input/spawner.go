package input

import (
	"errors"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

const DefaultDragSpacing = 24

type SpawnTarget interface {
	SpawnEffect(pos physics.Vec2, c engine.Color) error
}

// Spawner fires an effect on every left click and, while the left button is
// held, each time the pointer travels DragSpacing from the previous effect.
type Spawner struct {
	target      SpawnTarget
	palette     *Palette
	log         *slog.Logger
	DragSpacing float32

	last     physics.Vec2
	dragging bool

	spawned  atomic.Uint64
	rejected atomic.Uint64
}

func NewSpawner(target SpawnTarget, palette *Palette, log *slog.Logger) *Spawner {
	if palette == nil {
		palette = NewPalette(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Spawner{
		target:      target,
		palette:     palette,
		log:         log.With("component", "spawner"),
		DragSpacing: DefaultDragSpacing,
	}
}

func (s *Spawner) OnDown(pos physics.Vec2, btn Button) {
	if btn != ButtonLeft {
		return
	}
	s.dragging = true
	s.spawn(pos)
}

func (s *Spawner) OnUp(pos physics.Vec2, btn Button) {
	if btn == ButtonLeft {
		s.dragging = false
	}
}

func (s *Spawner) OnMove(pos physics.Vec2, held Buttons) {
	if !s.dragging || !held.Has(ButtonLeft) {
		return
	}
	if pos.Sub(s.last).Len() < s.DragSpacing {
		return
	}
	s.spawn(pos)
}

// OnWheel rotates the palette hue.
func (s *Spawner) OnWheel(_ physics.Vec2, delta float32) {
	s.palette.Shift(float64(delta) * 15)
}

// Spawn fires one effect at pos with the next palette color.
func (s *Spawner) Spawn(pos physics.Vec2) error {
	return s.spawn(pos)
}

func (s *Spawner) spawn(pos physics.Vec2) error {
	s.last = pos
	err := s.target.SpawnEffect(pos, s.palette.Next())
	switch {
	case err == nil:
		s.spawned.Add(1)
	case errors.Is(err, engine.ErrSlotsSaturated):
		s.rejected.Add(1)
		s.log.Debug("spawn rejected", "x", pos.X, "y", pos.Y)
	default:
		s.log.Warn("spawn failed", "err", err)
	}
	return err
}

func (s *Spawner) Spawned() uint64  { return s.spawned.Load() }
func (s *Spawner) Rejected() uint64 { return s.rejected.Load() }

// goldenAngle spreads successive hues evenly around the wheel.
const goldenAngle = 360 / math.Phi / math.Phi

// Palette hands out saturated colors with successive hues a golden angle
// apart.
type Palette struct {
	hue        float64
	Saturation float64
	Value      float64
}

func NewPalette(startHue float64) *Palette {
	return &Palette{hue: wrapHue(startHue), Saturation: 0.85, Value: 1}
}

func (p *Palette) Next() engine.Color {
	c := colorful.Hsv(p.hue, p.Saturation, p.Value).Clamped()
	p.hue = wrapHue(p.hue + goldenAngle)
	return engine.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

func (p *Palette) Hue() float64 { return p.hue }

func (p *Palette) Shift(degrees float64) { p.hue = wrapHue(p.hue + degrees) }

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
