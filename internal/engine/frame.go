package engine

import "github.com/san-kum/sparks/internal/physics"

type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// Particle is written once per tick by the worker that claimed its index and
// is never modified after its frame is published.
type Particle struct {
	Born     int64 // ms on the engine clock
	Stamp    int64 // ms of the tick that wrote it
	Lifetime int64 // ms, drawn once at birth
	Position physics.Vec2
	Velocity physics.Vec2
	Color    Color
}

// Age returns how long the particle had lived when its frame was written.
func (p Particle) Age() int64 { return p.Stamp - p.Born }

// Effect is a pending spawn request staged on a frame slot.
type Effect struct {
	Count    uint32
	Position physics.Vec2
	Color    Color
}

// FrameBuffer is one of the engine's fixed frame slots.
type FrameBuffer struct {
	particles []Particle
	count     uint32
	effect    Effect
}

func newFrameBuffer(capacity uint32) FrameBuffer {
	return FrameBuffer{particles: make([]Particle, capacity)}
}

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Tick     uint64 // completed ticks
	ClockMs  int64
	Live     uint32 // particles in the published read frame
	Workers  int
	Spawned  uint64 // effects staged
	Rejected uint64 // effects given up on with ErrSlotsSaturated
	Overflow uint64 // particles dropped for capacity
}
