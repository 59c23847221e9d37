package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

// Engine is the part of *engine.Engine a Runner drives.
type Engine interface {
	Update(dt int64)
	SpawnEffect(pos physics.Vec2, c engine.Color) error
	Stats() engine.Stats
	AwaitTick(ctx context.Context, after uint64) (uint64, error)
}

// Spawn schedules effects at a position. With EveryMs zero it fires once at
// AtMs; otherwise it repeats until the run ends.
type Spawn struct {
	AtMs     int64
	EveryMs  int64
	Count    int
	Position physics.Vec2
	Color    engine.Color
}

type Config struct {
	TickMs int64
	Ticks  int
	Spawns []Spawn
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(s engine.Stats, elapsed time.Duration)
}

type ObserverFunc func(s engine.Stats, elapsed time.Duration)

func (f ObserverFunc) OnTick(s engine.Stats, elapsed time.Duration) { f(s, elapsed) }

type Result struct {
	Ticks    int
	ClockMs  int64
	Final    engine.Stats
	PeakLive uint32
	Spawned  int
	Rejected int
	Elapsed  time.Duration
}

// RunError reports the tick a run failed on.
type RunError struct {
	Tick int
	Err  error
}

func (e RunError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

func (e RunError) Unwrap() error { return e.Err }
