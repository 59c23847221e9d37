package engine

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/sparks/internal/physics"
)

// worker is the private per-goroutine state of one simulation worker.
type worker struct {
	index    int
	rng      *rand.Rand
	lastSeen int64
	now      int64
	dt       int64
}

func newWorker(index int, seed uint64) *worker {
	var src *rand.PCG
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(seed, uint64(index))
	}
	return &worker{index: index, rng: rand.New(src)}
}

// advance samples the engine clock and reports whether time moved since the
// previous sample.
func (w *worker) advance(clock int64) bool {
	w.dt = clock - w.lastSeen
	if w.dt <= 0 {
		w.dt = 0
		return false
	}
	w.lastSeen = clock
	w.now = clock
	return true
}

func (w *worker) velocity() physics.Vec2 {
	angle := w.rng.Float32() * 2 * math.Pi
	speed := (w.rng.Float32()*(1-MinSpeedFactor) + MinSpeedFactor) * MaxSpeed
	return physics.Polar(angle, speed)
}

func (w *worker) lifetime() int64 {
	jitter := 1 - LifetimeJitter + w.rng.Float64()*2*LifetimeJitter
	return int64(float64(Lifetime.Milliseconds()) * jitter)
}

func (w *worker) explode() bool {
	return w.rng.Float32() < ExplosionChance
}

// emit initialises a newborn particle at pos.
func (w *worker) emit(p *Particle, pos physics.Vec2, c Color) {
	p.Born = w.now
	p.Stamp = w.now
	p.Lifetime = w.lifetime()
	p.Position = pos
	p.Velocity = w.velocity()
	p.Color = c
}
