package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/sparks/internal/barrier"
	"github.com/san-kum/sparks/internal/physics"
)

type Options struct {
	// Workers is the size of the worker pool. Zero selects one less than the
	// number of CPUs, with a minimum of one.
	Workers int

	// Viewport bounds the simulation. Particles outside it are culled. Zero
	// selects DefaultViewport.
	Viewport physics.Bounds

	// Seed makes each worker's generator reproducible. Zero seeds randomly.
	Seed uint64

	Logger *slog.Logger
}

// Engine is the particle simulation. Update, SpawnEffect, Render and Stats
// may be called from any goroutine; Close must be the last call.
type Engine struct {
	log      *slog.Logger
	viewport physics.Bounds
	kin      physics.Kinematics
	capacity uint32
	workers  int

	frames []FrameBuffer
	slots  *SlotPool

	clock atomic.Int64
	stop  atomic.Bool

	readIndex  atomic.Uint32
	writeIndex atomic.Uint32

	effectCursor atomic.Uint32
	readCursor   atomic.Uint32
	writeCursor  atomic.Uint32
	produced     atomic.Uint32
	idle         atomic.Uint32

	ticks    atomic.Uint64
	live     atomic.Uint32
	spawned  atomic.Uint64
	rejected atomic.Uint64
	overflow atomic.Uint64

	barrier   *barrier.Barrier
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts an engine with Capacity particles per frame.
func New(opts Options) (*Engine, error) {
	return newEngine(opts, Capacity)
}

func newEngine(opts Options, capacity uint32) (*Engine, error) {
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, opts.Workers)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}

	viewport := opts.Viewport
	if viewport == (physics.Bounds{}) {
		viewport = DefaultViewport
	}
	if !validViewport(viewport) {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidViewport, viewport.Width, viewport.Height)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		log:      log.With("component", "engine"),
		viewport: viewport,
		kin:      physics.Kinematics{Drag: Drag, Gravity: Gravity},
		capacity: capacity,
		workers:  workers,
		frames:   make([]FrameBuffer, FrameSlots),
		slots:    NewSlotPool(FrameSlots),
		barrier:  barrier.New(workers),
	}
	for i := range e.frames {
		e.frames[i] = newFrameBuffer(capacity)
	}

	e.readIndex.Store(0)
	e.writeIndex.Store(1)
	e.slots.Hold(1)

	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go e.run(newWorker(i, opts.Seed))
	}

	e.log.Info("engine started",
		"workers", workers,
		"capacity", capacity,
		"viewport_w", viewport.Width,
		"viewport_h", viewport.Height,
	)
	return e, nil
}

func validViewport(b physics.Bounds) bool {
	for _, side := range []float32{b.Width, b.Height} {
		if side <= 0 || math.IsInf(float64(side), 0) || math.IsNaN(float64(side)) {
			return false
		}
	}
	return true
}

// Close stops and joins all workers. It is safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.stop.Store(true)
		e.barrier.Drop()
		e.wg.Wait()
		e.log.Info("engine stopped", "ticks", e.ticks.Load(), "clock_ms", e.clock.Load())
	})
	return nil
}

// Update advances the engine clock by dt milliseconds. Non-positive deltas
// are ignored.
func (e *Engine) Update(dt int64) {
	if dt <= 0 {
		return
	}
	e.clock.Add(dt)
}

// SpawnEffect stages a burst of ParticlesPerEffect particles at pos. It never
// waits for the workers; when every free slot already carries a pending
// effect it backs off a few times and then gives up with ErrSlotsSaturated.
func (e *Engine) SpawnEffect(pos physics.Vec2, c Color) error {
	eff := Effect{Count: ParticlesPerEffect, Position: pos, Color: c}

	backoff := spawnBackoff
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		if e.stop.Load() {
			return ErrClosed
		}
		if e.stage(eff) {
			e.spawned.Add(1)
			return nil
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	e.rejected.Add(1)
	e.log.Debug("effect dropped", "x", pos.X, "y", pos.Y)
	return ErrSlotsSaturated
}

// stage writes eff into a slot that is neither the read frame nor already
// carrying an effect.
func (e *Engine) stage(eff Effect) bool {
	read := int(e.readIndex.Load())
	idx, ok := e.slots.AcquireWhere(read, func(i int) bool {
		return i != int(e.readIndex.Load()) && e.frames[i].effect.Count == 0
	})
	if !ok {
		return false
	}
	e.frames[idx].effect = eff
	e.slots.Release(idx)
	return true
}

// Render calls emit once for every particle of the most recently published
// frame.
func (e *Engine) Render(emit func(x, y, r, g, b, a float32)) {
	for p := range e.Particles() {
		emit(p.Position.X, p.Position.Y, p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	}
}

// Particles returns a single pass over the most recently published frame.
// The frame is pinned while the loop runs, so it cannot be recycled as a
// write frame; long loops delay nothing but slot reuse.
func (e *Engine) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		idx, ok := e.pinRead()
		if !ok {
			return
		}
		defer e.slots.Unpin(idx)

		f := &e.frames[idx]
		for i := uint32(0); i < f.count; i++ {
			if !yield(f.particles[i]) {
				return
			}
		}
	}
}

func (e *Engine) pinRead() (int, bool) {
	for !e.stop.Load() {
		idx := int(e.readIndex.Load())
		if e.slots.Pin(idx) {
			return idx, true
		}
		// Rotation is between publishing and releasing this slot.
		runtime.Gosched()
	}
	return 0, false
}

func (e *Engine) Stats() Stats {
	return Stats{
		Tick:     e.ticks.Load(),
		ClockMs:  e.clock.Load(),
		Live:     e.live.Load(),
		Workers:  e.workers,
		Spawned:  e.spawned.Load(),
		Rejected: e.rejected.Load(),
		Overflow: e.overflow.Load(),
	}
}

func (e *Engine) Workers() int { return e.workers }

func (e *Engine) Viewport() physics.Bounds { return e.viewport }

// AwaitTick blocks until more than after ticks have completed.
func (e *Engine) AwaitTick(ctx context.Context, after uint64) (uint64, error) {
	t := time.NewTicker(awaitPoll)
	defer t.Stop()

	for {
		if n := e.ticks.Load(); n > after {
			return n, nil
		}
		if e.stop.Load() {
			return e.ticks.Load(), ErrClosed
		}
		select {
		case <-ctx.Done():
			return e.ticks.Load(), ctx.Err()
		case <-t.C:
		}
	}
}

func (e *Engine) run(w *worker) {
	defer e.wg.Done()

	if !e.barrier.Wait() {
		return
	}

	for !e.stop.Load() {
		if !w.advance(e.clock.Load()) {
			time.Sleep(TickPeriod)
			continue
		}
		e.tick(w)
	}
}

func (e *Engine) tick(w *worker) {
	read := &e.frames[e.readIndex.Load()]
	write := &e.frames[e.writeIndex.Load()]

	e.addParticles(w, read, write)
	e.stepParticles(w, read, write)

	if e.idle.Add(1) == uint32(e.workers) {
		e.rotate(read, write)
	}
	e.barrier.Wait()
}

func (e *Engine) addParticles(w *worker, read, write *FrameBuffer) {
	eff := read.effect
	for i := e.effectCursor.Add(1) - 1; i < eff.Count; i = e.effectCursor.Add(1) - 1 {
		j := e.writeCursor.Add(1) - 1
		if j >= e.capacity {
			e.overflow.Add(1)
			continue
		}
		w.emit(&write.particles[j], eff.Position, eff.Color)
		e.produced.Add(1)
	}
}

func (e *Engine) stepParticles(w *worker, read, write *FrameBuffer) {
	dt := float32(w.dt) * 1e-3

	for i := e.readCursor.Add(1) - 1; i < read.count; i = e.readCursor.Add(1) - 1 {
		src := &read.particles[i]

		dead := w.now-src.Born > src.Lifetime
		outside := !e.viewport.Contains(src.Position)

		switch {
		case !dead && !outside:
			j := e.writeCursor.Add(1) - 1
			if j >= e.capacity {
				e.overflow.Add(1)
				continue
			}
			dst := &write.particles[j]
			*dst = *src
			dst.Stamp = w.now
			dst.Position, dst.Velocity = e.kin.Step(src.Position, src.Velocity, dt)
			e.produced.Add(1)

		case dead && !outside && w.explode():
			for k := 0; k < ParticlesPerEffect; k++ {
				j := e.writeCursor.Add(1) - 1
				if j >= e.capacity {
					e.overflow.Add(uint64(ParticlesPerEffect - k))
					break
				}
				w.emit(&write.particles[j], src.Position, src.Color)
				e.produced.Add(1)
			}
		}
	}
}

// rotate runs on the last worker to finish a tick while every other worker
// is parked on the barrier.
func (e *Engine) rotate(read, write *FrameBuffer) {
	writeIdx := int(e.writeIndex.Load())

	read.effect = Effect{}

	write.count = min(e.capacity, e.produced.Load())
	e.live.Store(write.count)

	e.readIndex.Store(uint32(writeIdx))
	e.slots.Release(writeIdx)
	e.writeIndex.Store(uint32(e.acquireWriteSlot(writeIdx)))

	e.effectCursor.Store(0)
	e.readCursor.Store(0)
	e.writeCursor.Store(0)
	e.produced.Store(0)
	e.idle.Store(0)

	e.ticks.Add(1)
}

// acquireWriteSlot spins until a slot other than read is free. Readers and
// spawners only hold slots for the length of a copy.
func (e *Engine) acquireWriteSlot(read int) int {
	for {
		if idx, ok := e.slots.AcquireAvailable(read); ok {
			return idx
		}
		runtime.Gosched()
	}
}
