// Package engine runs the particle simulation.
//
// An [Engine] owns four frame buffers and a fixed pool of worker goroutines.
// Every tick the workers turn the current read frame into the current write
// frame in lockstep:
//
//   - pending spawn effects on the read frame become new particles
//   - live particles are integrated and copied forward
//   - dead particles sometimes explode into children
//   - dead and out-of-bounds particles are dropped
//
// Work is split with shared fetch-and-add cursors, so every read particle and
// every effect slot is claimed by exactly one worker, and every write index is
// written by exactly one worker. The last worker to finish a tick publishes the
// write frame as the new read frame and picks a fresh write frame before
// releasing the others through a [barrier.Barrier].
//
// # Owner API
//
// The owning goroutine drives the engine with three calls:
//
//	eng, err := engine.New(engine.Options{})
//	defer eng.Close()
//
//	eng.Update(16)                                       // advance 16 ms
//	eng.SpawnEffect(physics.Vec2{X: 10, Y: 10}, engine.Red) // any goroutine
//	eng.Render(func(x, y, r, g, b, a float32) { ... })
//
// # Capacity
//
// A frame holds [Capacity] particles. Particles requested beyond that are
// dropped silently and counted in [Stats.Overflow]; this is backpressure, not
// an error.
package engine
