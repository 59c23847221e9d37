package metrics

import (
	"sync"
	"time"

	"github.com/san-kum/sparks/internal/engine"
)

// TickSample is one row of a run's tick log.
type TickSample struct {
	Tick       uint64 `csv:"tick" json:"tick"`
	ClockMs    int64  `csv:"clock_ms" json:"clock_ms"`
	Live       uint32 `csv:"live" json:"live"`
	Spawned    uint64 `csv:"spawned" json:"spawned"`
	Rejected   uint64 `csv:"rejected" json:"rejected"`
	Overflow   uint64 `csv:"overflow" json:"overflow"`
	TickMicros int64  `csv:"tick_us" json:"tick_us"`
}

// Recorder keeps a TickSample per observed tick.
type Recorder struct {
	mu      sync.Mutex
	samples []TickSample
}

func NewRecorder() *Recorder {
	return &Recorder{samples: make([]TickSample, 0, 256)}
}

func (r *Recorder) OnTick(s engine.Stats, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, TickSample{
		Tick:       s.Tick,
		ClockMs:    s.ClockMs,
		Live:       s.Live,
		Spawned:    s.Spawned,
		Rejected:   s.Rejected,
		Overflow:   s.Overflow,
		TickMicros: elapsed.Microseconds(),
	})
}

// Samples returns a copy of everything recorded so far.
func (r *Recorder) Samples() []TickSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TickSample, len(r.samples))
	copy(out, r.samples)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = r.samples[:0]
}
