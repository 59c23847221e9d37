package metrics

import (
	"sync"
	"time"

	"github.com/san-kum/sparks/internal/engine"
)

// Metric folds per-tick engine stats into a single value.
type Metric interface {
	Name() string
	Observe(s engine.Stats, elapsed time.Duration)
	Value() float64
	Reset()
}

// Occupancy is the mean fraction of frame capacity in use.
type Occupancy struct {
	name     string
	capacity float64
	sum      float64
	samples  int
}

func NewOccupancy(capacity uint32) *Occupancy {
	return &Occupancy{name: "occupancy", capacity: float64(capacity)}
}

func (o *Occupancy) Name() string { return o.name }

func (o *Occupancy) Observe(s engine.Stats, _ time.Duration) {
	if o.capacity <= 0 {
		return
	}
	o.sum += float64(s.Live) / o.capacity
	o.samples++
}

func (o *Occupancy) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return o.sum / float64(o.samples)
}

func (o *Occupancy) Reset() {
	o.sum = 0
	o.samples = 0
}

// DropRate is the fraction of spawn requests the engine turned away.
type DropRate struct {
	name     string
	spawned  uint64
	rejected uint64
}

func NewDropRate() *DropRate {
	return &DropRate{name: "drop_rate"}
}

func (d *DropRate) Name() string { return d.name }

// Observe keeps the latest counters; engine counters are cumulative.
func (d *DropRate) Observe(s engine.Stats, _ time.Duration) {
	d.spawned = s.Spawned
	d.rejected = s.Rejected
}

func (d *DropRate) Value() float64 {
	total := d.spawned + d.rejected
	if total == 0 {
		return 0
	}
	return float64(d.rejected) / float64(total)
}

func (d *DropRate) Reset() {
	d.spawned = 0
	d.rejected = 0
}

// Set feeds every tick to a group of metrics. It satisfies sim.Observer.
type Set struct {
	mu      sync.Mutex
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Set) OnTick(st engine.Stats, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Observe(st, elapsed)
	}
}

func (s *Set) Values() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Reset()
	}
}
