package sim

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

// fakeEngine ticks synchronously on every Update.
type fakeEngine struct {
	mu       sync.Mutex
	clock    int64
	ticks    uint64
	spawnsAt []int64
	capacity int
	spawnErr error
}

func (f *fakeEngine) Update(dt int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dt > 0 {
		f.clock += dt
		f.ticks++
	}
}

func (f *fakeEngine) SpawnEffect(pos physics.Vec2, c engine.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.spawnErr != nil {
		return f.spawnErr
	}
	if f.capacity > 0 && len(f.spawnsAt) >= f.capacity {
		return engine.ErrSlotsSaturated
	}
	f.spawnsAt = append(f.spawnsAt, f.clock)
	return nil
}

func (f *fakeEngine) Stats() engine.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return engine.Stats{Tick: f.ticks, ClockMs: f.clock, Live: uint32(len(f.spawnsAt) * engine.ParticlesPerEffect)}
}

func (f *fakeEngine) AwaitTick(ctx context.Context, after uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ticks > after {
		return f.ticks, nil
	}
	return f.ticks, context.DeadlineExceeded
}

var quiet = slog.New(slog.DiscardHandler)

func TestRunnerRun(t *testing.T) {
	eng := &fakeEngine{}
	r := NewRunner(eng, quiet)

	var seen []uint64
	r.AddObserver(ObserverFunc(func(s engine.Stats, _ time.Duration) {
		seen = append(seen, s.Tick)
	}))

	cfg := Config{
		TickMs: 10,
		Ticks:  10,
		Spawns: []Spawn{
			{AtMs: 0, Count: 2},
			{AtMs: 30, EveryMs: 20, Count: 1},
		},
	}

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 10 {
		t.Errorf("expected 10 ticks, got %d", result.Ticks)
	}
	if result.ClockMs != 100 {
		t.Errorf("expected clock 100, got %d", result.ClockMs)
	}
	if len(seen) != 10 || seen[9] != 10 {
		t.Errorf("expected observer on every tick, got %v", seen)
	}

	// once at 0 (x2), then 30, 50, 70, 90
	want := []int64{0, 0, 30, 50, 70, 90}
	if len(eng.spawnsAt) != len(want) {
		t.Fatalf("expected spawns at %v, got %v", want, eng.spawnsAt)
	}
	for i := range want {
		if eng.spawnsAt[i] != want[i] {
			t.Errorf("spawn %d: expected clock %d, got %d", i, want[i], eng.spawnsAt[i])
		}
	}
	if result.Spawned != 6 || result.Rejected != 0 {
		t.Errorf("expected 6 spawned 0 rejected, got %d/%d", result.Spawned, result.Rejected)
	}
	if result.PeakLive != 6*engine.ParticlesPerEffect {
		t.Errorf("expected peak %d, got %d", 6*engine.ParticlesPerEffect, result.PeakLive)
	}
}

func TestRunnerSaturationIsNotFatal(t *testing.T) {
	eng := &fakeEngine{capacity: 3}
	r := NewRunner(eng, quiet)

	result, err := r.Run(context.Background(), Config{
		TickMs: 5,
		Ticks:  4,
		Spawns: []Spawn{{Count: 5}},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Spawned != 3 || result.Rejected != 2 {
		t.Errorf("expected 3 spawned 2 rejected, got %d/%d", result.Spawned, result.Rejected)
	}
}

func TestRunnerSpawnErrorCarriesTick(t *testing.T) {
	eng := &fakeEngine{spawnErr: engine.ErrClosed}
	r := NewRunner(eng, quiet)

	_, err := r.Run(context.Background(), Config{
		TickMs: 5,
		Ticks:  4,
		Spawns: []Spawn{{AtMs: 10, Count: 1}},
	})

	var runErr RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Tick != 2 {
		t.Errorf("expected tick 2, got %d", runErr.Tick)
	}
	if !errors.Is(err, engine.ErrClosed) {
		t.Errorf("expected wrapped ErrClosed, got %v", err)
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(&fakeEngine{}, quiet).Run(ctx, Config{TickMs: 1, Ticks: 5})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero tick", Config{TickMs: 0, Ticks: 1}},
		{"negative ticks", Config{TickMs: 1, Ticks: -1}},
		{"negative start", Config{TickMs: 1, Ticks: 1, Spawns: []Spawn{{AtMs: -1, Count: 1}}}},
		{"negative interval", Config{TickMs: 1, Ticks: 1, Spawns: []Spawn{{EveryMs: -5, Count: 1}}}},
		{"zero count", Config{TickMs: 1, Ticks: 1, Spawns: []Spawn{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(&fakeEngine{}, quiet).Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestRunnerDrivesRealEngine(t *testing.T) {
	eng, err := engine.New(engine.Options{Workers: 2, Seed: 1, Logger: quiet})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer eng.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := NewRunner(eng, quiet).Run(ctx, Config{
		TickMs: 16,
		Ticks:  20,
		Spawns: []Spawn{{Count: 1, Position: engine.DefaultViewport.Center(), Color: engine.White}},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Final.Tick != 20 {
		t.Errorf("expected 20 engine ticks, got %d", result.Final.Tick)
	}
	if result.PeakLive < engine.ParticlesPerEffect {
		t.Errorf("expected at least one effect live, peak %d", result.PeakLive)
	}
}
