package sim

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/san-kum/sparks/internal/engine"
)

func TestEnsembleRun(t *testing.T) {
	var (
		mu    sync.Mutex
		seeds []uint64
	)
	factory := func(seed uint64) (*engine.Engine, error) {
		mu.Lock()
		seeds = append(seeds, seed)
		mu.Unlock()
		return engine.New(engine.Options{Workers: 1, Seed: seed, Logger: quiet})
	}

	ens := NewEnsemble(factory, 3, 100, func(e Engine) *Runner { return NewRunner(e, quiet) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := ens.Run(ctx, Config{TickMs: 10, Ticks: 5})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Ticks != 5 {
			t.Errorf("run %d: expected 5 ticks, got %d", i, r.Ticks)
		}
	}

	seen := make(map[uint64]bool)
	for _, s := range seeds {
		seen[s] = true
	}
	for _, want := range []uint64{100, 101, 102} {
		if !seen[want] {
			t.Errorf("seed %d not used, got %v", want, seeds)
		}
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	boom := errors.New("boom")
	ens := NewEnsemble(func(uint64) (*engine.Engine, error) { return nil, boom }, 2, 1, nil)

	if _, err := ens.Run(context.Background(), Config{TickMs: 1, Ticks: 1}); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}
