package sim

import (
	"context"
	"sync"

	"github.com/san-kum/sparks/internal/engine"
)

// Factory builds a fresh engine for one ensemble member.
type Factory func(seed uint64) (*engine.Engine, error)

// Ensemble runs the same script on several engines at once, each seeded
// from seedStart plus its index.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart uint64
	runner    func(Engine) *Runner
}

func NewEnsemble(factory Factory, numRuns int, seedStart uint64, runner func(Engine) *Runner) *Ensemble {
	if runner == nil {
		runner = func(e Engine) *Runner { return NewRunner(e, nil) }
	}
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart, runner: runner}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			eng, err := e.factory(e.seedStart + uint64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			defer eng.Close()

			results[idx], errs[idx] = e.runner(eng).Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
