package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner steps an engine in virtual time, one tick per Config.TickMs, firing
// scripted spawns on the way.
type Runner struct {
	eng       Engine
	log       *slog.Logger
	observers []Observer
}

func NewRunner(eng Engine, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		eng:       eng,
		log:       log.With("component", "runner"),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{}
	script := NewScript(cfg.Spawns)

	start := time.Now()
	progress := max(cfg.Ticks/10, 1)

	var clock int64
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		spawned, rejected, err := script.Fire(clock, r.eng)
		result.Spawned += spawned
		result.Rejected += rejected
		if err != nil {
			return result, RunError{Tick: i, Err: err}
		}

		tickStart := time.Now()
		before := r.eng.Stats().Tick
		r.eng.Update(cfg.TickMs)
		if _, err := r.eng.AwaitTick(ctx, before); err != nil {
			return result, RunError{Tick: i, Err: err}
		}
		clock += cfg.TickMs

		stats := r.eng.Stats()
		elapsed := time.Since(tickStart)
		for _, obs := range r.observers {
			obs.OnTick(stats, elapsed)
		}

		result.Ticks++
		result.ClockMs = clock
		result.Final = stats
		result.PeakLive = max(result.PeakLive, stats.Live)

		if (i+1)%progress == 0 {
			r.log.Debug("progress", "tick", i+1, "of", cfg.Ticks, "live", stats.Live)
		}
	}

	result.Elapsed = time.Since(start)
	r.log.Info("run complete",
		"ticks", result.Ticks,
		"clock_ms", result.ClockMs,
		"peak_live", result.PeakLive,
		"spawned", result.Spawned,
		"rejected", result.Rejected,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.TickMs <= 0 {
		return fmt.Errorf("tick must be positive, got %d ms", cfg.TickMs)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	for i, s := range cfg.Spawns {
		if s.AtMs < 0 {
			return fmt.Errorf("spawn %d: start must not be negative, got %d ms", i, s.AtMs)
		}
		if s.EveryMs < 0 {
			return fmt.Errorf("spawn %d: interval must not be negative, got %d ms", i, s.EveryMs)
		}
		if s.Count <= 0 {
			return fmt.Errorf("spawn %d: count must be positive, got %d", i, s.Count)
		}
	}
	return nil
}
