package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/export"
	"github.com/san-kum/sparks/internal/gui"
	"github.com/san-kum/sparks/internal/metrics"
	"github.com/san-kum/sparks/internal/sim"
	"github.com/san-kum/sparks/internal/storage"
	"github.com/san-kum/sparks/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.EngineOptions(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer eng.Close()

	rec := metrics.NewRecorder()
	set := metrics.NewSet(metrics.NewOccupancy(engine.Capacity), metrics.NewDropRate())
	runner := sim.NewRunner(eng, slog.Default())
	runner.AddObserver(rec)
	runner.AddObserver(set)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation...\n", name)
	result, err := runner.Run(ctx, simCfg)
	if err != nil {
		return err
	}

	samples := rec.Samples()
	summary := metrics.Summarize(samples)
	values := summary.Map()
	maps.Copy(values, set.Values())

	if svgPath != "" {
		if err := writeFile(svgPath, export.FrameToSVG(eng.Particles(), eng.Viewport(), 1)); err != nil {
			return err
		}
		fmt.Printf("frame written to %s\n", svgPath)
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Name:    name,
			Seed:    cfg.Seed,
			Workers: eng.Workers(),
			TickMs:  cfg.TickMs,
			Ticks:   result.Ticks,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Metrics: values,
		}, samples)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("ticks: %d (%d ms simulated)\n", result.Ticks, result.ClockMs)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "  %s\t%.4f\n", k, values[k])
	}
	return w.Flush()
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	quiet := slog.New(slog.DiscardHandler)
	factory := func(s uint64) (*engine.Engine, error) {
		opts := cfg.EngineOptions(quiet)
		opts.Seed = s
		return engine.New(opts)
	}
	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = 1
	}
	ens := sim.NewEnsemble(factory, numRuns, seedStart, func(e sim.Engine) *sim.Runner {
		return sim.NewRunner(e, quiet)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %s: %d engines x %d ticks\n\n", name, numRuns, simCfg.Ticks)
	start := time.Now()
	results, err := ens.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	total := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tTICKS\tPEAK\tSPAWNED\tREJECTED\tTIME\tTICKS/SEC")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%v\t%.0f\n",
			i,
			seedStart+uint64(i),
			r.Ticks,
			r.PeakLive,
			r.Spawned,
			r.Rejected,
			r.Elapsed.Round(time.Millisecond),
			float64(r.Ticks)/r.Elapsed.Seconds(),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ntotal: %v\n", total.Round(time.Millisecond))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && configFile == "" {
		return runMenu(cmd)
	}

	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg.EngineOptions(slog.New(slog.DiscardHandler)))
	if err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer eng.Close()

	m, err := liveModel(cmd, eng, cfg, name)
	if err != nil {
		return err
	}
	return viz.RunLive(m)
}

func runMenu(cmd *cobra.Command) error {
	names := config.ListPresets()
	info := make(map[string]string, len(names))
	for _, n := range names {
		info[n] = describe(config.GetPreset(n))
	}

	var engines []*engine.Engine
	defer func() {
		for _, e := range engines {
			e.Close()
		}
	}()

	launch := func(preset string) (viz.Model, error) {
		cfg, name, err := loadConfig(cmd, []string{preset})
		if err != nil {
			return viz.Model{}, err
		}
		eng, err := engine.New(cfg.EngineOptions(slog.New(slog.DiscardHandler)))
		if err != nil {
			return viz.Model{}, err
		}
		engines = append(engines, eng)
		return liveModel(cmd, eng, cfg, name)
	}

	return viz.RunMenu(names, info, launch)
}

func liveModel(cmd *cobra.Command, eng *engine.Engine, cfg *config.Config, name string) (viz.Model, error) {
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return viz.Model{}, err
	}
	fps := cfg.Live.FPS
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		fps = frameRate
	}
	return viz.NewModel(eng, "sparks · "+name, fps, nil, sim.NewScript(simCfg.Spawns)), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.EngineOptions(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer eng.Close()

	fps := 60
	if cmd.Flags().Changed("fps") {
		fps = frameRate
	}
	gui.Run(eng, gui.Options{
		Title:  "sparks · " + name,
		Width:  cfg.Live.WindowWidth,
		Height: cfg.Live.WindowHeight,
		FPS:    fps,
		Script: sim.NewScript(simCfg.Spawns),
		Logger: slog.Default(),
	})
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.EngineOptions(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer eng.Close()

	result, err := sim.NewRunner(eng, slog.Default()).Run(cmd.Context(), simCfg)
	if err != nil {
		return err
	}
	if err := writeFile(framePath, export.FrameToSVG(eng.Particles(), eng.Viewport(), 1)); err != nil {
		return err
	}
	fmt.Printf("%s: %d particles at %d ms written to %s\n", name, result.Final.Live, result.ClockMs, framePath)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir())
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tWORKERS\tTICKS\tTICK_MS\tPEAK\tMEAN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.0f\t%.1f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Workers,
			run.Ticks,
			run.TickMs,
			run.Metrics["peak_live"],
			run.Metrics["mean_live"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(storeDir())
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(samples))

	live := make([]float64, len(samples))
	tickUs := make([]float64, len(samples))
	points := make([]export.Point, len(samples))
	for i, s := range samples {
		live[i] = float64(s.Live)
		tickUs[i] = float64(s.TickMicros)
		points[i] = export.Point{X: float64(s.ClockMs), Y: float64(s.Live)}
	}

	fmt.Println(asciigraph.Plot(live,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("live particles"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(tickUs,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("tick time (us)"),
	))

	if svgPath != "" {
		if err := writeFile(svgPath, export.SeriesToSVG(points, 800, 300, "#40c0ff")); err != nil {
			return err
		}
		fmt.Printf("\nplot written to %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir())

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := st.ExportRun(w, args[0]); err != nil {
		return fmt.Errorf("failed to export %s: %w", args[0], err)
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("available presets:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "  %s\t%s\n", name, describe(config.GetPreset(name)))
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "sparks.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}

func describe(cfg *config.Config) string {
	return fmt.Sprintf("%d ticks x %d ms, %d spawn points", cfg.Ticks, cfg.TickMs, len(cfg.Spawns))
}

// storeDir picks the run directory for commands that only read storage.
func storeDir() string {
	if dataDir != "" {
		return dataDir
	}
	if configFile != "" {
		if cfg, err := config.Load(configFile); err == nil {
			return cfg.DataDir
		}
	}
	return config.DefaultDataDir
}

func writeFile(path, content string) error {
	if content == "" {
		return fmt.Errorf("nothing to write to %s", path)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
