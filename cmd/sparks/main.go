package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/sparks/internal/config"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	workers    int
	seed       uint64
	// Run length
	ticks  int
	tickMs int64
	// Output
	svgPath   string
	outPath   string
	framePath string
	noSave    bool
	// Bench
	numRuns int
	// Live view frame rate
	frameRate int
)

// main registers the sparks commands and flags and runs the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sparks",
		Short:         "multi-worker particle effect simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(log)
			return nil
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config, "+config.DefaultDataDir+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "worker count (0 = cpus-1)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (overrides config)")
	runCmd.Flags().Int64Var(&tickMs, "tick-ms", 0, "virtual milliseconds per tick (overrides config)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "live terminal view, click to spawn",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (overrides config)")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run in a window, click or drag to spawn",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", 0, "target frame rate (overrides config)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "run the same script on several engines in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSimulation,
	}
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of engines")
	benchCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (overrides config)")
	benchCmd.Flags().Int64Var(&tickMs, "tick-ms", 0, "virtual milliseconds per tick (overrides config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot live particle count of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the plot as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "run a preset and write its final frame as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&framePath, "out", "o", "frame.svg", "output file")
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (overrides config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, benchCmd, listCmd, plotCmd, exportCmd, snapshotCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}

// loadConfig resolves the preset named in args (or the --config file, or the
// defaults) and applies any flags the user set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "default"
	cfg := config.DefaultConfig()

	switch {
	case len(args) > 0:
		name = args[0]
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "config"
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("ticks") != nil && flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Lookup("tick-ms") != nil && flags.Changed("tick-ms") {
		cfg.TickMs = tickMs
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}
