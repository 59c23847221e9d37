package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/sim"
)

const (
	DefaultWidth   = 1024
	DefaultHeight  = 768
	DefaultTickMs  = 16
	DefaultTicks   = 300
	DefaultFPS     = 30
	DefaultDataDir = ".sparks"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Width   float32       `yaml:"width"`
	Height  float32       `yaml:"height"`
	Workers int           `yaml:"workers"`
	Seed    uint64        `yaml:"seed"`
	TickMs  int64         `yaml:"tick_ms"`
	Ticks   int           `yaml:"ticks"`
	DataDir string        `yaml:"data_dir"`
	Spawns  []SpawnConfig `yaml:"spawns"`
	Live    LiveConfig    `yaml:"live"`
}

// SpawnConfig places effects at X, Y in viewport coordinates (y up). Color is
// a name (white, red, green, blue) or a #rrggbb hex string.
type SpawnConfig struct {
	AtMs    int64   `yaml:"at_ms"`
	EveryMs int64   `yaml:"every_ms,omitempty"`
	Count   int     `yaml:"count"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Color   string  `yaml:"color,omitempty"`
}

type LiveConfig struct {
	FPS          int `yaml:"fps"`
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		TickMs:  DefaultTickMs,
		Ticks:   DefaultTicks,
		DataDir: DefaultDataDir,
		Spawns: []SpawnConfig{
			{Count: 1, X: DefaultWidth / 2, Y: DefaultHeight / 2, Color: "white"},
		},
		Live: LiveConfig{
			FPS:          DefaultFPS,
			WindowWidth:  DefaultWidth,
			WindowHeight: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMs)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.Live.FPS <= 0 {
		return fmt.Errorf("%w: live.fps must be positive, got %d", ErrInvalidConfig, c.Live.FPS)
	}
	for i, s := range c.Spawns {
		if s.Count <= 0 {
			return fmt.Errorf("%w: spawn %d: count must be positive", ErrInvalidConfig, i)
		}
		if s.AtMs < 0 || s.EveryMs < 0 {
			return fmt.Errorf("%w: spawn %d: times must not be negative", ErrInvalidConfig, i)
		}
		if _, err := ParseColor(s.Color); err != nil {
			return fmt.Errorf("%w: spawn %d: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

func (c *Config) Viewport() physics.Bounds {
	return physics.Bounds{Width: c.Width, Height: c.Height}
}

func (c *Config) EngineOptions(log *slog.Logger) engine.Options {
	return engine.Options{
		Workers:  c.Workers,
		Viewport: c.Viewport(),
		Seed:     c.Seed,
		Logger:   log,
	}
}

// SimConfig converts the run section into a sim.Config. It assumes Validate
// has passed.
func (c *Config) SimConfig() (sim.Config, error) {
	spawns := make([]sim.Spawn, 0, len(c.Spawns))
	for i, s := range c.Spawns {
		col, err := ParseColor(s.Color)
		if err != nil {
			return sim.Config{}, fmt.Errorf("spawn %d: %w", i, err)
		}
		spawns = append(spawns, sim.Spawn{
			AtMs:     s.AtMs,
			EveryMs:  s.EveryMs,
			Count:    s.Count,
			Position: physics.Vec2{X: s.X, Y: s.Y},
			Color:    col,
		})
	}
	return sim.Config{TickMs: c.TickMs, Ticks: c.Ticks, Spawns: spawns}, nil
}

var namedColors = map[string]engine.Color{
	"":      engine.White,
	"white": engine.White,
	"red":   engine.Red,
	"green": engine.Green,
	"blue":  engine.Blue,
}

func ParseColor(s string) (engine.Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return engine.Color{}, fmt.Errorf("unknown color %q", s)
	}
	return engine.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}, nil
}
