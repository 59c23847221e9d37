package config

import "sort"

var Presets = map[string]*Config{
	"burst": {
		Width: DefaultWidth, Height: DefaultHeight, TickMs: 16, Ticks: 250,
		Spawns: []SpawnConfig{
			{AtMs: 0, Count: 2, X: 512, Y: 384, Color: "white"},
		},
	},
	"fountain": {
		Width: DefaultWidth, Height: DefaultHeight, TickMs: 16, Ticks: 600,
		Spawns: []SpawnConfig{
			{AtMs: 0, EveryMs: 48, Count: 1, X: 512, Y: 60, Color: "#40c0ff"},
		},
	},
	"storm": {
		Width: DefaultWidth, Height: DefaultHeight, TickMs: 10, Ticks: 1000,
		Spawns: []SpawnConfig{
			{AtMs: 0, EveryMs: 100, Count: 2, X: 200, Y: 600, Color: "red"},
			{AtMs: 25, EveryMs: 100, Count: 2, X: 824, Y: 600, Color: "green"},
			{AtMs: 50, EveryMs: 100, Count: 2, X: 200, Y: 200, Color: "blue"},
			{AtMs: 75, EveryMs: 100, Count: 2, X: 824, Y: 200, Color: "#ffd040"},
		},
	},
	"rain": {
		Width: DefaultWidth, Height: DefaultHeight, TickMs: 16, Ticks: 900,
		Spawns: []SpawnConfig{
			{AtMs: 0, EveryMs: 400, Count: 1, X: 64, Y: 740, Color: "#8080ff"},
			{AtMs: 50, EveryMs: 400, Count: 1, X: 192, Y: 740, Color: "#8080ff"},
			{AtMs: 100, EveryMs: 400, Count: 1, X: 320, Y: 740, Color: "#8080ff"},
			{AtMs: 150, EveryMs: 400, Count: 1, X: 448, Y: 740, Color: "#8080ff"},
			{AtMs: 200, EveryMs: 400, Count: 1, X: 576, Y: 740, Color: "#8080ff"},
			{AtMs: 250, EveryMs: 400, Count: 1, X: 704, Y: 740, Color: "#8080ff"},
			{AtMs: 300, EveryMs: 400, Count: 1, X: 832, Y: 740, Color: "#8080ff"},
			{AtMs: 350, EveryMs: 400, Count: 1, X: 960, Y: 740, Color: "#8080ff"},
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in for
// everything the preset leaves out, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = p.Width, p.Height
	cfg.TickMs, cfg.Ticks = p.TickMs, p.Ticks
	cfg.Spawns = append([]SpawnConfig(nil), p.Spawns...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
