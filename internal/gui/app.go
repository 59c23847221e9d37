package gui

import (
	"log/slog"
	"math/rand/v2"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/input"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const maxTelemetry = 200

type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
	Script *sim.Script
	Logger *slog.Logger
}

// App drives an engine from a raylib window: the window clock feeds Update,
// mouse input spawns effects and every frame draws the published particles.
type App struct {
	Engine    *engine.Engine
	Mouse     *input.Mouse
	Spawner   *input.Spawner
	Pacer     *sim.Pacer
	Script    *sim.Script
	Title     string
	Running   bool
	ShowHUD   bool
	Telemetry []float64
	Font      rl.Font

	log      *slog.Logger
	rng      *rand.Rand
	lastPos  physics.Vec2
	quit     bool
	drawn    int
	frameDur time.Duration
}

var mouseButtons = []struct {
	rl  rl.MouseButton
	btn input.Button
}{
	{rl.MouseButtonLeft, input.ButtonLeft},
	{rl.MouseButtonRight, input.ButtonRight},
	{rl.MouseButtonMiddle, input.ButtonMiddle},
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func NewApp(eng *engine.Engine, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "gui")

	mouse := input.NewMouse(eng.Viewport())
	spawner := input.NewSpawner(eng, input.NewPalette(0), log)
	mouse.Connect(spawner)

	return &App{
		Engine:    eng,
		Mouse:     mouse,
		Spawner:   spawner,
		Pacer:     sim.NewPacer(),
		Script:    opts.Script,
		Title:     opts.Title,
		Running:   true,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		Font:      rl.GetFontDefault(),
		log:       log,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)),
	}
}

// Run opens the window and blocks until it is closed.
func Run(eng *engine.Engine, opts Options) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "sparks"
	}

	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(eng, opts)
	app.log.Info("window opened", "width", opts.Width, "height", opts.Height, "fps", opts.FPS)
	app.RunLoop()
	app.log.Info("window closed", "spawned", app.Spawner.Spawned(), "rejected", app.Spawner.Rejected())
}

func (a *App) RunLoop() {
	a.Pacer.Delta()
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
		if a.Running {
			a.Pacer.Reset()
			a.Pacer.Delta()
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		view := a.Engine.Viewport()
		a.Spawner.Spawn(physics.Vec2{X: a.rng.Float32() * view.Width, Y: a.rng.Float32() * view.Height})
	}

	a.pollMouse()

	if !a.Running {
		return
	}

	a.Engine.Update(a.Pacer.Delta())
	stats := a.Engine.Stats()
	if a.Script != nil {
		a.Script.Fire(stats.ClockMs, a.Engine)
	}

	a.Telemetry = append(a.Telemetry, float64(stats.Live))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

// pollMouse turns raylib's polled mouse state into input events.
func (a *App) pollMouse() {
	pos := a.toViewport(rl.GetMousePosition())

	if pos != a.lastPos {
		a.Mouse.Dispatch(input.MouseMove{Pos: pos})
		a.lastPos = pos
	}
	for _, mb := range mouseButtons {
		if rl.IsMouseButtonPressed(mb.rl) {
			a.Mouse.Dispatch(input.MouseButton{Pos: pos, Button: mb.btn, Down: true})
		}
		if rl.IsMouseButtonReleased(mb.rl) {
			a.Mouse.Dispatch(input.MouseButton{Pos: pos, Button: mb.btn})
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Mouse.Dispatch(input.Wheel{Pos: pos, Delta: wheel})
	}
}

func (a *App) screen() (float32, float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

// toViewport maps window pixels (y down) to viewport coordinates (y up).
func (a *App) toViewport(p rl.Vector2) physics.Vec2 {
	sw, sh := a.screen()
	view := a.Engine.Viewport()
	return physics.Vec2{
		X: p.X / sw * view.Width,
		Y: (sh - p.Y) / sh * view.Height,
	}
}

func (a *App) Draw() {
	start := time.Now()
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawParticles()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
	a.frameDur = time.Since(start)
}
