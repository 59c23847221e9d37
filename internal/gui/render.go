package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawParticles plots the published frame as 2x2 squares, flipping y.
func (a *App) drawParticles() {
	sw, sh := a.screen()
	view := a.Engine.Viewport()
	sx, sy := sw/view.Width, sh/view.Height

	a.drawn = 0
	a.Engine.Render(func(x, y, r, g, b, al float32) {
		px := int32(x * sx)
		py := int32(sh - y*sy)
		rl.DrawRectangle(px, py, 2, 2, rl.ColorFromNormalized(rl.NewVector4(r, g, b, al)))
		a.drawn++
	})
}

func (a *App) DrawHUD() {
	sw, sh := a.screen()
	stats := a.Engine.Stats()

	a.drawText("sparks", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Title), 140, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, int(sw)-130, 30, 16, col)

	lines := []string{
		fmt.Sprintf("live     %d", stats.Live),
		fmt.Sprintf("drawn    %d", a.drawn),
		fmt.Sprintf("tick     %d", stats.Tick),
		fmt.Sprintf("clock    %.2fs", float64(stats.ClockMs)/1000),
		fmt.Sprintf("workers  %d", stats.Workers),
		fmt.Sprintf("effects  %d", stats.Spawned),
		fmt.Sprintf("dropped  %d", stats.Rejected),
		fmt.Sprintf("overflow %d", stats.Overflow),
		fmt.Sprintf("draw     %s", a.frameDur.Round(10_000)),
	}
	for i, l := range lines {
		a.drawText(l, 30, 70+i*18, 14, ColText)
	}

	a.DrawTelemetry(30, int(sh)-110)

	a.drawText("[CLICK] SPAWN  [DRAG] TRAIL  [WHEEL] HUE  [S] RANDOM  [SPACE] PAUSE  [H] HUD  [Q] QUIT", 30, int(sh)-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int(sw)-100, int(sh)-30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots recent live counts as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}

	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	rl.DrawRectangleLines(int32(rectX), int32(rectY), int32(width), int32(height), ColGrid)

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("live %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
