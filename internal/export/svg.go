package export

import (
	"fmt"
	"iter"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

// FrameToSVG draws every particle as a dot, flipping y so the viewport's
// bottom edge is at the bottom of the image.
func FrameToSVG(particles iter.Seq[engine.Particle], view physics.Bounds, scale float64) string {
	if view.IsEmpty() {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	width := float64(view.Width) * scale
	height := float64(view.Height) * scale

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g>
`, width, height, width, height))

	dotRadius := scale * 1.2

	for p := range particles {
		if !view.Contains(p.Position) {
			continue
		}
		cx := float64(p.Position.X) * scale
		cy := height - float64(p.Position.Y)*scale
		fill := colorful.Color{R: float64(p.Color.R), G: float64(p.Color.G), B: float64(p.Color.B)}.Clamped().Hex()
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, cx, cy, dotRadius, fill, p.Color.A))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type Point struct{ X, Y float64 }

// SeriesToSVG draws points as a polyline scaled to fill the image.
func SeriesToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
