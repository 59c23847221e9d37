package physics

import "math"

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float32         { return float32(math.Hypot(float64(v.X), float64(v.Y))) }
func (v Vec2) IsValid() bool        { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }

// Polar returns the vector of the given length pointing at angle radians.
func Polar(angle, length float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{float32(c) * length, float32(s) * length}
}

// Bounds is the rectangle [0,Width]x[0,Height]. Edges are inside.
type Bounds struct {
	Width, Height float32
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

func (b Bounds) Center() Vec2 { return Vec2{b.Width / 2, b.Height / 2} }

func (b Bounds) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

type Kinematics struct {
	Drag    float32 // velocity multiplier per step
	Gravity float32 // units/s^2 along -y
}

// Step advances pos by vel over dt seconds, then damps vel and applies gravity.
// Position uses the velocity from the start of the step.
func (k Kinematics) Step(pos, vel Vec2, dt float32) (Vec2, Vec2) {
	nextPos := pos.Add(vel.Scale(dt))
	nextVel := vel.Scale(k.Drag)
	nextVel.Y -= k.Gravity * dt
	return nextPos, nextVel
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
