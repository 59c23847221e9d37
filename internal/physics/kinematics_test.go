package physics

import (
	"math"
	"testing"
)

func TestKinematicsStep(t *testing.T) {
	k := Kinematics{Drag: 0.5, Gravity: 10}

	pos, vel := k.Step(Vec2{1, 2}, Vec2{4, 8}, 0.5)

	if !pos.Equal(Vec2{3, 6}) {
		t.Errorf("expected position {3 6}, got %v", pos)
	}
	if !vel.Equal(Vec2{2, -1}) {
		t.Errorf("expected velocity {2 -1}, got %v", vel)
	}
}

func TestKinematicsStep_ZeroDt(t *testing.T) {
	k := Kinematics{Drag: 0.999, Gravity: 9.81}

	pos, vel := k.Step(Vec2{5, 5}, Vec2{10, 0}, 0)

	if !pos.Equal(Vec2{5, 5}) {
		t.Errorf("position moved with zero dt: %v", pos)
	}
	if vel.Y != 0 {
		t.Errorf("gravity applied with zero dt: %v", vel)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"origin", Vec2{0, 0}, true},
		{"center", Vec2{50, 25}, true},
		{"far corner", Vec2{100, 50}, true},
		{"left", Vec2{-0.1, 10}, false},
		{"right", Vec2{100.1, 10}, false},
		{"below", Vec2{10, -1}, false},
		{"above", Vec2{10, 51}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	v := Polar(math.Pi/2, 3)
	if math.Abs(float64(v.X)) > 1e-5 || math.Abs(float64(v.Y)-3) > 1e-5 {
		t.Errorf("expected {0 3}, got %v", v)
	}

	if l := Polar(1.234, 7).Len(); math.Abs(float64(l)-7) > 1e-4 {
		t.Errorf("expected length 7, got %f", l)
	}
}

func TestVec2_IsValid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if !(Vec2{1, 2}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec2{nan, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec2{0, inf}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}
