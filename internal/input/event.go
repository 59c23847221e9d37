// Package input turns frontend mouse and keyboard activity into engine spawn
// requests. Frontends translate their native events into Event values and
// hand them to a Mouse, which tracks pointer state and notifies listeners.
package input

import "github.com/san-kum/sparks/internal/physics"

type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Buttons is the set of buttons held down.
type Buttons uint8

func (b Buttons) Has(btn Button) bool        { return b&(1<<btn) != 0 }
func (b Buttons) With(btn Button) Buttons    { return b | 1<<btn }
func (b Buttons) Without(btn Button) Buttons { return b &^ (1 << btn) }

// Event is one of MouseMove, MouseButton, Wheel, Key or Resize. Positions are
// in viewport coordinates with y pointing up.
type Event interface {
	isEvent()
}

type MouseMove struct {
	Pos physics.Vec2
}

type MouseButton struct {
	Pos    physics.Vec2
	Button Button
	Down   bool
}

type Wheel struct {
	Pos   physics.Vec2
	Delta float32
}

type Key struct {
	Name string
	Down bool
}

type Resize struct {
	Width, Height float32
}

func (MouseMove) isEvent()   {}
func (MouseButton) isEvent() {}
func (Wheel) isEvent()       {}
func (Key) isEvent()         {}
func (Resize) isEvent()      {}
