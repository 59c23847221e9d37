package input

import (
	"sync"

	"github.com/san-kum/sparks/internal/physics"
)

type MouseHandler interface {
	OnMove(pos physics.Vec2, held Buttons)
	OnDown(pos physics.Vec2, btn Button)
	OnUp(pos physics.Vec2, btn Button)
	OnWheel(pos physics.Vec2, delta float32)
}

// KeyHandler may additionally be implemented by a connected MouseHandler.
type KeyHandler interface {
	OnKey(name string, down bool)
}

// Mouse tracks pointer state and forwards events to connected handlers in
// connection order.
type Mouse struct {
	mu       sync.Mutex
	handlers []MouseHandler
	pos      physics.Vec2
	held     Buttons
	bounds   physics.Bounds
}

func NewMouse(bounds physics.Bounds) *Mouse {
	return &Mouse{bounds: bounds}
}

func (m *Mouse) Connect(h MouseHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// Dispatch updates the tracked state and notifies handlers. Handlers run
// without the lock held so they may query the Mouse.
func (m *Mouse) Dispatch(ev Event) {
	m.mu.Lock()
	handlers := append([]MouseHandler(nil), m.handlers...)
	var held Buttons
	switch e := ev.(type) {
	case MouseMove:
		m.pos = e.Pos
	case MouseButton:
		m.pos = e.Pos
		if e.Down {
			m.held = m.held.With(e.Button)
		} else {
			m.held = m.held.Without(e.Button)
		}
	case Wheel:
		m.pos = e.Pos
	case Resize:
		m.bounds = physics.Bounds{Width: e.Width, Height: e.Height}
	}
	held = m.held
	m.mu.Unlock()

	for _, h := range handlers {
		switch e := ev.(type) {
		case MouseMove:
			h.OnMove(e.Pos, held)
		case MouseButton:
			if e.Down {
				h.OnDown(e.Pos, e.Button)
			} else {
				h.OnUp(e.Pos, e.Button)
			}
		case Wheel:
			h.OnWheel(e.Pos, e.Delta)
		case Key:
			if kh, ok := h.(KeyHandler); ok {
				kh.OnKey(e.Name, e.Down)
			}
		}
	}
}

func (m *Mouse) Position() physics.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *Mouse) Held() Buttons {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

func (m *Mouse) Bounds() physics.Bounds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bounds
}
