package sim

import (
	"errors"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/physics"
)

type SpawnTarget interface {
	SpawnEffect(pos physics.Vec2, c engine.Color) error
}

// Script fires a list of Spawns as the engine clock passes their due times.
type Script struct {
	spawns []Spawn
	next   []int64
}

func NewScript(spawns []Spawn) *Script {
	s := &Script{spawns: spawns, next: make([]int64, len(spawns))}
	for i, sp := range spawns {
		s.next[i] = sp.AtMs
	}
	return s
}

// Fire triggers every spawn due at or before clock. A spawn that fell
// several intervals behind fires once and is rescheduled after clock. A
// saturated engine rejects effects without failing the script.
func (s *Script) Fire(clock int64, target SpawnTarget) (spawned, rejected int, err error) {
	for i := range s.spawns {
		sp := &s.spawns[i]
		if s.next[i] < 0 || s.next[i] > clock {
			continue
		}

		for n := 0; n < sp.Count; n++ {
			switch err := target.SpawnEffect(sp.Position, sp.Color); {
			case err == nil:
				spawned++
			case errors.Is(err, engine.ErrSlotsSaturated):
				rejected++
			default:
				return spawned, rejected, err
			}
		}

		if sp.EveryMs > 0 {
			for s.next[i] <= clock {
				s.next[i] += sp.EveryMs
			}
		} else {
			s.next[i] = -1
		}
	}
	return spawned, rejected, nil
}

// Done reports whether no spawn will ever fire again.
func (s *Script) Done() bool {
	for _, n := range s.next {
		if n >= 0 {
			return false
		}
	}
	return true
}
