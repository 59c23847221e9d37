package engine

import "sync/atomic"

// slotHeld marks a slot owned for writing. Non-negative values count readers.
const slotHeld int32 = -1

// SlotPool tracks which frame slots are in use without blocking.
//
// A slot is free (0), held by one writer (-1), or pinned by one or more
// readers (>0). Writers only take free slots, so a pinned slot is never
// rewritten underneath a reader.
type SlotPool struct {
	states []atomic.Int32
}

func NewSlotPool(n int) *SlotPool {
	return &SlotPool{states: make([]atomic.Int32, n)}
}

func (p *SlotPool) Len() int { return len(p.states) }

// AcquireAvailable makes one round-robin pass over the slots after read and
// holds the first free one. It never returns read.
func (p *SlotPool) AcquireAvailable(read int) (int, bool) {
	return p.AcquireWhere(read, nil)
}

// AcquireWhere is AcquireAvailable with an extra check run while the
// candidate is held. Rejected candidates are released and the scan goes on.
func (p *SlotPool) AcquireWhere(read int, accept func(index int) bool) (int, bool) {
	n := len(p.states)
	for step := 1; step < n; step++ {
		i := (read + step) % n
		if !p.states[i].CompareAndSwap(0, slotHeld) {
			continue
		}
		if accept == nil || accept(i) {
			return i, true
		}
		p.Release(i)
	}
	return 0, false
}

// Hold takes a specific free slot for writing.
func (p *SlotPool) Hold(index int) bool {
	return p.states[index].CompareAndSwap(0, slotHeld)
}

// Release frees a held slot.
func (p *SlotPool) Release(index int) {
	p.states[index].CompareAndSwap(slotHeld, 0)
}

// Pin marks a slot as being read. It fails only while the slot is held.
func (p *SlotPool) Pin(index int) bool {
	for {
		s := p.states[index].Load()
		if s == slotHeld {
			return false
		}
		if p.states[index].CompareAndSwap(s, s+1) {
			return true
		}
	}
}

func (p *SlotPool) Unpin(index int) {
	p.states[index].Add(-1)
}

// Held reports whether a writer owns the slot.
func (p *SlotPool) Held(index int) bool {
	return p.states[index].Load() == slotHeld
}

// Pins returns the number of readers on the slot.
func (p *SlotPool) Pins(index int) int {
	if s := p.states[index].Load(); s > 0 {
		return int(s)
	}
	return 0
}
