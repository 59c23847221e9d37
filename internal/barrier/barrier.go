// Package barrier provides a reusable N-party rendezvous that can be
// cancelled.
package barrier

import "sync"

// Barrier releases its parties together once all of them have called Wait.
// It is reusable: every release starts a new generation. Drop cancels it for
// good.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
	dropped    bool
}

func New(parties int) *Barrier {
	if parties < 1 {
		parties = 1
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *Barrier) Parties() int { return b.parties }

// Wait blocks until every party of the current generation has arrived or the
// barrier is dropped. It reports whether the generation completed; after Drop
// it returns false immediately.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dropped {
		return false
	}

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}

	for gen == b.generation && !b.dropped {
		b.cond.Wait()
	}
	return gen != b.generation
}

// Drop releases all current waiters and makes every later Wait return
// immediately.
func (b *Barrier) Drop() {
	b.mu.Lock()
	b.dropped = true
	b.mu.Unlock()
	b.cond.Broadcast()
}

func (b *Barrier) Dropped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Generation returns the number of completed rendezvous.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}
