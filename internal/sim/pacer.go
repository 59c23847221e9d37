package sim

import "time"

// Pacer converts wall-clock time into whole-millisecond engine deltas. The
// sub-millisecond remainder carries into the next delta so no time is lost.
type Pacer struct {
	now   func() time.Time
	last  time.Time
	carry time.Duration
}

func NewPacer() *Pacer { return &Pacer{now: time.Now} }

// Delta returns the milliseconds elapsed since the previous call. The first
// call starts the clock and returns zero.
func (p *Pacer) Delta() int64 {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
		return 0
	}

	elapsed := now.Sub(p.last) + p.carry
	p.last = now
	if elapsed < 0 {
		p.carry = 0
		return 0
	}

	ms := elapsed.Milliseconds()
	p.carry = elapsed - time.Duration(ms)*time.Millisecond
	return ms
}

// Reset drops the accumulated remainder and restarts the clock, for example
// after a pause.
func (p *Pacer) Reset() {
	p.last = time.Time{}
	p.carry = 0
}
