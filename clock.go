package motion

// Phase orders subscribers within one tick. Every trigger-phase callback runs
// before any animate-phase callback, so nodes always read a consistent
// snapshot of their triggers for the frame.
type Phase uint8

const (
	PhaseInput   Phase = iota // viewport scroll animations
	PhaseTrigger              // continuous triggers flush coalesced input
	PhaseAnimate              // nodes advance their interpolation
	numPhases
)

type clockEntry struct {
	id uint32
	fn func(dt float64)
}

// FrameClock is the single reference-counted frame driver shared by every
// continuously updating node. A tick is scheduled only while at least one
// subscriber is attached. The host calls Tick once per paint.
//
// FrameClock is not safe for concurrent use; all calls happen on the host's
// update loop.
type FrameClock struct {
	phases [numPhases][]clockEntry
	live   int
	dead   int
	nextID uint32
	frame  uint64

	ticking bool

	// OnScheduleChange, if set, is called when the clock transitions between
	// having no subscribers and having at least one.
	OnScheduleChange func(scheduled bool)
}

// NewFrameClock returns an empty clock.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// ClockHandle identifies one subscription. The zero value is inert.
type ClockHandle struct {
	id    uint32
	phase Phase
	clock *FrameClock
}

// Subscribe registers fn to run every tick in the given phase until the
// returned handle is removed.
func (c *FrameClock) Subscribe(phase Phase, fn func(dt float64)) ClockHandle {
	if phase >= numPhases {
		phase = PhaseAnimate
	}
	c.nextID++
	c.phases[phase] = append(c.phases[phase], clockEntry{id: c.nextID, fn: fn})
	c.live++
	if c.live == 1 && c.OnScheduleChange != nil {
		c.OnScheduleChange(true)
	}
	return ClockHandle{id: c.nextID, phase: phase, clock: c}
}

// Remove unsubscribes the handle. Removing twice, or removing the zero
// handle, is a no-op.
func (h ClockHandle) Remove() {
	if h.clock == nil {
		return
	}
	h.clock.remove(h.phase, h.id)
}

// Active reports whether the subscription is still attached.
func (h ClockHandle) Active() bool {
	if h.clock == nil {
		return false
	}
	for _, e := range h.clock.phases[h.phase] {
		if e.id == h.id {
			return e.fn != nil
		}
	}
	return false
}

func (c *FrameClock) remove(phase Phase, id uint32) {
	s := c.phases[phase]
	for i := range s {
		if s[i].id != id {
			continue
		}
		if s[i].fn == nil {
			return
		}
		if c.ticking {
			// Compacted after the tick so in-flight iteration stays valid.
			s[i].fn = nil
			c.dead++
		} else {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clockEntry{}
			c.phases[phase] = s[:len(s)-1]
		}
		c.live--
		if c.live == 0 && c.OnScheduleChange != nil {
			c.OnScheduleChange(false)
		}
		return
	}
}

// Subscribers returns the number of attached subscriptions.
func (c *FrameClock) Subscribers() int {
	return c.live
}

// Scheduled reports whether a tick is pending, i.e. whether anything is
// subscribed.
func (c *FrameClock) Scheduled() bool {
	return c.live > 0
}

// Frame returns the number of ticks run so far.
func (c *FrameClock) Frame() uint64 {
	return c.frame
}

// Tick runs every subscriber, phase by phase, with dt seconds of
// elapsed time. It returns false without doing anything when nothing is
// subscribed. Subscriptions added during a tick join the phases that have
// not run yet.
func (c *FrameClock) Tick(dt float64) bool {
	if c.live == 0 || c.ticking {
		return false
	}
	c.ticking = true
	c.frame++
	for p := range c.phases {
		for i := 0; i < len(c.phases[p]); i++ {
			if fn := c.phases[p][i].fn; fn != nil {
				fn(dt)
			}
		}
	}
	c.ticking = false
	if c.dead > 0 {
		c.compact()
	}
	return true
}

func (c *FrameClock) compact() {
	for p := range c.phases {
		s := c.phases[p]
		n := 0
		for _, e := range s {
			if e.fn != nil {
				s[n] = e
				n++
			}
		}
		for i := n; i < len(s); i++ {
			s[i] = clockEntry{}
		}
		c.phases[p] = s[:n]
	}
	c.dead = 0
}
