package sim

import (
	"sync"
)

// TickEvent asks a component to run one cycle.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a TickEvent for handler at the given time.
func MakeTickEvent(handler Handler, time VTimeInSec) TickEvent {
	return TickEvent{EventBase: MakeEventBase(time, handler)}
}

// A Ticker runs one cycle of a component. Returning false means the
// component is idle and no further tick is scheduled until it is woken up.
type Ticker interface {
	Tick() bool
}

// TickScheduler keeps the ticks of one component on the cycle boundaries of
// Freq. A cycle is never ticked twice.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Freq    Freq
	Engine  Engine

	lastScheduled VTimeInSec
	lastTicked    VTimeInSec
}

// NewTickScheduler creates a scheduler that sends tick events to handler.
func NewTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	return &TickScheduler{
		handler:       handler,
		Engine:        engine,
		Freq:          freq,
		lastScheduled: -1,
		lastTicked:    -1,
	}
}

// TickNow wakes the component up in the current cycle. If that cycle has
// already been ticked, the tick moves to the next cycle.
func (t *TickScheduler) TickNow() {
	t.schedule(t.Freq.ThisTick(t.CurrentTime()))
}

// TickLater schedules a tick in the cycle after the current time.
func (t *TickScheduler) TickLater() {
	t.schedule(t.Freq.NextTick(t.CurrentTime()))
}

func (t *TickScheduler) schedule(at VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if at <= t.lastTicked {
		at = t.Freq.NextTick(t.lastTicked)
	}

	if at <= t.lastScheduled {
		return
	}

	t.lastScheduled = at
	t.Engine.Schedule(MakeTickEvent(t.handler, at))
}

func (t *TickScheduler) ticked(at VTimeInSec) {
	t.lock.Lock()
	t.lastTicked = at
	t.lock.Unlock()
}

// CurrentTime returns the time of the engine.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}

// TickingComponent is a component whose state advances once per cycle for as
// long as its Ticker reports progress.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// Handle runs one cycle and schedules the next one when the ticker made
// progress.
func (c *TickingComponent) Handle(e Event) error {
	c.ticked(e.Time())

	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a TickingComponent named name that drives
// ticker at freq.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		ComponentBase: NewComponentBase(name),
		ticker:        ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)

	return tc
}
