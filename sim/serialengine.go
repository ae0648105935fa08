package sim

import (
	"log"
	"math"
	"reflect"
	"sync"
)

// A SerialEngine handles one event at a time. Events due at the same time are
// handled in the order they were scheduled.
type SerialEngine struct {
	HookableBase

	clockLock sync.RWMutex
	now       VTimeInSec
	queue     EventQueue

	pausedLock sync.Mutex
	paused     bool
	gate       sync.Mutex

	runLock sync.Mutex

	endHandlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine with its clock at 0.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{queue: NewEventQueue()}
}

// Schedule queues an event. Events earlier than the clock are rejected with a
// panic.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.CurrentTime()
	if evt.Time() < now {
		log.Panicf("cannot schedule %s at %.10f, the clock reads %.10f",
			reflect.TypeOf(evt), evt.Time(), now)
	}

	e.queue.Push(evt)
}

// CurrentTime returns the time of the event being handled, or of the last
// handled event.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.clockLock.RLock()
	defer e.clockLock.RUnlock()

	return e.now
}

func (e *SerialEngine) setClock(t VTimeInSec) {
	e.clockLock.Lock()
	e.now = t
	e.clockLock.Unlock()
}

// Run handles events until the queue is empty. A handler error stops the run
// and is returned.
func (e *SerialEngine) Run() error {
	return e.RunUntil(VTimeInSec(math.Inf(1)))
}

// RunUntil handles the events due no later than end. When events remain
// after end, the clock is moved to end and the events stay queued for a later
// run.
func (e *SerialEngine) RunUntil(end VTimeInSec) error {
	if math.IsNaN(float64(end)) {
		log.Panic("end time is not a number")
	}

	if now := e.CurrentTime(); end < now {
		log.Panicf("cannot run until %.10f, the clock reads %.10f", end, now)
	}

	e.runLock.Lock()
	defer e.runLock.Unlock()

	for e.queue.Len() > 0 {
		if e.queue.Peek().Time() > end {
			e.setClock(end)
			return nil
		}

		if err := e.handleNext(); err != nil {
			return err
		}
	}

	return nil
}

func (e *SerialEngine) handleNext() error {
	e.gate.Lock()
	defer e.gate.Unlock()

	evt := e.queue.Pop()
	e.setClock(evt.Time())

	ctx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

// Pause keeps the engine from handling more events. Pausing a paused engine
// does nothing.
func (e *SerialEngine) Pause() {
	e.pausedLock.Lock()
	defer e.pausedLock.Unlock()

	if e.paused {
		return
	}

	e.gate.Lock()
	e.paused = true
}

// Continue lets a paused engine handle events again.
func (e *SerialEngine) Continue() {
	e.pausedLock.Lock()
	defer e.pausedLock.Unlock()

	if !e.paused {
		return
	}

	e.gate.Unlock()
	e.paused = false
}

// RegisterSimulationEndHandler adds a handler that Finished notifies.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.endHandlers = append(e.endHandlers, handler)
}

// Finished tells every end handler the time at which the run stopped.
func (e *SerialEngine) Finished() {
	now := e.CurrentTime()
	for _, h := range e.endHandlers {
		h.Handle(now)
	}
}
