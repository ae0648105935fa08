package sim

// TimeTeller reports the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events that are handled later.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler is notified when a run is over, either because no
// event is left or because the run reached its end time.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// SimulationEndFunc lets a plain function act as a SimulationEndHandler.
type SimulationEndFunc func(now VTimeInSec)

// Handle calls f.
func (f SimulationEndFunc) Handle(now VTimeInSec) {
	f(now)
}

// An Engine handles scheduled events in time order.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none is left.
	Run() error

	// RunUntil handles the events due no later than end. Later events stay
	// queued and the clock stops at end.
	RunUntil(end VTimeInSec) error

	// Pause blocks the engine before its next event until Continue is called.
	Pause()

	// Continue releases a paused engine.
	Continue()

	// RegisterSimulationEndHandler adds a handler that Finished notifies.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished notifies the end handlers in registration order.
	Finished()
}
