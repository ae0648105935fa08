// Package sim is the discrete event kernel that drives the actuators.
package sim

// VTimeInSec is a point in simulated time, in seconds.
type VTimeInSec float64

// An Event is something that happens to one handler at one point in time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
}

// EventBase holds the fields shared by all events.
type EventBase struct {
	ID      string
	time    VTimeInSec
	handler Handler
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	e := MakeEventBase(t, handler)
	return &e
}

// MakeEventBase creates an EventBase value that can be embedded. The ID comes
// from the process wide IDGenerator.
func MakeEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns when the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// A Handler reacts to the events addressed to it. An event may only change
// the state of its own handler.
type Handler interface {
	Handle(e Event) error
}
