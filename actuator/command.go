package actuator

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/motionsim/sim"
)

// ErrInvalidCommand is returned when a command cannot be executed.
var ErrInvalidCommand = errors.New("actuator: invalid command")

// A Command asks an actuator to move to a target position.
type Command struct {
	RequestGUID  string  `json:"request_guid"`
	Target       float64 `json:"target"`
	CruiseSpeed  float64 `json:"cruise_speed"`
	ArrivalSpeed float64 `json:"arrival_speed"`
}

func (c Command) validate() error {
	for _, v := range []float64{c.Target, c.CruiseSpeed, c.ArrivalSpeed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q has a non-finite field",
				ErrInvalidCommand, c.RequestGUID)
		}
	}

	if c.CruiseSpeed < 0 || c.ArrivalSpeed < 0 {
		return fmt.Errorf("%w: %q has a negative speed",
			ErrInvalidCommand, c.RequestGUID)
	}

	return nil
}

// CommandEvent delivers a command to an actuator at a given time.
type CommandEvent struct {
	sim.EventBase

	Command Command
}

// NewCommandEvent creates a CommandEvent handled by comp.
func NewCommandEvent(
	t sim.VTimeInSec,
	comp *Comp,
	cmd Command,
) CommandEvent {
	return CommandEvent{
		EventBase: sim.MakeEventBase(t, comp),
		Command:   cmd,
	}
}
