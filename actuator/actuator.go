// Package actuator provides a ticking component that moves one degree of
// freedom toward commanded targets.
package actuator

import (
	"fmt"
	"log"
	"math"
	"reflect"

	"github.com/sarchlab/motionsim/entity"
	"github.com/sarchlab/motionsim/geometry"
	"github.com/sarchlab/motionsim/motion"
	"github.com/sarchlab/motionsim/response"
	"github.com/sarchlab/motionsim/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	speedTolerance    = 1e-9
	positionTolerance = 1e-9
)

// Comp is an actuator. It integrates the velocity produced by the motion
// controller once per cycle.
type Comp struct {
	*sim.TickingComponent

	params   motion.Params
	identity entity.Identity
	nodeName string
	mount    geometry.Transform
	axis     r3.Vec
	sink     ResultSink

	position float64
	velocity float64
	goal     *Command
}

// Handle processes command events. Tick events are processed by the
// embedded TickingComponent. A rejected command is answered with
// StatusFailed and does not stop the simulation.
func (c *Comp) Handle(e sim.Event) error {
	switch e := e.(type) {
	case CommandEvent:
		if err := c.Submit(e.Command); err != nil {
			log.Printf("%s: %v", c.Name(), err)
		}
	case sim.TickEvent:
		return c.TickingComponent.Handle(e)
	default:
		log.Panicf("cannot handle event of type %s", reflect.TypeOf(e))
	}

	return nil
}

// Submit makes the command the current goal at the current time. A goal
// that is still active is answered with StatusFailed. The first control step
// runs in the current cycle.
func (c *Comp) Submit(cmd Command) error {
	c.Lock()
	defer c.Unlock()

	err := cmd.validate()
	if err == nil {
		err = c.reachable(cmd)
	}

	if err != nil {
		c.respond(response.StatusFailed, cmd.RequestGUID)
		return err
	}

	if c.goal != nil {
		c.respond(response.StatusFailed, c.goal.RequestGUID)
	}

	c.goal = &cmd
	c.respond(response.StatusAcknowledged, cmd.RequestGUID)

	c.TickNow()

	return nil
}

// reachable rejects goals outside the deadband that the cruise speed can
// never reach.
func (c *Comp) reachable(cmd Command) error {
	dist := math.Abs(cmd.Target - c.position)
	if cmd.CruiseSpeed == 0 && dist > 0 && dist >= c.params.DxMin() {
		return fmt.Errorf("%w: %q has no cruise speed for a distance of %g",
			ErrInvalidCommand, cmd.RequestGUID, dist)
	}

	return nil
}

// Cancel answers the active goal with StatusFailed and brings the actuator
// to rest. It does nothing when there is no active goal.
func (c *Comp) Cancel() {
	c.Lock()
	defer c.Unlock()

	if c.goal == nil {
		return
	}

	c.respond(response.StatusFailed, c.goal.RequestGUID)
	c.goal = nil
	c.velocity = 0
}

// Tick runs one controller step.
func (c *Comp) Tick() bool {
	c.Lock()
	defer c.Unlock()

	if c.goal == nil {
		return false
	}

	dt := float64(c.Freq.Period())
	sTarget := c.goal.Target - c.position

	cmd, err := motion.Compute(
		sTarget, c.velocity,
		c.goal.CruiseSpeed, c.goal.ArrivalSpeed,
		c.params, dt)
	if err != nil {
		log.Printf("actuator %s: %v", c.Name(), err)
		c.respond(response.StatusFailed, c.goal.RequestGUID)
		c.goal = nil

		return false
	}

	c.velocity = cmd.Velocity
	c.position += cmd.Velocity * dt
	remaining := c.goal.Target - c.position

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosStep,
		Item:   c,
		Detail: StepDetail{
			Time:            c.CurrentTime(),
			RequestGUID:     c.goal.RequestGUID,
			STarget:         sTarget,
			Command:         cmd,
			BrakingDistance: c.params.BrakingDistance(cmd.Velocity, c.arrivalSpeed()),
			Position:        c.position,
		},
	})

	if c.arrived(cmd, sTarget, remaining, dt) {
		c.respond(response.StatusSuccess, c.goal.RequestGUID)
		c.goal = nil
		c.velocity = 0

		return false
	}

	return true
}

func (c *Comp) arrivalSpeed() float64 {
	return math.Min(c.goal.ArrivalSpeed, c.params.VMax())
}

// arrived tells if the step that changed the remaining displacement from
// before to after completes the goal.
func (c *Comp) arrived(cmd motion.Command, before, after, dt float64) bool {
	dest := c.arrivalSpeed()
	speed := math.Abs(cmd.Velocity)

	switch {
	case cmd.Regime == motion.RegimeDeadband &&
		math.Abs(speed-dest) <= speedTolerance:
		return true
	case dest > 0 && before*after <= 0:
		// Reached or passed the goal while keeping a nonzero arrival speed.
		return true
	case math.Abs(after) <= positionTolerance &&
		speed <= c.params.AMax()*dt:
		return true
	}

	return false
}

func (c *Comp) respond(status response.Status, requestGUID string) {
	rsp := response.MakeBuilder().
		WithStatus(status).
		WithSimTime(float64(c.CurrentTime())).
		WithRequestGUID(requestGUID).
		WithSourceGUID(c.nodeName).
		WithEntity(c.identity).
		WithPosition(c.position).
		Build()

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosResult,
		Item:   rsp,
	})

	if c.sink != nil {
		c.sink.Receive(rsp)
	}
}

// NodeName returns the sanitized name used as the source of results.
func (c *Comp) NodeName() string {
	return c.nodeName
}

// Identity returns the entity the actuator belongs to.
func (c *Comp) Identity() entity.Identity {
	return c.identity
}

// Params returns the motion limits.
func (c *Comp) Params() motion.Params {
	return c.params
}

// Position returns the current position along the axis.
func (c *Comp) Position() float64 {
	c.Lock()
	defer c.Unlock()

	return c.position
}

// Velocity returns the current velocity along the axis.
func (c *Comp) Velocity() float64 {
	c.Lock()
	defer c.Unlock()

	return c.velocity
}

// WorldTransform returns the pose of the moving part in the world.
func (c *Comp) WorldTransform() geometry.Transform {
	c.Lock()
	defer c.Unlock()

	return c.worldTransform()
}

func (c *Comp) worldTransform() geometry.Transform {
	return c.mount.Compose(geometry.Translation(r3.Scale(c.position, c.axis)))
}
