package actuator

import (
	"log"

	"github.com/sarchlab/motionsim/motion"
	"github.com/sarchlab/motionsim/response"
	"github.com/sarchlab/motionsim/sim"
)

// HookPosStep is triggered after every controller step. The hook detail is
// a StepDetail.
var HookPosStep = &sim.HookPos{Name: "ActuatorStep"}

// HookPosResult is triggered when the actuator answers a request. The hook
// item is the *response.MotionResult.
var HookPosResult = &sim.HookPos{Name: "ActuatorResult"}

// StepDetail describes one controller step.
type StepDetail struct {
	Time            sim.VTimeInSec
	RequestGUID     string
	STarget         float64
	Command         motion.Command
	BrakingDistance float64
	Position        float64
}

// A ResultSink receives the result messages of actuators.
type ResultSink interface {
	Receive(rsp *response.MotionResult)
}

// StepLogger writes every controller step into a logger.
type StepLogger struct {
	sim.LogHookBase
}

// NewStepLogger creates a StepLogger.
func NewStepLogger(logger *log.Logger) *StepLogger {
	h := new(StepLogger)
	h.Logger = logger

	return h
}

// Func writes the step information.
func (h *StepLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosStep {
		return
	}

	detail, ok := ctx.Detail.(StepDetail)
	if !ok {
		return
	}

	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	h.LogAt(detail.Time, "%s, %s, s=%.6f, v=%.6f, %s, brake=%.6f, x=%.6f",
		name, detail.RequestGUID,
		detail.STarget, detail.Command.Velocity, detail.Command.Regime,
		detail.BrakingDistance, detail.Position)
}
