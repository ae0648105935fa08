package cancmd

import (
	"log"

	"github.com/sarchlab/motionsim/actuator"
	"github.com/sarchlab/motionsim/entity"
	"github.com/sarchlab/motionsim/sim"
)

type identified interface {
	Identity() entity.Identity
}

// FrameLogger is a hook that writes the command frame of every actuator step
// in candump log format. Steps of actuators without a handle are skipped.
type FrameLogger struct {
	sim.LogHookBase

	iface string
}

// NewFrameLogger creates a FrameLogger that reports frames as sent on the
// given interface.
func NewFrameLogger(logger *log.Logger, iface string) *FrameLogger {
	h := new(FrameLogger)
	h.Logger = logger
	h.iface = iface

	return h
}

// Func writes the frame of the step.
func (h *FrameLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != actuator.HookPosStep {
		return
	}

	detail, ok := ctx.Detail.(actuator.StepDetail)
	if !ok {
		return
	}

	owner, ok := ctx.Domain.(identified)
	if !ok {
		return
	}

	frame, err := Encode(owner.Identity(), detail.Command)
	if err != nil {
		return
	}

	h.Logger.Printf("(%.6f) %s %s", detail.Time, h.iface, frame.String())
}
