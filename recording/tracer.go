package recording

import (
	"github.com/sarchlab/motionsim/actuator"
	"github.com/sarchlab/motionsim/response"
	"github.com/sarchlab/motionsim/sim"
)

// Table names used by the tracers.
const (
	StepTable   = "actuator_steps"
	ResultTable = "actuator_results"
)

// StepRow is one controller step of an actuator.
type StepRow struct {
	Time            float64
	Actuator        string
	RequestGUID     string
	STarget         float64
	Velocity        float64
	Regime          string
	BrakingDistance float64
	Position        float64
}

// ResultRow is one result message sent by an actuator.
type ResultRow struct {
	Time        float64
	Source      string
	Entity      string
	RequestGUID string
	Status      uint8
	Position    float64
}

// StepTracer is a hook that records actuator steps.
type StepTracer struct {
	recorder DataRecorder
}

// NewStepTracer creates a StepTracer and the table it writes to.
func NewStepTracer(recorder DataRecorder) *StepTracer {
	recorder.CreateTable(StepTable, StepRow{})

	return &StepTracer{recorder: recorder}
}

// Func records the step.
func (t *StepTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != actuator.HookPosStep {
		return
	}

	detail, ok := ctx.Detail.(actuator.StepDetail)
	if !ok {
		return
	}

	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	t.recorder.InsertData(StepTable, StepRow{
		Time:            float64(detail.Time),
		Actuator:        name,
		RequestGUID:     detail.RequestGUID,
		STarget:         detail.STarget,
		Velocity:        detail.Command.Velocity,
		Regime:          detail.Command.Regime.String(),
		BrakingDistance: detail.BrakingDistance,
		Position:        detail.Position,
	})
}

// ResultTracer records the result messages it receives.
type ResultTracer struct {
	recorder DataRecorder
}

// NewResultTracer creates a ResultTracer and the table it writes to.
func NewResultTracer(recorder DataRecorder) *ResultTracer {
	recorder.CreateTable(ResultTable, ResultRow{})

	return &ResultTracer{recorder: recorder}
}

// Receive records the result.
func (t *ResultTracer) Receive(rsp *response.MotionResult) {
	t.recorder.InsertData(ResultTable, ResultRow{
		Time:        rsp.Time.Seconds(),
		Source:      rsp.SourceGUID,
		Entity:      rsp.EntityID,
		RequestGUID: rsp.RequestGUID,
		Status:      rsp.Status,
		Position:    rsp.Position,
	})
}

// FlushAtEnd returns a simulation end handler that writes the entries
// buffered in r.
func FlushAtEnd(r DataRecorder) sim.SimulationEndHandler {
	return sim.SimulationEndFunc(func(sim.VTimeInSec) {
		r.Flush()
	})
}
