package scenario

import (
	"github.com/sarchlab/motionsim/actuator"
	"github.com/sarchlab/motionsim/entity"
	"github.com/sarchlab/motionsim/response"
	"github.com/sarchlab/motionsim/sim"
)

// Builder turns a Config into a simulation.
type Builder struct {
	sinks       []actuator.ResultSink
	hooks       []sim.Hook
	endHandlers []sim.SimulationEndHandler
}

// MakeBuilder creates a Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithResultSink adds a receiver of the result messages of all actuators.
func (b Builder) WithResultSink(sink actuator.ResultSink) Builder {
	b.sinks = append(b.sinks[:len(b.sinks):len(b.sinks)], sink)
	return b
}

// WithActuatorHook adds a hook to every actuator.
func (b Builder) WithActuatorHook(hook sim.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// WithSimulationEndHandler adds a handler notified when the simulation ends,
// after the actuators have failed their unfinished goals.
func (b Builder) WithSimulationEndHandler(h sim.SimulationEndHandler) Builder {
	n := len(b.endHandlers)
	b.endHandlers = append(b.endHandlers[:n:n], h)

	return b
}

// Build creates a simulation with the actuators registered and their
// commands scheduled. Requests without a GUID get a generated one. Goals
// still active when the simulation ends are answered with StatusFailed.
func (b Builder) Build(cfg *Config) (*sim.Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	engine := sim.NewSerialEngine()
	s := sim.NewSimulation()
	s.RegisterEngine(engine)

	freq := sim.Freq(cfg.FreqHz) * sim.Hz

	for i := range cfg.Actuators {
		comp, err := b.buildActuator(engine, freq, &cfg.Actuators[i])
		if err != nil {
			return nil, err
		}

		s.RegisterComponent(comp)
		engine.RegisterSimulationEndHandler(sim.SimulationEndFunc(
			func(sim.VTimeInSec) { comp.Cancel() }))
	}

	for _, h := range b.endHandlers {
		engine.RegisterSimulationEndHandler(h)
	}

	return s, nil
}

// Run runs s up to end, or until no event is left when end is 0.
func Run(s *sim.Simulation, end float64) error {
	if end > 0 {
		return s.RunUntil(sim.VTimeInSec(end))
	}

	return s.Run()
}

func (b Builder) buildActuator(
	engine sim.Engine,
	freq sim.Freq,
	a *ActuatorConfig,
) (*actuator.Comp, error) {
	params, err := a.Params()
	if err != nil {
		return nil, invalid("actuator %s: %v", a.Name, err)
	}

	axis, err := a.AxisVec()
	if err != nil {
		return nil, err
	}

	mount, err := a.MountTransform()
	if err != nil {
		return nil, err
	}

	comp := actuator.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithParams(params).
		WithIdentity(a.identity()).
		WithInitialPosition(a.InitialPosition).
		WithMount(mount).
		WithAxis(axis).
		WithResultSink(b.sink()).
		Build(a.Name)

	for _, h := range b.hooks {
		comp.AcceptHook(h)
	}

	for _, c := range a.Commands {
		guid := c.RequestGUID
		if guid == "" {
			guid = sim.GetIDGenerator().Generate()
		}

		engine.Schedule(actuator.NewCommandEvent(
			sim.VTimeInSec(c.At), comp, c.command(guid, params)))
	}

	return comp, nil
}

func (b Builder) sink() actuator.ResultSink {
	switch len(b.sinks) {
	case 0:
		return nil
	case 1:
		return b.sinks[0]
	default:
		return fanOut(b.sinks)
	}
}

type fanOut []actuator.ResultSink

func (f fanOut) Receive(rsp *response.MotionResult) {
	for _, s := range f {
		s.Receive(rsp)
	}
}

func (a *ActuatorConfig) identity() entity.Identity {
	if a.Handle != nil {
		return entity.FromHandle(*a.Handle)
	}

	return entity.FromName(a.ModelName)
}

// Actuators returns the actuators registered in a simulation.
func Actuators(s *sim.Simulation) []*actuator.Comp {
	var comps []*actuator.Comp

	for _, c := range s.Components() {
		if a, ok := c.(*actuator.Comp); ok {
			comps = append(comps, a)
		}
	}

	return comps
}
