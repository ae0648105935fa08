package actuator

import (
	"log"

	"github.com/sarchlab/motionsim/entity"
	"github.com/sarchlab/motionsim/geometry"
	"github.com/sarchlab/motionsim/motion"
	"github.com/sarchlab/motionsim/naming"
	"github.com/sarchlab/motionsim/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder can build actuators.
type Builder struct {
	engine          sim.Engine
	freq            sim.Freq
	params          motion.Params
	identity        entity.Identity
	initialPosition float64
	mount           geometry.Transform
	axis            r3.Vec
	sink            ResultSink
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:   100 * sim.Hz,
		params: motion.DefaultParams(),
		mount:  geometry.Identity(),
		axis:   r3.Vec{Z: 1},
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the control frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithParams sets the motion limits.
func (b Builder) WithParams(params motion.Params) Builder {
	b.params = params
	return b
}

// WithIdentity sets the entity the actuator belongs to.
func (b Builder) WithIdentity(id entity.Identity) Builder {
	b.identity = id
	return b
}

// WithInitialPosition sets the position at time 0.
func (b Builder) WithInitialPosition(position float64) Builder {
	b.initialPosition = position
	return b
}

// WithMount sets the transform of the axis origin in the world.
func (b Builder) WithMount(mount geometry.Transform) Builder {
	b.mount = mount
	return b
}

// WithAxis sets the direction of motion in the mount frame.
func (b Builder) WithAxis(axis r3.Vec) Builder {
	b.axis = axis
	return b
}

// WithResultSink sets where result messages are delivered.
func (b Builder) WithResultSink(sink ResultSink) Builder {
	b.sink = sink
	return b
}

// Build creates an actuator with the given name.
func (b Builder) Build(name string) *Comp {
	naming.NameMustBeValid(name)

	if b.engine == nil {
		log.Panicf("actuator %s: engine is not set", name)
	}

	if b.identity == nil {
		log.Panicf("actuator %s: %v", name, entity.ErrNoIdentity)
	}

	if r3.Norm(b.axis) == 0 {
		log.Panicf("actuator %s: axis must not be zero", name)
	}

	if _, err := motion.NewParams(
		b.params.VMax(), b.params.AMax(), b.params.ANom(), b.params.DxMin(),
	); err != nil {
		log.Panicf("actuator %s: %v", name, err)
	}

	c := &Comp{
		params:   b.params,
		identity: b.identity,
		nodeName: naming.SanitizedNodeName(name),
		mount:    b.mount,
		axis:     r3.Unit(b.axis),
		sink:     b.sink,
		position: b.initialPosition,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
