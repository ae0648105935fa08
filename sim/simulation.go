package sim

import "log"

// A Simulation owns the engine and the registered components.
type Simulation struct {
	engine        Engine
	components    []Component
	compNameIndex map[string]int
}

// NewSimulation creates a new simulation.
func NewSimulation() *Simulation {
	return &Simulation{
		compNameIndex: make(map[string]int),
	}
}

// RegisterEngine sets the engine that runs the simulation.
func (s *Simulation) RegisterEngine(e Engine) {
	s.engine = e
}

// GetEngine returns the engine of the simulation.
func (s *Simulation) GetEngine() Engine {
	return s.engine
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		log.Panicf("component %s already registered", compName)
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1
}

// Components returns all the registered components in registration order.
func (s *Simulation) Components() []Component {
	return s.components
}

// GetComponentByName returns the component with the given name, or nil if no
// such component is registered.
func (s *Simulation) GetComponentByName(name string) Component {
	idx, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[idx]
}

// Run runs the engine until no event is left and calls the simulation end
// handlers.
func (s *Simulation) Run() error {
	return s.finish(s.mustHaveEngine().Run())
}

// RunUntil runs the engine up to end and calls the simulation end handlers.
func (s *Simulation) RunUntil(end VTimeInSec) error {
	return s.finish(s.mustHaveEngine().RunUntil(end))
}

func (s *Simulation) mustHaveEngine() Engine {
	if s.engine == nil {
		log.Panic("simulation has no engine")
	}

	return s.engine
}

func (s *Simulation) finish(err error) error {
	if err != nil {
		return err
	}

	s.engine.Finished()

	return nil
}
