// Package scenario loads simulation scenarios from YAML files and turns them
// into runnable simulations.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sarchlab/motionsim/actuator"
	"github.com/sarchlab/motionsim/geometry"
	"github.com/sarchlab/motionsim/motion"
	"github.com/sarchlab/motionsim/naming"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned when a scenario cannot be simulated.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// ID generator kinds.
const (
	SequentialIDs = "sequential"
	ParallelIDs   = "parallel"
)

const defaultFreqHz = 100

// Config is the content of a scenario file.
type Config struct {
	FreqHz      float64          `yaml:"freq_hz"`
	IDGenerator string           `yaml:"id_generator"`
	EndTime     float64          `yaml:"end_time"`
	Actuators   []ActuatorConfig `yaml:"actuators"`
}

// ActuatorConfig describes one actuator and the commands it receives.
type ActuatorConfig struct {
	Name            string          `yaml:"name"`
	Handle          *uint64         `yaml:"handle"`
	ModelName       string          `yaml:"model_name"`
	InitialPosition float64         `yaml:"initial_position"`
	Motion          MotionConfig    `yaml:"motion"`
	Mount           *MountConfig    `yaml:"mount"`
	Axis            []float64       `yaml:"axis"`
	Commands        []CommandConfig `yaml:"commands"`
}

// MotionConfig overrides the default motion limits.
type MotionConfig struct {
	VMax  *float64 `yaml:"v_max"`
	AMax  *float64 `yaml:"a_max"`
	ANom  *float64 `yaml:"a_nom"`
	DxMin *float64 `yaml:"dx_min"`
}

// MountConfig places the axis origin in the world.
type MountConfig struct {
	XYZ  []float64 `yaml:"xyz"`
	WXYZ []float64 `yaml:"wxyz"`
}

// CommandConfig is a command delivered at a given time. A missing cruise
// speed means the v_max of the actuator.
type CommandConfig struct {
	At           float64  `yaml:"at"`
	RequestGUID  string   `yaml:"request_guid"`
	Target       float64  `yaml:"target"`
	CruiseSpeed  *float64 `yaml:"cruise_speed"`
	ArrivalSpeed float64  `yaml:"arrival_speed"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	if cfg.FreqHz == 0 {
		cfg.FreqHz = defaultFreqHz
	}

	if cfg.IDGenerator == "" {
		cfg.IDGenerator = SequentialIDs
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidScenario}, args...)...)
}

func (c *Config) validate() error {
	if !(c.FreqHz > 0) || math.IsInf(c.FreqHz, 0) {
		return invalid("freq_hz must be positive, got %g", c.FreqHz)
	}

	if c.IDGenerator != SequentialIDs && c.IDGenerator != ParallelIDs {
		return invalid("unknown id_generator %q", c.IDGenerator)
	}

	if !(c.EndTime >= 0) || math.IsInf(c.EndTime, 0) {
		return invalid("end_time must be a non-negative time, got %g", c.EndTime)
	}

	if len(c.Actuators) == 0 {
		return invalid("no actuators")
	}

	names := make(map[string]bool)

	for i := range c.Actuators {
		a := &c.Actuators[i]

		if names[a.Name] {
			return invalid("actuator %q defined twice", a.Name)
		}

		names[a.Name] = true

		if err := a.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (a *ActuatorConfig) validate() error {
	if !naming.IsValid(a.Name) {
		return invalid("actuator name %q is not valid", a.Name)
	}

	if (a.Handle == nil) == (a.ModelName == "") {
		return invalid("actuator %s needs exactly one of handle and model_name",
			a.Name)
	}

	if _, err := a.Params(); err != nil {
		return invalid("actuator %s: %v", a.Name, err)
	}

	if _, err := a.AxisVec(); err != nil {
		return err
	}

	if _, err := a.MountTransform(); err != nil {
		return err
	}

	for i, cmd := range a.Commands {
		if err := cmd.validate(); err != nil {
			return invalid("actuator %s command %d: %v", a.Name, i, err)
		}
	}

	return nil
}

// Params returns the motion limits with defaults filled in.
func (a *ActuatorConfig) Params() (motion.Params, error) {
	b := motion.MakeParamsBuilder()

	if a.Motion.VMax != nil {
		b = b.WithVMax(*a.Motion.VMax)
	}

	if a.Motion.AMax != nil {
		b = b.WithAMax(*a.Motion.AMax)
	}

	if a.Motion.ANom != nil {
		b = b.WithANom(*a.Motion.ANom)
	}

	if a.Motion.DxMin != nil {
		b = b.WithDxMin(*a.Motion.DxMin)
	}

	return b.Build()
}

// AxisVec returns the direction of motion. It defaults to +z.
func (a *ActuatorConfig) AxisVec() (r3.Vec, error) {
	if a.Axis == nil {
		return r3.Vec{Z: 1}, nil
	}

	if len(a.Axis) != 3 {
		return r3.Vec{}, invalid("actuator %s: axis needs 3 components", a.Name)
	}

	v := r3.Vec{X: a.Axis[0], Y: a.Axis[1], Z: a.Axis[2]}
	if n := r3.Norm(v); n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, invalid("actuator %s: axis must be a finite non-zero vector",
			a.Name)
	}

	return v, nil
}

// MountTransform returns where the axis origin is. It defaults to the
// identity.
func (a *ActuatorConfig) MountTransform() (geometry.Transform, error) {
	if a.Mount == nil {
		return geometry.Identity(), nil
	}

	translation := r3.Vec{}
	if a.Mount.XYZ != nil {
		if len(a.Mount.XYZ) != 3 {
			return geometry.Transform{},
				invalid("actuator %s: mount xyz needs 3 components", a.Name)
		}

		translation = r3.Vec{X: a.Mount.XYZ[0], Y: a.Mount.XYZ[1], Z: a.Mount.XYZ[2]}
	}

	rotation := quat.Number{Real: 1}
	if a.Mount.WXYZ != nil {
		if len(a.Mount.WXYZ) != 4 {
			return geometry.Transform{},
				invalid("actuator %s: mount wxyz needs 4 components", a.Name)
		}

		w := a.Mount.WXYZ
		rotation = quat.Number{Real: w[0], Imag: w[1], Jmag: w[2], Kmag: w[3]}
	}

	tf, err := geometry.NewTransform(translation, rotation)
	if err != nil {
		return geometry.Transform{}, invalid("actuator %s: %v", a.Name, err)
	}

	return tf, nil
}

func (c CommandConfig) validate() error {
	values := []float64{c.At, c.Target, c.ArrivalSpeed}
	if c.CruiseSpeed != nil {
		values = append(values, *c.CruiseSpeed)
	}

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("values must be finite")
		}
	}

	if c.At < 0 {
		return fmt.Errorf("at must not be negative, got %g", c.At)
	}

	if c.ArrivalSpeed < 0 || (c.CruiseSpeed != nil && *c.CruiseSpeed < 0) {
		return errors.New("speeds must not be negative")
	}

	return nil
}

// command turns the configuration into an actuator command.
func (c CommandConfig) command(guid string, params motion.Params) actuator.Command {
	cruise := params.VMax()
	if c.CruiseSpeed != nil {
		cruise = *c.CruiseSpeed
	}

	return actuator.Command{
		RequestGUID:  guid,
		Target:       c.Target,
		CruiseSpeed:  cruise,
		ArrivalSpeed: c.ArrivalSpeed,
	}
}
