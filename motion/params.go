// Package motion computes the velocity a simulated actuator should adopt on
// the next tick.
//
// The controller is a pure function. It keeps no phase between calls; the
// caller supplies the remaining displacement and the current velocity every
// tick and integrates the position itself.
package motion

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when motion limits violate their invariants.
var ErrInvalidParams = errors.New("motion: invalid params")

// ErrInvalidArgument is returned when a controller call receives an argument
// that is out of its domain.
var ErrInvalidArgument = errors.New("motion: invalid argument")

// Params holds the limits of one actuator. A Params value can only be
// obtained through NewParams, a ParamsBuilder or DefaultParams, so a non-zero
// value always satisfies its invariants.
type Params struct {
	vMax  float64
	aMax  float64
	aNom  float64
	dxMin float64
}

// NewParams validates the limits and creates a Params.
func NewParams(vMax, aMax, aNom, dxMin float64) (Params, error) {
	p := Params{vMax: vMax, aMax: aMax, aNom: aNom, dxMin: dxMin}
	if err := p.validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// DefaultParams returns the limits used when an actuator does not configure
// its own.
func DefaultParams() Params {
	return Params{vMax: 0.2, aMax: 0.1, aNom: 0.08, dxMin: 0.01}
}

// VMax returns the maximum speed.
func (p Params) VMax() float64 { return p.vMax }

// AMax returns the hard acceleration limit.
func (p Params) AMax() float64 { return p.aMax }

// ANom returns the preferred acceleration.
func (p Params) ANom() float64 { return p.aNom }

// DxMin returns the displacement below which the goal counts as reached.
func (p Params) DxMin() float64 { return p.dxMin }

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("v_max=%g a_max=%g a_nom=%g dx_min=%g",
		p.vMax, p.aMax, p.aNom, p.dxMin)
}

func (p Params) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"v_max", p.vMax},
		{"a_max", p.aMax},
		{"a_nom", p.aNom},
		{"dx_min", p.dxMin},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, f.name)
		}
	}

	switch {
	case p.vMax <= 0:
		return fmt.Errorf("%w: v_max must be positive, got %g",
			ErrInvalidParams, p.vMax)
	case p.aMax <= 0:
		return fmt.Errorf("%w: a_max must be positive, got %g",
			ErrInvalidParams, p.aMax)
	case p.aNom <= 0:
		return fmt.Errorf("%w: a_nom must be positive, got %g",
			ErrInvalidParams, p.aNom)
	case p.aNom > p.aMax:
		return fmt.Errorf("%w: a_nom %g exceeds a_max %g",
			ErrInvalidParams, p.aNom, p.aMax)
	case p.dxMin < 0:
		return fmt.Errorf("%w: dx_min must not be negative, got %g",
			ErrInvalidParams, p.dxMin)
	}

	return nil
}

// ParamsBuilder creates Params step by step. It starts from DefaultParams.
type ParamsBuilder struct {
	vMax  float64
	aMax  float64
	aNom  float64
	dxMin float64
}

// MakeParamsBuilder returns a builder preloaded with the default limits.
func MakeParamsBuilder() ParamsBuilder {
	d := DefaultParams()

	return ParamsBuilder{
		vMax:  d.vMax,
		aMax:  d.aMax,
		aNom:  d.aNom,
		dxMin: d.dxMin,
	}
}

// WithVMax sets the maximum speed.
func (b ParamsBuilder) WithVMax(vMax float64) ParamsBuilder {
	b.vMax = vMax
	return b
}

// WithAMax sets the hard acceleration limit.
func (b ParamsBuilder) WithAMax(aMax float64) ParamsBuilder {
	b.aMax = aMax
	return b
}

// WithANom sets the preferred acceleration.
func (b ParamsBuilder) WithANom(aNom float64) ParamsBuilder {
	b.aNom = aNom
	return b
}

// WithDxMin sets the stopping deadband.
func (b ParamsBuilder) WithDxMin(dxMin float64) ParamsBuilder {
	b.dxMin = dxMin
	return b
}

// Build validates the limits and creates the Params.
func (b ParamsBuilder) Build() (Params, error) {
	return NewParams(b.vMax, b.aMax, b.aNom, b.dxMin)
}
