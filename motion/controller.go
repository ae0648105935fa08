package motion

import (
	"fmt"
	"math"
)

// Regime identifies the part of the profile that produced a velocity.
type Regime int

// Regimes of the motion profile.
const (
	RegimeDeadband Regime = iota
	RegimeCruise
	RegimeBrake
)

// String implements fmt.Stringer.
func (r Regime) String() string {
	switch r {
	case RegimeDeadband:
		return "Deadband"
	case RegimeCruise:
		return "Cruise"
	case RegimeBrake:
		return "Brake"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// velocityTolerance is the residual speed treated as already settled.
const velocityTolerance = 1e-9

// Command is the outcome of one controller step.
type Command struct {
	Velocity float64
	Regime   Regime
}

// RateOfChange returns the velocity the actuator should adopt next.
//
// sTarget is the signed remaining displacement to the goal and vActual the
// signed current velocity. speedTargetNow is the cruise speed while far from
// the goal and speedTargetDest the speed to hold once the goal is reached.
// dt is the simulated time since the previous call.
func RateOfChange(
	sTarget, vActual float64,
	speedTargetNow, speedTargetDest float64,
	params Params,
	dt float64,
) (float64, error) {
	cmd, err := Compute(
		sTarget, vActual, speedTargetNow, speedTargetDest, params, dt)
	if err != nil {
		return 0, err
	}

	return cmd.Velocity, nil
}

// Compute works like RateOfChange and also reports the active regime.
//
// The returned velocity never exceeds params.VMax() in magnitude and, for a
// current velocity within that bound, never differs from vActual by more than
// params.AMax()*dt.
func Compute(
	sTarget, vActual float64,
	speedTargetNow, speedTargetDest float64,
	params Params,
	dt float64,
) (Command, error) {
	err := checkArguments(sTarget, vActual, speedTargetNow, speedTargetDest, dt)
	if err != nil {
		return Command{}, err
	}

	if err := params.validate(); err != nil {
		return Command{}, err
	}

	dir := sign(sTarget)
	dist := math.Abs(sTarget)

	if dist < params.dxMin || dist == 0 {
		v := settle(vActual, dir*speedTargetDest, dist, params, dt)
		return Command{Velocity: v, Regime: RegimeDeadband}, nil
	}

	// All remaining decisions are taken on the speed along the goal direction.
	along := vActual * dir
	cruise := math.Min(speedTargetNow, params.vMax)
	limit := math.Max(
		params.safeSpeed(dist, speedTargetDest, dt), speedTargetDest)

	regime := RegimeCruise
	next := 0.0

	if along < 0 {
		// Moving away from the goal. Turning around is braking, and the speed
		// gained toward the goal within the same tick stays under the limit.
		next = approach(along, cruise, params.aMax*dt)
		if next > 0 {
			next = math.Min(next, limit)
		}

		if math.Abs(next) < math.Abs(along) {
			regime = RegimeBrake
		}
	} else {
		next = approach(along, cruise, params.aNom*dt)

		if next > limit {
			next = math.Max(limit, along-params.aMax*dt)
			if next < along {
				regime = RegimeBrake
			}
		}
	}

	v := clip(dir*next, params.vMax)

	return Command{Velocity: v, Regime: regime}, nil
}

// BrakingDistance returns the displacement needed to slow from speed down to
// dest at the hard acceleration limit. It is zero when speed does not exceed
// dest.
func (p Params) BrakingDistance(speed, dest float64) float64 {
	speed = math.Abs(speed)
	if p.aMax <= 0 {
		return math.Inf(1)
	}

	if speed <= dest {
		return 0
	}

	return (speed*speed - dest*dest) / (2 * p.aMax)
}

// safeSpeed is the largest speed that can be held for one more tick of
// length dt and still be braked down to dest within dist.
//
// It solves v*dt + BrakingDistance(v, dest) = dist for v. Braking in discrete
// ticks covers less ground than the continuous profile, so the bound holds
// tick by tick.
func (p Params) safeSpeed(dist, dest, dt float64) float64 {
	h := p.aMax * dt
	x := 2*p.aMax*dist + dest*dest

	// sqrt(h*h+x) - h, without the cancellation when x is small.
	return x / (math.Sqrt(h*h+x) + h)
}

func settle(vActual, target, dist float64, params Params, dt float64) float64 {
	target = clip(target, params.vMax)

	v := approach(vActual, target, params.aMax*dt)
	if dist == 0 && math.Abs(v-target) <= velocityTolerance {
		v = target
	}

	return clip(v, params.vMax)
}

func approach(v, target, maxDelta float64) float64 {
	diff := target - v
	if math.Abs(diff) <= maxDelta {
		return target
	}

	return v + math.Copysign(maxDelta, diff)
}

func clip(v, limit float64) float64 {
	if v > limit {
		return limit
	}

	if v < -limit {
		return -limit
	}

	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func checkArguments(
	sTarget, vActual, speedTargetNow, speedTargetDest, dt float64,
) error {
	args := []struct {
		name  string
		value float64
	}{
		{"s_target", sTarget},
		{"v_actual", vActual},
		{"speed_target_now", speedTargetNow},
		{"speed_target_dest", speedTargetDest},
		{"dt", dt},
	}

	for _, a := range args {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidArgument, a.name)
		}
	}

	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g",
			ErrInvalidArgument, dt)
	}

	if speedTargetNow < 0 || speedTargetDest < 0 {
		return fmt.Errorf("%w: target speeds must not be negative, got %g, %g",
			ErrInvalidArgument, speedTargetNow, speedTargetDest)
	}

	return nil
}
