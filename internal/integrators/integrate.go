// Package integrators implements the fixed-step explicit ODE schemes: Euler,
// Heun (predictor-corrector), classic RK4 and RK4 for a single m-th order
// scalar ODE.
//
// The Integrate* functions produce a whole [dynamo.Trajectory] and are
// all-or-nothing. The New* constructors return single-step [dynamo.Stepper]
// values for callers that drive the loop themselves.
package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// IntegrateEuler advances y0 over s with the first-order explicit Euler
// method.
func IntegrateEuler(f dynamo.Func, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil derivative", dynamo.ErrInvalidArgument)
	}
	return Integrate(NewEuler(f), s, y0)
}

// IntegrateHeun advances y0 over s with Heun's predictor-corrector method.
// p is passed to every call of f unchanged.
func IntegrateHeun(f dynamo.ParamFunc, p dynamo.Params, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil derivative", dynamo.ErrInvalidArgument)
	}
	return Integrate(NewHeun(f, p), s, y0)
}

// IntegrateRK4 advances y0 over s with the classic four-stage Runge-Kutta
// method, where f supplies every component's rate.
func IntegrateRK4(f dynamo.Func, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil derivative", dynamo.ErrInvalidArgument)
	}
	return Integrate(NewRK4(f), s, y0)
}

// IntegrateHighOrderRK4 solves the m-th order scalar ODE y^(m) = f(t, y, p)
// with y0 = [y, y', ..., y^(m-1)].
func IntegrateHighOrderRK4(f dynamo.HighestFunc, s dynamo.Schedule, y0 dynamo.State, p dynamo.Params) (*dynamo.Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil derivative", dynamo.ErrInvalidArgument)
	}
	return Integrate(NewHighOrderRK4(f, p), s, y0)
}

// Integrate runs st over every grid point of s. The schedule and y0 are
// validated before the first step; any step failure discards the partial
// trajectory.
func Integrate(st dynamo.Stepper, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: nil stepper", dynamo.ErrInvalidArgument)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := dynamo.ValidateInitial(y0); err != nil {
		return nil, err
	}

	n := s.StepCount()
	times := make([]float64, n+1)
	states := make([]dynamo.State, n+1)
	times[0] = s.TMin
	states[0] = y0.Clone()

	y := states[0]
	for i := 0; i < n; i++ {
		t := s.Time(i)
		next, err := st.Step(t, s.Step, y)
		if err != nil {
			return nil, &dynamo.StepError{Step: i, Time: t, State: y.Clone(), Err: err}
		}
		times[i+1] = s.Time(i + 1)
		states[i+1] = next
		y = next
	}

	return dynamo.NewTrajectory(times, states)
}

// New resolves a scheme to a stepper over f.
func New(scheme dynamo.Scheme, f dynamo.Func) (dynamo.Stepper, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil derivative", dynamo.ErrInvalidArgument)
	}
	switch scheme {
	case dynamo.SchemeEuler:
		return NewEuler(f), nil
	case dynamo.SchemeHeun:
		return NewHeun(func(t float64, y dynamo.State, _ dynamo.Params) (dynamo.State, error) {
			return f(t, y)
		}, nil), nil
	case dynamo.SchemeRK4:
		return NewRK4(f), nil
	}
	return nil, fmt.Errorf("%w: unknown scheme %v", dynamo.ErrInvalidArgument, scheme)
}

// derive evaluates f and copies the rates into out.
func derive(f dynamo.Func, t float64, y, out dynamo.State) error {
	dy, err := f(t, y)
	if err != nil {
		return err
	}
	if len(dy) != len(y) {
		return fmt.Errorf("%w: got %d rates for %d states", dynamo.ErrDimensionMismatch, len(dy), len(y))
	}
	copy(out, dy)
	return checkFinite(t, y, out)
}

// checkFinite reports ErrDerivative when finite inputs produced a
// non-finite rate. Non-finite inputs come from divergence and pass through.
func checkFinite(t float64, y, rates dynamo.State) error {
	if rates.IsValid() || !y.IsValid() || math.IsNaN(t) || math.IsInf(t, 0) {
		return nil
	}
	return fmt.Errorf("%w at t=%g: rates %v", dynamo.ErrDerivative, t, []float64(rates))
}
