package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/stretchr/testify/require"
)

// counter wraps every callback shape and counts derivative evaluations.
type counter struct{ calls int }

func (c *counter) rate(t float64, y dynamo.State) (dynamo.State, error) {
	c.calls++
	return y.Scale(-1), nil
}

func (c *counter) paramRate(t float64, y dynamo.State, p dynamo.Params) (dynamo.State, error) {
	c.calls++
	return y.Scale(-1), nil
}

func (c *counter) highest(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
	c.calls++
	return -y[0], nil
}

type runner func(c *counter, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error)

var runners = map[string]runner{
	"euler": func(c *counter, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
		return IntegrateEuler(c.rate, s, y0)
	},
	"heun": func(c *counter, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
		return IntegrateHeun(c.paramRate, dynamo.Params{1}, s, y0)
	},
	"rk4": func(c *counter, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
		return IntegrateRK4(c.rate, s, y0)
	},
	"rk4-highorder": func(c *counter, s dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
		return IntegrateHighOrderRK4(c.highest, s, y0, nil)
	},
}

func TestTrajectoryInvariants(t *testing.T) {
	scheds := []dynamo.Schedule{
		{TMin: 0, TMax: 1, Step: 0.1},
		{TMin: 0, TMax: 1, Step: 0.3},
		{TMin: -2, TMax: 3, Step: 0.7},
		{TMin: 5, TMax: 5.001, Step: 1},
		{TMin: 0, TMax: 48, Step: 48.0 / 199},
	}
	y0 := dynamo.State{1, 0.5}

	for name, run := range runners {
		for _, s := range scheds {
			tr, err := run(&counter{}, s, y0)
			require.NoError(t, err, name)

			n := int(math.Ceil((s.TMax-s.TMin)/s.Step - 1e-9))
			require.Equal(t, n+1, tr.Len(), "%s %+v", name, s)
			require.Equal(t, s.TMin, tr.Time(0))
			require.Equal(t, y0, tr.State(0))
			for i := 1; i < tr.Len(); i++ {
				require.InDelta(t, s.Step, tr.Time(i)-tr.Time(i-1), 1e-12)
				require.Equal(t, s.TMin+float64(i)*s.Step, tr.Time(i))
				require.Len(t, tr.State(i), len(y0))
			}
		}
	}
}

func TestInitialStateIsCopied(t *testing.T) {
	y0 := dynamo.State{1, 2}
	tr, err := IntegrateRK4(harmonic, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.5}, y0)
	require.NoError(t, err)

	y0[0] = 99
	require.Equal(t, 1.0, tr.At(0, 0))
}

func TestInvalidArgumentsFailBeforeEvaluation(t *testing.T) {
	good := dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}
	tests := []struct {
		name  string
		sched dynamo.Schedule
		y0    dynamo.State
	}{
		{"zero step", dynamo.Schedule{TMin: 0, TMax: 1, Step: 0}, dynamo.State{1}},
		{"negative step", dynamo.Schedule{TMin: 0, TMax: 1, Step: -0.1}, dynamo.State{1}},
		{"NaN step", dynamo.Schedule{TMin: 0, TMax: 1, Step: math.NaN()}, dynamo.State{1}},
		{"equal bounds", dynamo.Schedule{TMin: 1, TMax: 1, Step: 0.1}, dynamo.State{1}},
		{"reversed bounds", dynamo.Schedule{TMin: 1, TMax: 0, Step: 0.1}, dynamo.State{1}},
		{"empty state", good, dynamo.State{}},
		{"nil state", good, nil},
		{"NaN state", good, dynamo.State{math.NaN()}},
	}

	for name, run := range runners {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				c := &counter{}
				tr, err := run(c, tt.sched, tt.y0)
				require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
				require.Nil(t, tr)
				require.Zero(t, c.calls)
			})
		}
	}
}

func TestNilDerivativeRejected(t *testing.T) {
	s := dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}
	y0 := dynamo.State{1}

	_, err := IntegrateEuler(nil, s, y0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = IntegrateHeun(nil, nil, s, y0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = IntegrateRK4(nil, s, y0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = IntegrateHighOrderRK4(nil, s, y0, nil)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = Integrate(nil, s, y0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = New(dynamo.SchemeRK4, nil)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = New(dynamo.Scheme(42), decay)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

var errDomain = errors.New("outside valid range")

func TestDerivativeErrorDiscardsTrajectory(t *testing.T) {
	failing := func(t float64, y dynamo.State) (dynamo.State, error) {
		if t >= 0.5 {
			return nil, errDomain
		}
		return dynamo.State{1}, nil
	}

	for _, scheme := range dynamo.Schemes() {
		st, err := New(scheme, failing)
		require.NoError(t, err)

		tr, err := Integrate(st, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}, dynamo.State{0})
		require.Nil(t, tr, scheme.String())
		require.ErrorIs(t, err, errDomain)

		var stepErr *dynamo.StepError
		require.ErrorAs(t, err, &stepErr)
		require.Less(t, stepErr.Time, 0.5+1e-9)
		require.Equal(t, stepErr.Time, float64(stepErr.Step)*0.1)
	}
}

func TestDerivativeNaNIsDomainError(t *testing.T) {
	sqrtRate := func(t float64, y dynamo.State) (dynamo.State, error) {
		return dynamo.State{-1, math.Sqrt(y[0])}, nil
	}

	// y[0] falls below zero after the first step, so Sqrt returns NaN.
	tr, err := IntegrateEuler(sqrtRate, dynamo.Schedule{TMin: 0, TMax: 2, Step: 0.6}, dynamo.State{0.5, 0})
	require.Nil(t, tr)
	require.ErrorIs(t, err, dynamo.ErrDerivative)

	var stepErr *dynamo.StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, 1, stepErr.Step)
}

func TestHighOrderNonFiniteIsDomainError(t *testing.T) {
	logTop := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		return math.Log(y[0]), nil
	}

	_, err := IntegrateHighOrderRK4(logTop, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}, dynamo.State{-1, 0}, nil)
	require.ErrorIs(t, err, dynamo.ErrDerivative)
}

func TestWrongLengthRateVector(t *testing.T) {
	short := func(t float64, y dynamo.State) (dynamo.State, error) {
		return dynamo.State{1}, nil
	}

	for _, scheme := range dynamo.Schemes() {
		st, err := New(scheme, short)
		require.NoError(t, err)
		_, err = Integrate(st, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}, dynamo.State{0, 0})
		require.ErrorIs(t, err, dynamo.ErrDimensionMismatch, scheme.String())
	}
}

func TestDivergenceIsNotDetected(t *testing.T) {
	growth := func(t float64, y dynamo.State) (dynamo.State, error) {
		return dynamo.State{y[0]}, nil
	}

	tr, err := IntegrateEuler(growth, dynamo.Schedule{TMin: 0, TMax: 3, Step: 1}, dynamo.State{1e308})
	require.NoError(t, err)

	_, y := tr.Final()
	require.True(t, math.IsInf(y[0], 1))
}

func TestDerivativePanicPropagates(t *testing.T) {
	panicky := func(t float64, y dynamo.State) (dynamo.State, error) {
		panic("bad model")
	}

	require.PanicsWithValue(t, "bad model", func() {
		_, _ = IntegrateRK4(panicky, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}, dynamo.State{1})
	})
}
