package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/stretchr/testify/require"
)

// oscillator is y'' = -ω² y with ω passed through params.
func oscillator(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
	return -p[0] * p[0] * y[0], nil
}

func periodError(t *testing.T, steps int) float64 {
	t.Helper()
	period := 2 * math.Pi
	sched := dynamo.Schedule{TMin: 0, TMax: period, Step: period / float64(steps)}
	y0 := dynamo.State{1, 0}

	tr, err := IntegrateHighOrderRK4(oscillator, sched, y0, dynamo.Params{1})
	require.NoError(t, err)
	require.Equal(t, steps+1, tr.Len())

	_, y := tr.Final()
	return y.Sub(y0).Norm()
}

func TestHighOrderRK4ReturnsAfterOnePeriod(t *testing.T) {
	e1 := periodError(t, 100)
	e2 := periodError(t, 200)

	require.Less(t, e1, 1e-5)
	ratio := e1 / e2
	if ratio < 12 || ratio > 20 {
		t.Errorf("error ratio %.3f, want ~16 (fourth order)", ratio)
	}
}

func TestHighOrderRK4MatchesCompanionSystem(t *testing.T) {
	damped := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		return -p[0]*y[1] - p[1]*y[0] + math.Cos(t), nil
	}
	p := dynamo.Params{0.05, 2}
	sched := dynamo.Schedule{TMin: 0, TMax: 10, Step: 0.05}
	y0 := dynamo.State{-0.75, 1.2}

	high, err := IntegrateHighOrderRK4(damped, sched, y0, p)
	require.NoError(t, err)
	plain, err := IntegrateRK4(dynamo.Companion(damped, p), sched, y0)
	require.NoError(t, err)

	require.Equal(t, plain.Len(), high.Len())
	for i := 0; i < high.Len(); i++ {
		require.InDeltaSlice(t, plain.State(i), high.State(i), 1e-12)
	}
}

func TestHighOrderRK4ThirdOrder(t *testing.T) {
	// y''' = 0 has a quadratic solution, which RK4 reproduces exactly.
	jerkFree := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		return 0, nil
	}

	tr, err := IntegrateHighOrderRK4(jerkFree, dynamo.Schedule{TMin: 0, TMax: 2, Step: 0.25}, dynamo.State{1, 2, 3}, nil)
	require.NoError(t, err)

	for i := 0; i < tr.Len(); i++ {
		ti := tr.Time(i)
		require.InDelta(t, 1+2*ti+1.5*ti*ti, tr.At(i, 0), 1e-12)
		require.InDelta(t, 2+3*ti, tr.At(i, 1), 1e-12)
		require.InDelta(t, 3.0, tr.At(i, 2), 1e-12)
	}
}

func TestHighOrderRK4StageStates(t *testing.T) {
	// One step of y'' = 0 from [0, 1]: each stage must see the position
	// advanced by its own offset, not the step's start.
	var seen []dynamo.State
	record := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		seen = append(seen, y.Clone())
		return 0, nil
	}

	st := NewHighOrderRK4(record, nil)
	y, err := st.Step(0, 1, dynamo.State{0, 1})
	require.NoError(t, err)
	require.Equal(t, []dynamo.State{{0, 1}, {0.5, 1}, {0.5, 1}, {1, 1}}, seen)
	require.Equal(t, dynamo.State{1, 1}, y)
}

func TestHighOrderRK4FirstOrder(t *testing.T) {
	top := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		return -p[0] * y[0], nil
	}

	tr, err := IntegrateHighOrderRK4(top, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.01}, dynamo.State{decayN0}, dynamo.Params{decayK})
	require.NoError(t, err)

	tf, y := tr.Final()
	require.InDelta(t, decayN0*math.Exp(-decayK*tf), y[0], 1e-6)
}
