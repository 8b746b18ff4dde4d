package dynamo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleStepCount(t *testing.T) {
	tests := []struct {
		name  string
		sched Schedule
		steps int
	}{
		{"exact", Schedule{TMin: 0, TMax: 1, Step: 0.1}, 10},
		{"ceiling", Schedule{TMin: 0, TMax: 1, Step: 0.3}, 4},
		{"offset start", Schedule{TMin: 2, TMax: 3, Step: 0.25}, 4},
		{"negative start", Schedule{TMin: -1, TMax: 1, Step: 0.5}, 4},
		{"rounding noise", Schedule{TMin: 0, TMax: 1.1, Step: 0.1}, 11},
		{"single step", Schedule{TMin: 0, TMax: 0.5, Step: 1}, 1},
		{"full period", Schedule{TMin: 0, TMax: 2 * math.Pi, Step: 2 * math.Pi / 100}, 100},
		{"linspace grid", Schedule{TMin: 0, TMax: 48, Step: 48.0 / 199}, 199},
		{"shifted noise", Schedule{TMin: 1e6, TMax: 1e6 + 1.1, Step: 0.1}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.sched.Validate())
			require.Equal(t, tt.steps, tt.sched.StepCount())

			times := tt.sched.Times()
			require.Len(t, times, tt.steps+1)
			require.Equal(t, tt.sched.TMin, times[0])
			for i := range times {
				require.Equal(t, tt.sched.TMin+float64(i)*tt.sched.Step, times[i])
			}
		})
	}
}

func TestScheduleStepCountLongGrids(t *testing.T) {
	tests := []struct {
		name  string
		sched Schedule
		steps int
	}{
		{"partial final step", Schedule{TMin: 0, TMax: 1e7 + 0.005, Step: 1}, 1e7 + 1},
		{"exact", Schedule{TMin: 0, TMax: 1e7, Step: 1}, 1e7},
		{"fine step partial", Schedule{TMin: 0, TMax: 1 + 5e-8, Step: 1e-7}, 1e7 + 1},
		{"fine step exact", Schedule{TMin: 0, TMax: 1, Step: 1e-7}, 1e7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.sched.Validate())
			n := tt.sched.StepCount()
			require.Equal(t, tt.steps, n)
			require.GreaterOrEqual(t, tt.sched.Time(n), tt.sched.TMax-1e-6*tt.sched.Step)
		})
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name  string
		sched Schedule
	}{
		{"zero step", Schedule{TMin: 0, TMax: 1, Step: 0}},
		{"negative step", Schedule{TMin: 0, TMax: 1, Step: -0.1}},
		{"NaN step", Schedule{TMin: 0, TMax: 1, Step: math.NaN()}},
		{"equal bounds", Schedule{TMin: 1, TMax: 1, Step: 0.1}},
		{"reversed bounds", Schedule{TMin: 2, TMax: 1, Step: 0.1}},
		{"infinite end", Schedule{TMin: 0, TMax: math.Inf(1), Step: 0.1}},
		{"too many steps", Schedule{TMin: 0, TMax: 1, Step: 1e-12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.sched.Validate(), ErrInvalidArgument)
		})
	}
}

func TestValidateInitial(t *testing.T) {
	require.NoError(t, ValidateInitial(State{1, 0}))
	require.ErrorIs(t, ValidateInitial(nil), ErrInvalidArgument)
	require.ErrorIs(t, ValidateInitial(State{}), ErrInvalidArgument)
	require.ErrorIs(t, ValidateInitial(State{math.NaN()}), ErrInvalidArgument)
}
