package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/stretchr/testify/require"
)

func TestLogisticLyapunov(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		want  float64
		delta float64
	}{
		// 4r = 2.8: stable fixed point with multiplier -0.8.
		{"fixed point", 0.7, math.Log2(0.8), 1e-6},
		// 4r = 4: fully chaotic, exponent is one bit per iteration.
		{"full chaos", 1.0, 1.0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogisticLyapunov(tt.r, 0.3, 10000, 5000)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestLogisticLyapunovRejectsBadCounts(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {100, 100}, {100, -1}} {
		_, err := LogisticLyapunov(0.5, 0.3, c[0], c[1])
		require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	}
}

func TestLyapunovSweep(t *testing.T) {
	rs := []float64{0.5, 0.7, 0.95}
	got, err := LyapunovSweep(rs, 0.25, 2000, 1000)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, r := range rs {
		want, err := LogisticLyapunov(r, 0.25, 2000, 1000)
		require.NoError(t, err)
		require.Equal(t, want, got[i])
	}
	require.Negative(t, got[1])
	require.Positive(t, got[2])
}

func TestLyapunovExponentLorenzIsPositive(t *testing.T) {
	lorenz := func(t float64, s dynamo.State) (dynamo.State, error) {
		return dynamo.State{10 * (s[1] - s[0]), s[0]*(28-s[2]) - s[1], s[0]*s[1] - 8.0/3.0*s[2]}, nil
	}

	lambda, err := LyapunovExponent(integrators.NewRK4(lorenz), dynamo.State{0, 1, 1.05}, 0.01, 50, 1e-8)
	require.NoError(t, err)
	require.Greater(t, lambda, 0.3)
}

func TestLyapunovExponentDampedIsNegative(t *testing.T) {
	damped := func(t float64, y dynamo.State, p dynamo.Params) (float64, error) {
		return -0.5*y[1] - 2*y[0], nil
	}

	lambda, err := LyapunovExponent(integrators.NewHighOrderRK4(damped, nil), dynamo.State{1, 0}, 0.01, 100, 1e-6)
	require.NoError(t, err)
	require.Negative(t, lambda)
}

func TestLyapunovExponentValidates(t *testing.T) {
	st := integrators.NewEuler(func(t float64, y dynamo.State) (dynamo.State, error) { return y, nil })

	_, err := LyapunovExponent(st, dynamo.State{1}, 0, 1, 1e-8)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = LyapunovExponent(st, nil, 0.1, 1, 1e-8)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = LyapunovExponent(st, dynamo.State{1}, 0.1, 1, 0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}
