package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/stretchr/testify/require"
)

func TestDominantFrequency(t *testing.T) {
	const rate = 64.0
	samples := make([]float64, 256)
	for i := range samples {
		ti := float64(i) / rate
		samples[i] = 3 + math.Sin(2*math.Pi*2*ti) + 0.2*math.Sin(2*math.Pi*9*ti)
	}

	f, err := DominantFrequency(samples, rate)
	require.NoError(t, err)
	require.InDelta(t, 2.0, f, 1e-9)
}

func TestDominantFrequencyNonPowerOfTwo(t *testing.T) {
	const rate = 50.0
	samples := make([]float64, 300)
	for i := range samples {
		samples[i] = math.Cos(2 * math.Pi * 5 * float64(i) / rate)
	}

	f, err := DominantFrequency(samples, rate)
	require.NoError(t, err)
	require.InDelta(t, 5.0, f, rate/300)
}

func TestDominantFrequencyValidates(t *testing.T) {
	_, err := DominantFrequency([]float64{1, 2}, 10)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
	_, err = DominantFrequency(make([]float64, 16), 0)
	require.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestPowerSpectrumLength(t *testing.T) {
	require.Len(t, PowerSpectrum(make([]float64, 10)), 5)
}
