package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/odelab/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k| for k in [0, n/2) of the real signal data.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency, in the units of sampleRate, of
// the strongest non-DC spectral bin. The mean is removed first.
func DominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	n := len(samples)
	if n < 4 || !(sampleRate > 0) {
		return 0, fmt.Errorf("%w: need at least 4 samples and a positive rate", dynamo.ErrInvalidArgument)
	}

	mean := stat.Mean(samples, nil)
	centered := make([]float64, n)
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(best) * sampleRate / float64(n), nil
}
