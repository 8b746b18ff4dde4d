package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// LogisticLyapunov returns the base-2 Lyapunov exponent of the logistic map
// at r, averaging log2|f'(x)| = log2|4r(1-2x)| over iterations discard..n-1.
// Negative values mean a stable cycle, positive values mean chaos.
func LogisticLyapunov(r, x0 float64, n, discard int) (float64, error) {
	if n <= 0 || discard < 0 || discard >= n {
		return 0, fmt.Errorf("%w: need 0 <= discard < n, got discard=%d n=%d", dynamo.ErrInvalidArgument, discard, n)
	}

	x := x0
	sum := 0.0
	for j := 0; j < n; j++ {
		if j >= discard {
			sum += math.Log2(math.Abs(4 * r * (1 - 2*x)))
		}
		x = LogisticMap(r, x)
	}
	return sum / float64(n-discard), nil
}

// LyapunovSweep evaluates LogisticLyapunov for each r from the same x0.
func LyapunovSweep(rs []float64, x0 float64, n, discard int) ([]float64, error) {
	out := make([]float64, len(rs))
	for i, r := range rs {
		l, err := LogisticLyapunov(r, x0, n, discard)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// LyapunovExponent estimates the largest Lyapunov exponent of a flow by
// following a reference and a perturbed trajectory with st, renormalizing
// their separation back to d0 after every step.
//
// λ ≈ Σ ln(d_i/d0) / (steps * h)
func LyapunovExponent(st dynamo.Stepper, x0 dynamo.State, h, duration, d0 float64) (float64, error) {
	sched := dynamo.Schedule{TMin: 0, TMax: duration, Step: h}
	if err := sched.Validate(); err != nil {
		return 0, err
	}
	if err := dynamo.ValidateInitial(x0); err != nil {
		return 0, err
	}
	if !(d0 > 0) || math.IsInf(d0, 0) {
		return 0, fmt.Errorf("%w: perturbation must be positive, got %g", dynamo.ErrInvalidArgument, d0)
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	n := sched.StepCount()
	sumLog := 0.0
	for i := 0; i < n; i++ {
		t := sched.Time(i)
		var err error
		if x, err = st.Step(t, h, x); err != nil {
			return 0, &dynamo.StepError{Step: i, Time: t, Err: err}
		}
		if xp, err = st.Step(t, h, xp); err != nil {
			return 0, &dynamo.StepError{Step: i, Time: t, Err: err}
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			// Trajectories merged; restart the perturbation along y[0].
			xp = x.Clone()
			xp[0] += d0
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	return sumLog / (float64(n) * h), nil
}
