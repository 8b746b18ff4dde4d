package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidArgument = errors.New("stats: invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Polynomial evaluates params[0] + params[1] x + params[2] x² + ... by
// Horner's rule.
func Polynomial(params []float64, x float64) float64 {
	v := 0.0
	for i := len(params) - 1; i >= 0; i-- {
		v = v*x + params[i]
	}
	return v
}

// RSS is the residual sum of squares of the polynomial params over (x, y).
func RSS(x, y, params []float64) float64 {
	res := make([]float64, len(x))
	for i := range x {
		res[i] = y[i] - Polynomial(params, x[i])
	}
	return floats.Dot(res, res)
}

// Akaike returns AIC = n ln(RSS/n) + 2k for a k-parameter polynomial fit:
// k = 2 is a + b x and k = 3 is a + b x + c x². params run lowest order
// first. A perfect fit (RSS = 0) has no finite AIC and is rejected.
func Akaike(n, k int, x, y, params []float64) (float64, error) {
	if k != 2 && k != 3 {
		return 0, invalidf("k must be 2 (linear) or 3 (quadratic), got %d", k)
	}
	if len(params) != k {
		return 0, invalidf("expected %d params, got %d", k, len(params))
	}
	if n <= 0 || len(x) != n || len(y) != n {
		return 0, invalidf("n=%d does not match len(x)=%d, len(y)=%d", n, len(x), len(y))
	}

	rss := RSS(x, y, params)
	if rss == 0 || math.IsNaN(rss) || math.IsInf(rss, 0) {
		return 0, invalidf("residual sum of squares is %g", rss)
	}
	return float64(n)*math.Log(rss/float64(n)) + 2*float64(k), nil
}
