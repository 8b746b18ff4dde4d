package analysis

import "math"

// Map is a one-parameter iterated map x_{n+1} = f(r, x_n).
type Map func(r, x float64) float64

// LogisticMap is 4r x (1-x); r in [0, 1] keeps x in [0, 1].
func LogisticMap(r, x float64) float64 {
	return 4 * r * x * (1 - x)
}

// SineMap is 4r sin(x).
func SineMap(r, x float64) float64 {
	return 4 * r * math.Sin(x)
}

// Iterate returns x0 followed by n applications of m.
func Iterate(m Map, r, x0 float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	xs := make([]float64, n+1)
	xs[0] = x0
	for i := 1; i <= n; i++ {
		xs[i] = m(r, xs[i-1])
	}
	return xs
}
