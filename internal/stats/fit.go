package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PolyFit returns the least-squares coefficients of a degree-d polynomial,
// lowest order first.
func PolyFit(x, y []float64, degree int) ([]float64, error) {
	n := len(x)
	if degree < 0 || len(y) != n || n < degree+1 {
		return nil, invalidf("need at least %d points of equal length, got %d and %d", degree+1, len(x), len(y))
	}

	cols := degree + 1
	a := mat.NewDense(n, cols, nil)
	for i, xi := range x {
		p := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, p)
			p *= xi
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		return nil, invalidf("polynomial fit: %v", err)
	}
	return mat.Col(nil, 0, &c), nil
}

// Line is y = A + B x with the standard errors of both coefficients.
type Line struct {
	A, SigmaA float64
	B, SigmaB float64
}

// LeastSquares fits a straight line through (x, y) in closed form.
func LeastSquares(x, y []float64) (Line, error) {
	n := len(x)
	if n < 3 || len(y) != n {
		return Line{}, invalidf("need at least 3 points of equal length, got %d and %d", len(x), len(y))
	}

	nf := float64(n)
	sumX := floats.Sum(x)
	sumY := floats.Sum(y)
	sumXX := floats.Dot(x, x)
	sumXY := floats.Dot(x, y)

	delta := nf*sumXX - sumX*sumX
	if delta == 0 {
		return Line{}, invalidf("x values are all equal")
	}

	l := Line{
		A: (sumXX*sumY - sumX*sumXY) / delta,
		B: (nf*sumXY - sumX*sumY) / delta,
	}
	sy := math.Sqrt(RSS(x, y, []float64{l.A, l.B}) / (nf - 2))
	l.SigmaA = sy * math.Sqrt(sumXX/delta)
	l.SigmaB = sy * math.Sqrt(nf/delta)
	return l, nil
}

// MonteCarloLine fits (x, y), then refits trials synthetic data sets drawn
// around that line: x uniform over [x[0], x[n-1]] and y with Gaussian
// scatter equal to the fit's residual standard deviation. It returns the
// mean of the refitted lines. The same seed gives the same result.
func MonteCarloLine(x, y []float64, trials int, seed uint64) (Line, error) {
	if trials <= 0 {
		return Line{}, invalidf("trials must be positive, got %d", trials)
	}
	best, err := LeastSquares(x, y)
	if err != nil {
		return Line{}, err
	}

	n := len(x)
	yErr := math.Sqrt(RSS(x, y, []float64{best.A, best.B}) / float64(n-2))
	lo, hi := x[0], x[n-1]
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	as := make([]float64, trials)
	sigAs := make([]float64, trials)
	bs := make([]float64, trials)
	sigBs := make([]float64, trials)
	xt := make([]float64, n)
	yt := make([]float64, n)

	for j := 0; j < trials; j++ {
		for i := range xt {
			xt[i] = lo + (hi-lo)*rng.Float64()
			yt[i] = best.A + best.B*xt[i] + rng.NormFloat64()*yErr
		}
		l, err := LeastSquares(xt, yt)
		if err != nil {
			return Line{}, err
		}
		as[j], sigAs[j], bs[j], sigBs[j] = l.A, l.SigmaA, l.B, l.SigmaB
	}

	return Line{
		A:      stat.Mean(as, nil),
		SigmaA: stat.Mean(sigAs, nil),
		B:      stat.Mean(bs, nil),
		SigmaB: stat.Mean(sigBs, nil),
	}, nil
}
