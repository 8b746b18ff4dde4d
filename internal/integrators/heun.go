package integrators

import "github.com/san-kum/odelab/internal/dynamo"

// Heun uses an Euler predictor and averages the slopes at both ends of the
// step. Local error is O(h³), global O(h²).
type Heun struct {
	f      dynamo.Func
	d1, d2 dynamo.State
	pred   dynamo.State
}

// NewHeun binds p to f; p reaches every evaluation untouched.
func NewHeun(f dynamo.ParamFunc, p dynamo.Params) *Heun {
	return &Heun{f: dynamo.Bind(f, p)}
}

func (hn *Heun) Name() string { return dynamo.SchemeHeun.String() }

func (hn *Heun) ensureScratch(n int) {
	if len(hn.d1) != n {
		hn.d1 = make(dynamo.State, n)
		hn.d2 = make(dynamo.State, n)
		hn.pred = make(dynamo.State, n)
	}
}

func (hn *Heun) Step(t, h float64, y dynamo.State) (dynamo.State, error) {
	n := len(y)
	hn.ensureScratch(n)

	if err := derive(hn.f, t, y, hn.d1); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		hn.pred[i] = y[i] + hn.d1[i]*h
	}

	if err := derive(hn.f, t+h, hn.pred, hn.d2); err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + 0.5*(hn.d1[i]+hn.d2[i])*h
	}
	return result, nil
}
