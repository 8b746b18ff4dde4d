package integrators

import "github.com/san-kum/odelab/internal/dynamo"

// Euler is first-order and kept mostly as a baseline for comparisons.
type Euler struct {
	f  dynamo.Func
	dy dynamo.State
}

func NewEuler(f dynamo.Func) *Euler {
	return &Euler{f: f}
}

func (e *Euler) Name() string { return dynamo.SchemeEuler.String() }

func (e *Euler) Step(t, h float64, y dynamo.State) (dynamo.State, error) {
	if len(e.dy) != len(y) {
		e.dy = make(dynamo.State, len(y))
	}
	if err := derive(e.f, t, y, e.dy); err != nil {
		return nil, err
	}

	result := make(dynamo.State, len(y))
	for i := range y {
		result[i] = y[i] + h*e.dy[i]
	}
	return result, nil
}
