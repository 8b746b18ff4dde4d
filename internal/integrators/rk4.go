package integrators

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// rk4Core holds the stage buffers shared by both RK4 variants. Each k_i is
// already scaled by h.
type rk4Core struct {
	k1, k2, k3, k4 dynamo.State
	rate           dynamo.State
	scratch        dynamo.State
}

func (r *rk4Core) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.rate = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// step runs the four stages in order; each depends on the previous one.
// rates fills out with dy/dt at (t, y).
func (r *rk4Core) step(t, h float64, y dynamo.State, rates func(t float64, y, out dynamo.State) error) (dynamo.State, error) {
	n := len(y)
	r.ensureScratch(n)

	if err := rates(t, y, r.rate); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.k1[i] = r.rate[i] * h
		r.scratch[i] = y[i] + 0.5*r.k1[i]
	}

	if err := rates(t+0.5*h, r.scratch, r.rate); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.k2[i] = r.rate[i] * h
		r.scratch[i] = y[i] + 0.5*r.k2[i]
	}

	if err := rates(t+0.5*h, r.scratch, r.rate); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.k3[i] = r.rate[i] * h
		r.scratch[i] = y[i] + r.k3[i]
	}

	if err := rates(t+h, r.scratch, r.rate); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.k4[i] = r.rate[i] * h
	}

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + (r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])/6
	}
	return result, nil
}

// RK4 is the classic four-stage method for systems whose every component's
// rate is known explicitly (Lorenz, Rössler, orbits).
type RK4 struct {
	rk4Core
	f dynamo.Func
}

func NewRK4(f dynamo.Func) *RK4 {
	return &RK4{f: f}
}

func (r *RK4) Name() string { return dynamo.SchemeRK4.String() }

func (r *RK4) Step(t, h float64, y dynamo.State) (dynamo.State, error) {
	return r.step(t, h, y, func(t float64, y, out dynamo.State) error {
		return derive(r.f, t, y, out)
	})
}

// HighOrderRK4 integrates y^(m) = f(t, y, p) as m coupled first-order
// equations. The costly f runs once per stage; the lower m-1 rates are the
// stage state's own entries shifted down by one.
type HighOrderRK4 struct {
	rk4Core
	f dynamo.HighestFunc
	p dynamo.Params
}

func NewHighOrderRK4(f dynamo.HighestFunc, p dynamo.Params) *HighOrderRK4 {
	return &HighOrderRK4{f: f, p: p}
}

func (r *HighOrderRK4) Name() string { return "rk4-highorder" }

func (r *HighOrderRK4) Step(t, h float64, y dynamo.State) (dynamo.State, error) {
	return r.step(t, h, y, r.rates)
}

// rates writes [y', y'', ..., y^(m)] for the stage state s.
func (r *HighOrderRK4) rates(t float64, s, out dynamo.State) error {
	m := len(s)
	top, err := r.f(t, s, r.p)
	if err != nil {
		return err
	}
	copy(out[:m-1], s[1:])
	out[m-1] = top
	if math.IsNaN(top) || math.IsInf(top, 0) {
		return checkFinite(t, s, out)
	}
	return nil
}
