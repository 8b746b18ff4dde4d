package physics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{0.398, 2, 4} }

// Rate calculates the Rossler attractor derivatives.
func (r Rossler) Rate(_ float64, s dynamo.State) (dynamo.State, error) {
	return dynamo.State{-s[1] - s[2], s[0] + r.A*s[1], r.B + s[2]*(s[0]-r.C)}, nil
}

func (r *Rossler) fields() map[string]*float64 {
	return map[string]*float64{"a": &r.A, "b": &r.B, "c": &r.C}
}

func (r *Rossler) model() *Model {
	return &Model{
		Labels:   []string{"x", "y", "z"},
		Init:     dynamo.State{0, 1, 1.05},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 100, Step: 0.01},
		Rate:     r.Rate,
	}
}

// Autocatalator is a two-species reaction fed by a slowly decaying source:
//
//	x' = exp(-Feed t) - K x - x y²
//	y' = K x - y + x y²
type Autocatalator struct{ Feed, K float64 }

func NewAutocatalator() *Autocatalator { return &Autocatalator{Feed: 0.002, K: 0.08} }

func (a Autocatalator) Rate(t float64, s dynamo.State) (dynamo.State, error) {
	x, y := s[0], s[1]
	xy2 := x * y * y
	return dynamo.State{
		math.Exp(-a.Feed*t) - a.K*x - xy2,
		a.K*x - y + xy2,
	}, nil
}

func (a *Autocatalator) fields() map[string]*float64 {
	return map[string]*float64{"feed": &a.Feed, "k": &a.K}
}

func (a *Autocatalator) model() *Model {
	return &Model{
		Labels:   []string{"x", "y"},
		Init:     dynamo.State{0, 0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 1000, Step: 0.1},
		Rate:     a.Rate,
	}
}
