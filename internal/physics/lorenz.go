package physics

import "github.com/san-kum/odelab/internal/dynamo"

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

// Rate calculates the Lorenz attractor derivatives.
func (l Lorenz) Rate(_ float64, s dynamo.State) (dynamo.State, error) {
	return dynamo.State{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}, nil
}

func (l *Lorenz) fields() map[string]*float64 {
	return map[string]*float64{"sigma": &l.Sigma, "rho": &l.Rho, "beta": &l.Beta}
}

func (l *Lorenz) model() *Model {
	return &Model{
		Labels:   []string{"x", "y", "z"},
		Init:     dynamo.State{0, 1, 1.05},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 100, Step: 0.01},
		Rate:     l.Rate,
	}
}
