package physics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Decay is dN/dt = -K N.
type Decay struct {
	K  float64
	N0 float64
}

func NewDecay() *Decay { return &Decay{K: 2.5, N0: 1000} }

func (d Decay) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	return dynamo.State{-d.K * y[0]}, nil
}

// RateWithParams reads the decay constant from p[0].
func RateWithParams(_ float64, y dynamo.State, p dynamo.Params) (dynamo.State, error) {
	return dynamo.State{-p[0] * y[0]}, nil
}

func (d Decay) Analytic(t float64) float64 {
	return d.N0 * math.Exp(-d.K*t)
}

func (d *Decay) fields() map[string]*float64 {
	return map[string]*float64{"k": &d.K, "n0": &d.N0}
}

func (d *Decay) model() *Model {
	return &Model{
		Labels:   []string{"N"},
		Init:     dynamo.State{d.N0},
		Schedule: grid(0, 1, 50),
		Rate:     d.Rate,
	}
}

// ChainDecay is a parent (N1) decaying into a daughter (N2) that decays
// in turn.
type ChainDecay struct {
	K1, K2 float64
	N0     float64
}

func NewChainDecay() *ChainDecay { return &ChainDecay{K1: 0.15, K2: 0.2, N0: 1000} }

func (c ChainDecay) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	return dynamo.State{
		-c.K1 * y[0],
		c.K1*y[0] - c.K2*y[1],
	}, nil
}

// Analytic returns N1 and N2 at t for N2(0) = 0. K1 must differ from K2.
func (c ChainDecay) Analytic(t float64) (n1, n2 float64) {
	e1 := math.Exp(-c.K1 * t)
	e2 := math.Exp(-c.K2 * t)
	return c.N0 * e1, c.N0 * c.K1 / (c.K2 - c.K1) * (e1 - e2)
}

func (c *ChainDecay) fields() map[string]*float64 {
	return map[string]*float64{"k1": &c.K1, "k2": &c.K2, "n0": &c.N0}
}

func (c *ChainDecay) model() *Model {
	return &Model{
		Labels:   []string{"N1", "N2"},
		Init:     dynamo.State{c.N0, 0},
		Schedule: grid(0, 30, 200),
		Rate:     c.Rate,
	}
}

// Riccati is dy/dt = y² + 1 with y(0) = 0, whose solution tan(t) blows up
// at π/2.
type Riccati struct{}

func NewRiccati() *Riccati { return &Riccati{} }

func (Riccati) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	return dynamo.State{y[0]*y[0] + 1}, nil
}

func (Riccati) Analytic(t float64) float64 { return math.Tan(t) }

func (r *Riccati) fields() map[string]*float64 { return map[string]*float64{} }

func (r *Riccati) model() *Model {
	return &Model{
		Labels:   []string{"y"},
		Init:     dynamo.State{0},
		Schedule: grid(0, 1, 100),
		Rate:     r.Rate,
	}
}

// Cooling is Newton cooling at rate K toward an ambient temperature that
// swings between 0 and 2*Ambient over Period.
type Cooling struct {
	Ambient float64
	K       float64
	Period  float64
	T0      float64
}

func NewCooling() *Cooling { return &Cooling{Ambient: 65, K: 0.1, Period: 12, T0: 98.6} }

func (c Cooling) Rate(t float64, y dynamo.State) (dynamo.State, error) {
	ambient := c.Ambient * (1 + math.Cos(2*math.Pi*t/c.Period))
	return dynamo.State{-c.K * (y[0] - ambient)}, nil
}

func (c *Cooling) fields() map[string]*float64 {
	return map[string]*float64{"ambient": &c.Ambient, "k": &c.K, "period": &c.Period, "t0": &c.T0}
}

func (c *Cooling) model() *Model {
	return &Model{
		Labels:   []string{"T"},
		Init:     dynamo.State{c.T0},
		Schedule: grid(0, 48, 200),
		Rate:     c.Rate,
	}
}
