package physics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// DrivenPendulum is θ'' = -Damping θ' - sin θ + Drive cos(Freq t). At the
// default drive the motion is chaotic; small drives settle on a period-1
// orbit.
type DrivenPendulum struct {
	Damping float64
	Drive   float64
	Freq    float64
}

func NewDrivenPendulum() *DrivenPendulum {
	return &DrivenPendulum{Damping: 0.5, Drive: 1.78, Freq: 2.0 / 3.0}
}

func (p DrivenPendulum) Accel(t float64, y dynamo.State, _ dynamo.Params) (float64, error) {
	return -p.Damping*y[1] - math.Sin(y[0]) + p.Drive*math.Cos(p.Freq*t), nil
}

// DrivePeriod is 2π/Freq.
func (p DrivenPendulum) DrivePeriod() float64 { return 2 * math.Pi / p.Freq }

func (p *DrivenPendulum) fields() map[string]*float64 {
	return map[string]*float64{"damping": &p.Damping, "drive": &p.Drive, "freq": &p.Freq}
}

func (p *DrivenPendulum) model() *Model {
	return &Model{
		Labels:   []string{"theta", "omega"},
		Init:     dynamo.State{0, 0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 100 * p.DrivePeriod(), Step: p.DrivePeriod() / 100},
		Highest:  p.Accel,
	}
}

// DampedSpring is x'' = -Damping x' - Stiffness x.
type DampedSpring struct {
	Damping   float64
	Stiffness float64
	X0, V0    float64
}

func NewDampedSpring() *DampedSpring {
	return &DampedSpring{Damping: 0.05, Stiffness: 2, X0: -0.75, V0: 1.2}
}

func (s DampedSpring) Accel(_ float64, y dynamo.State, _ dynamo.Params) (float64, error) {
	return -s.Damping*y[1] - s.Stiffness*y[0], nil
}

func (s *DampedSpring) fields() map[string]*float64 {
	return map[string]*float64{"damping": &s.Damping, "stiffness": &s.Stiffness, "x0": &s.X0, "v0": &s.V0}
}

func (s *DampedSpring) model() *Model {
	return &Model{
		Labels:   []string{"x", "v"},
		Init:     dynamo.State{s.X0, s.V0},
		Schedule: grid(0, 100, 1000),
		Highest:  s.Accel,
	}
}

// Oscillator is y'' = -Omega² y, with energy ½(v² + Omega² y²).
type Oscillator struct{ Omega float64 }

func NewOscillator() *Oscillator { return &Oscillator{Omega: 1} }

func (o Oscillator) Accel(_ float64, y dynamo.State, _ dynamo.Params) (float64, error) {
	return -o.Omega * o.Omega * y[0], nil
}

func (o Oscillator) Energy(y dynamo.State) float64 {
	return 0.5 * (y[1]*y[1] + o.Omega*o.Omega*y[0]*y[0])
}

func (o *Oscillator) fields() map[string]*float64 {
	return map[string]*float64{"omega": &o.Omega}
}

func (o *Oscillator) model() *Model {
	period := 2 * math.Pi / o.Omega
	return &Model{
		Labels:   []string{"y", "v"},
		Init:     dynamo.State{1, 0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: period, Step: period / 100},
		Highest:  o.Accel,
		Energy:   *o,
	}
}

// SineODE is dx/dt = 1 - t sin x.
type SineODE struct{}

func NewSineODE() *SineODE { return &SineODE{} }

func (SineODE) Rate(t float64, y dynamo.State) (dynamo.State, error) {
	return dynamo.State{1 - t*math.Sin(y[0])}, nil
}

func (s *SineODE) fields() map[string]*float64 { return map[string]*float64{} }

func (s *SineODE) model() *Model {
	return &Model{
		Labels:   []string{"x"},
		Init:     dynamo.State{0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 10, Step: 0.01},
		Rate:     s.Rate,
	}
}
