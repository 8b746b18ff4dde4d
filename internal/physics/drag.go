package physics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// VerticalDrag is a ball thrown straight up with drag proportional to v²,
// written in terms of its terminal speed Vt. State is [y, v].
type VerticalDrag struct {
	G  float64
	Vt float64
	V0 float64
}

func NewVerticalDrag() *VerticalDrag { return &VerticalDrag{G: 9.81, Vt: 36, V0: 20} }

func (d VerticalDrag) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	v := y[1]
	return dynamo.State{v, -d.G * (1 + v*math.Abs(v)/(d.Vt*d.Vt))}, nil
}

func (d *VerticalDrag) fields() map[string]*float64 {
	return map[string]*float64{"g": &d.G, "vt": &d.Vt, "v0": &d.V0}
}

func (d *VerticalDrag) model() *Model {
	return &Model{
		Labels:   []string{"y", "v"},
		Init:     dynamo.State{0, d.V0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 20, Step: 0.01},
		Rate:     d.Rate,
		Stop:     belowGround(0),
	}
}

// Projectile is 2D flight with quadratic drag. State is [x, y, vx, vy];
// launch speed, angle in degrees and height set the initial state.
type Projectile struct {
	G      float64
	Vt     float64
	V0     float64
	Angle  float64
	Height float64
}

func NewProjectile() *Projectile {
	return &Projectile{G: 9.81, Vt: 9, V0: 20, Angle: 40, Height: 1.25}
}

// NewFootball is the long pass: heavier ball, higher terminal speed.
func NewFootball() *Projectile {
	return &Projectile{G: 9.81, Vt: 45, V0: 30, Angle: 30, Height: 1.8}
}

func (p Projectile) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	vx, vy := y[2], y[3]
	v := math.Hypot(vx, vy)
	k := p.G / (p.Vt * p.Vt)
	return dynamo.State{vx, vy, -k * vx * v, -p.G - k*vy*v}, nil
}

func (p Projectile) Init() dynamo.State {
	rad := p.Angle * math.Pi / 180
	return dynamo.State{0, p.Height, p.V0 * math.Cos(rad), p.V0 * math.Sin(rad)}
}

func (p *Projectile) fields() map[string]*float64 {
	return map[string]*float64{"g": &p.G, "vt": &p.Vt, "v0": &p.V0, "angle": &p.Angle, "height": &p.Height}
}

func (p *Projectile) model() *Model {
	return &Model{
		Labels:   []string{"x", "y", "vx", "vy"},
		Init:     p.Init(),
		Schedule: dynamo.Schedule{TMin: 0, TMax: 20, Step: 0.01},
		Rate:     p.Rate,
		Stop:     belowGround(1),
	}
}

func belowGround(i int) func(float64, dynamo.State) bool {
	return func(_ float64, y dynamo.State) bool { return y[i] < 0 }
}

// Cyclist rides a course of CourseLength/3 climbing at Grade degrees, the
// same distance flat, then the same distance descending. Past the end the
// road is flat. State is [x, v].
type Cyclist struct {
	CD, Rho, Area float64
	Power, Mass   float64
	G             float64
	Grade         float64
	CourseLength  float64
	V0            float64
}

func NewCyclist() *Cyclist {
	return &Cyclist{
		CD:           1,
		Rho:          1.225,
		Area:         0.33,
		Power:        400,
		Mass:         70,
		G:            9.81,
		Grade:        6,
		CourseLength: 3000,
		V0:           4,
	}
}

// Rate fails with ErrStalled when v <= 0.
func (c Cyclist) Rate(_ float64, y dynamo.State) (dynamo.State, error) {
	x, v := y[0], y[1]
	if v <= 0 {
		return nil, ErrStalled
	}

	a := -0.5*c.CD*c.Rho*c.Area*v*v/c.Mass + c.Power/(c.Mass*v)
	slope := c.G * math.Sin(c.Grade*math.Pi/180)
	third := c.CourseLength / 3
	switch {
	case x <= third:
		a -= slope
	case x > 2*third && x <= c.CourseLength:
		a += slope
	}
	return dynamo.State{v, a}, nil
}

func (c *Cyclist) fields() map[string]*float64 {
	return map[string]*float64{
		"cd": &c.CD, "rho": &c.Rho, "area": &c.Area,
		"power": &c.Power, "mass": &c.Mass, "g": &c.G,
		"grade": &c.Grade, "course": &c.CourseLength, "v0": &c.V0,
	}
}

func (c *Cyclist) model() *Model {
	end := c.CourseLength
	return &Model{
		Labels:   []string{"x", "v"},
		Init:     dynamo.State{0, c.V0},
		Schedule: dynamo.Schedule{TMin: 0, TMax: 2000, Step: 0.1},
		Rate:     c.Rate,
		Stop:     func(_ float64, y dynamo.State) bool { return y[0] >= end },
	}
}
