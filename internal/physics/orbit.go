package physics

import (
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

const (
	GravitationalConstant = 6.67e-11
	SolarMass             = 2e30
	AU                    = 1.5e11
)

// Orbit is a planet around a fixed star of mass M. State is
// [x, y, z, vx, vy, vz] in SI units. The planet starts at R0 on the x axis
// with VFactor and ZFactor times the circular speed along y and z.
type Orbit struct {
	G, M    float64
	R0      float64
	VFactor float64
	ZFactor float64
}

func NewOrbit() *Orbit {
	return &Orbit{G: GravitationalConstant, M: SolarMass, R0: AU, VFactor: 1.3, ZFactor: 0.1}
}

func (o Orbit) Rate(_ float64, s dynamo.State) (dynamo.State, error) {
	r := math.Sqrt(s[0]*s[0] + s[1]*s[1] + s[2]*s[2])
	k := -o.G * o.M / (r * r * r)
	return dynamo.State{s[3], s[4], s[5], k * s[0], k * s[1], k * s[2]}, nil
}

// Energy is the specific orbital energy v²/2 - GM/r.
func (o Orbit) Energy(s dynamo.State) float64 {
	r := math.Sqrt(s[0]*s[0] + s[1]*s[1] + s[2]*s[2])
	v2 := s[3]*s[3] + s[4]*s[4] + s[5]*s[5]
	return 0.5*v2 - o.G*o.M/r
}

func (o Orbit) Init() dynamo.State {
	vc := math.Sqrt(o.G * o.M / o.R0)
	return dynamo.State{o.R0, 0, 0, 0, o.VFactor * vc, o.ZFactor * vc}
}

func (o *Orbit) fields() map[string]*float64 {
	return map[string]*float64{"g": &o.G, "m": &o.M, "r0": &o.R0, "vfactor": &o.VFactor, "zfactor": &o.ZFactor}
}

func (o *Orbit) model() *Model {
	return &Model{
		Labels:   []string{"x", "y", "z", "vx", "vy", "vz"},
		Init:     o.Init(),
		Schedule: dynamo.Schedule{TMin: 0, TMax: 2e8, Step: 1e5},
		Rate:     o.Rate,
		Energy:   *o,
	}
}
