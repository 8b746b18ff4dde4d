package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/odelab/internal/dynamo"
)

// HomePlate is the distance from the pitcher's mound, in meters.
const HomePlate = 18.44

// PitchType is one of the preset spin configurations.
type PitchType int

const (
	Fastball PitchType = iota
	Curveball
	Slider
	Screwball
	NoSpin
)

type pitchPreset struct {
	name  string
	short string
	speed float64 // m/s
	phi   float64 // spin axis, degrees
	rpm   float64
}

var pitchPresets = [...]pitchPreset{
	Fastball:  {"fastball", "f", 42, 225, 1800},
	Curveball: {"curveball", "c", 42, 45, 1800},
	Slider:    {"slider", "s", 42, 0, 1800},
	Screwball: {"screwball", "sc", 42, 135, 1800},
	NoSpin:    {"nospin", "n", 42, 0, 0},
}

func (p PitchType) String() string {
	if p < 0 || int(p) >= len(pitchPresets) {
		return fmt.Sprintf("PitchType(%d)", int(p))
	}
	return pitchPresets[p].name
}

// ParsePitchType accepts the full name or its short code, case-insensitive.
func ParsePitchType(s string) (PitchType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, p := range pitchPresets {
		if s == p.name || s == p.short {
			return PitchType(i), nil
		}
	}
	if s == "no-spin" || s == "no spin" {
		return NoSpin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, s)
}

func PitchTypes() []PitchType {
	return []PitchType{Fastball, Curveball, Slider, Screwball, NoSpin}
}

// Pitch is a spinning baseball under speed-dependent drag, Magnus lift and
// gravity. x points to home plate and z up. State is [x, y, z, vx, vy, vz].
type Pitch struct {
	Type        PitchType
	Speed       float64
	Phi         float64 // spin axis, degrees
	Spin        float64 // rad/s
	KL          float64
	G           float64
	Release     float64
	LaunchAngle float64 // degrees above horizontal
}

func NewPitch(t PitchType) *Pitch {
	p := &Pitch{
		Type:        t,
		KL:          4e-4,
		G:           9.81,
		Release:     1.8,
		LaunchAngle: 1,
	}
	if t >= 0 && int(t) < len(pitchPresets) {
		pre := pitchPresets[t]
		p.Speed = pre.speed
		p.Phi = pre.phi
		p.Spin = pre.rpm / 60 * 2 * math.Pi
	}
	return p
}

// DragCoefficient is k_D(v) = 0.0039 + 0.0058 / (1 + exp((v-35)/5)).
func DragCoefficient(v float64) float64 {
	return 0.0039 + 0.0058/(1+math.Exp((v-35)/5))
}

func (p Pitch) Rate(_ float64, s dynamo.State) (dynamo.State, error) {
	vx, vy, vz := s[3], s[4], s[5]
	v := math.Sqrt(vx*vx + vy*vy + vz*vz)
	drag := DragCoefficient(v) * v
	lift := p.KL * p.Spin
	sin, cos := math.Sincos(p.Phi * math.Pi / 180)

	return dynamo.State{
		vx, vy, vz,
		-drag*vx + lift*(vz*sin-vy*cos),
		-drag*vy + lift*vx*cos,
		-drag*vz - lift*vx*sin - p.G,
	}, nil
}

func (p Pitch) Init() dynamo.State {
	sin, cos := math.Sincos(p.LaunchAngle * math.Pi / 180)
	return dynamo.State{0, 0, p.Release, p.Speed * cos, 0, p.Speed * sin}
}

// AtPlate stops a run once the ball passes home plate.
func AtPlate(_ float64, s dynamo.State) bool { return s[0] > HomePlate }

func (p *Pitch) fields() map[string]*float64 {
	return map[string]*float64{
		"speed": &p.Speed, "phi": &p.Phi, "spin": &p.Spin,
		"kl": &p.KL, "g": &p.G, "release": &p.Release, "launch": &p.LaunchAngle,
	}
}

func (p *Pitch) model() *Model {
	return &Model{
		Labels:   []string{"x", "y", "z", "vx", "vy", "vz"},
		Init:     p.Init(),
		Schedule: dynamo.Schedule{TMin: 0, TMax: 2, Step: 0.001},
		Rate:     p.Rate,
		Stop:     AtPlate,
	}
}
