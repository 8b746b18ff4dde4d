package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
)

// Model describes one runnable system. Exactly one of Rate and Highest is
// set.
type Model struct {
	Name        string
	Description string
	Labels      []string
	Init        dynamo.State
	Schedule    dynamo.Schedule
	Params      map[string]float64

	Rate    dynamo.Func
	Highest dynamo.HighestFunc

	// Stop, when set, ends a driven run at the first point it accepts.
	Stop func(t float64, y dynamo.State) bool
	// Energy is nil for dissipative models.
	Energy dynamo.Hamiltonian
}

// Func returns the full rate vector, expanding Highest into its companion
// system when needed.
func (m *Model) Func() dynamo.Func {
	if m.Rate != nil {
		return m.Rate
	}
	return dynamo.Companion(m.Highest, nil)
}

// Stepper resolves scheme for this model. RK4 on a Highest model uses the
// high-order variant directly.
func (m *Model) Stepper(scheme dynamo.Scheme) (dynamo.Stepper, error) {
	if m.Highest != nil && scheme == dynamo.SchemeRK4 {
		return integrators.NewHighOrderRK4(m.Highest, nil), nil
	}
	return integrators.New(scheme, m.Func())
}

// Integrate runs the model over sched from y0 with scheme.
func (m *Model) Integrate(scheme dynamo.Scheme, sched dynamo.Schedule, y0 dynamo.State) (*dynamo.Trajectory, error) {
	st, err := m.Stepper(scheme)
	if err != nil {
		return nil, err
	}
	return integrators.Integrate(st, sched, y0)
}

// definition is implemented by every registered model struct. fields maps
// parameter names to the struct's own storage.
type definition interface {
	fields() map[string]*float64
	model() *Model
}

type entry struct {
	desc  string
	build func() definition
}

var registry = map[string]entry{
	"decay":           {"radioactive decay dN/dt = -kN", func() definition { return NewDecay() }},
	"chain-decay":     {"parent/daughter decay chain", func() definition { return NewChainDecay() }},
	"riccati":         {"dy/dt = y^2 + 1, solution tan(t)", func() definition { return NewRiccati() }},
	"cooling":         {"body cooling against a daily ambient cycle", func() definition { return NewCooling() }},
	"vertical-drag":   {"vertical throw with quadratic drag", func() definition { return NewVerticalDrag() }},
	"projectile":      {"2D projectile with quadratic drag", func() definition { return NewProjectile() }},
	"cyclist":         {"cyclist on a climb, flat and descent", func() definition { return NewCyclist() }},
	"lorenz":          {"Lorenz attractor", func() definition { return NewLorenz() }},
	"rossler":         {"Rossler attractor", func() definition { return NewRossler() }},
	"autocatalator":   {"autocatalytic reaction with decaying feed", func() definition { return NewAutocatalator() }},
	"driven-pendulum": {"damped driven pendulum", func() definition { return NewDrivenPendulum() }},
	"damped-spring":   {"damped harmonic spring", func() definition { return NewDampedSpring() }},
	"sine-ode":        {"dx/dt = 1 - t sin x", func() definition { return NewSineODE() }},
	"oscillator":      {"simple harmonic oscillator y'' = -w^2 y", func() definition { return NewOscillator() }},
	"orbit":           {"planet around a star", func() definition { return NewOrbit() }},
	"pitch":           {"spinning baseball pitch with Magnus force", func() definition { return NewPitch(Fastball) }},
}

// Lookup builds the named model with params overriding its defaults.
func Lookup(name string, params map[string]float64) (*Model, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownModel, name, Names())
	}

	def := e.build()
	fields := def.fields()
	for k, v := range params {
		p, ok := fields[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, name, k)
		}
		*p = v
	}

	m := def.model()
	m.Name = name
	m.Description = e.desc
	m.Params = make(map[string]float64, len(fields))
	for k, p := range fields {
		m.Params[k] = *p
	}
	return m, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Describe(name string) string {
	return registry[name].desc
}

// ParamNames lists the tunable parameters of a model, sorted.
func ParamNames(name string) ([]string, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	var names []string
	for k := range e.build().fields() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// grid builds a schedule of n points over [t0, t1], the linspace layout
// used by most of the models.
func grid(t0, t1 float64, n int) dynamo.Schedule {
	return dynamo.Schedule{TMin: t0, TMax: t1, Step: (t1 - t0) / float64(n-1)}
}
