package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// State holds y, y', y'', ... at a single time point.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Params are extra derivative arguments. Integrators forward them
// positionally and never read them.
type Params []float64

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	copy(c, p)
	return c
}

// Func returns the full rate vector dy/dt for state y at time t.
type Func func(t float64, y State) (State, error)

// ParamFunc is a Func that also receives the caller's Params.
type ParamFunc func(t float64, y State, p Params) (State, error)

// HighestFunc returns only the highest-order derivative y^(m) of an m-th
// order scalar ODE whose state is [y, y', ..., y^(m-1)].
type HighestFunc func(t float64, y State, p Params) (float64, error)

// Bind fixes the params of f.
func Bind(f ParamFunc, p Params) Func {
	return func(t float64, y State) (State, error) {
		return f(t, y, p)
	}
}

// Companion expands a HighestFunc into the equivalent first-order system:
// rate[j] = y[j+1] for j < m-1 and rate[m-1] = f(t, y, p).
func Companion(f HighestFunc, p Params) Func {
	return func(t float64, y State) (State, error) {
		top, err := f(t, y, p)
		if err != nil {
			return nil, err
		}
		dy := make(State, len(y))
		copy(dy, y[1:])
		dy[len(y)-1] = top
		return dy, nil
	}
}

// Stepper advances y from t to t+h. Implementations must not modify y.
type Stepper interface {
	Step(t, h float64, y State) (State, error)
	Name() string
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Scheme selects one of the fixed-step explicit methods.
type Scheme int

const (
	SchemeEuler Scheme = iota
	SchemeHeun
	SchemeRK4
)

var schemeNames = [...]string{
	SchemeEuler: "euler",
	SchemeHeun:  "heun",
	SchemeRK4:   "rk4",
}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Order is the global order of accuracy of the scheme.
func (s Scheme) Order() int {
	switch s {
	case SchemeEuler:
		return 1
	case SchemeHeun:
		return 2
	case SchemeRK4:
		return 4
	}
	return 0
}

func ParseScheme(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if strings.EqualFold(name, n) {
			return Scheme(i), nil
		}
	}
	return 0, invalidf("unknown scheme %q (available: %s)", name, strings.Join(schemeNames[:], ", "))
}

func Schemes() []Scheme {
	return []Scheme{SchemeEuler, SchemeHeun, SchemeRK4}
}
