package dynamo

import "fmt"

// Trajectory is the time-ordered output of one run. It is never modified
// after construction; accessors hand out copies.
type Trajectory struct {
	times  []float64
	states []State
}

// NewTrajectory takes ownership of times and states, which must not be
// modified afterwards.
func NewTrajectory(times []float64, states []State) (*Trajectory, error) {
	if len(times) != len(states) {
		return nil, fmt.Errorf("%w: %d times for %d states", ErrDimensionMismatch, len(times), len(states))
	}
	if len(states) == 0 {
		return nil, invalidf("trajectory has no points")
	}
	m := len(states[0])
	for i, s := range states {
		if len(s) != m {
			return nil, fmt.Errorf("%w: state %d has length %d, want %d", ErrDimensionMismatch, i, len(s), m)
		}
	}
	return &Trajectory{times: times, states: states}, nil
}

func (tr *Trajectory) Len() int { return len(tr.times) }

// Dim is the state vector length.
func (tr *Trajectory) Dim() int { return len(tr.states[0]) }

func (tr *Trajectory) Time(i int) float64 { return tr.times[i] }

func (tr *Trajectory) State(i int) State { return tr.states[i].Clone() }

// At returns the i-th component of the state at grid point step without
// copying the state.
func (tr *Trajectory) At(step, i int) float64 { return tr.states[step][i] }

func (tr *Trajectory) Final() (float64, State) {
	last := len(tr.times) - 1
	return tr.times[last], tr.states[last].Clone()
}

func (tr *Trajectory) Times() []float64 {
	c := make([]float64, len(tr.times))
	copy(c, tr.times)
	return c
}

func (tr *Trajectory) States() []State {
	c := make([]State, len(tr.states))
	for i, s := range tr.states {
		c[i] = s.Clone()
	}
	return c
}

// Component returns the time series of state index i.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.states))
	for j, s := range tr.states {
		out[j] = s[i]
	}
	return out
}
