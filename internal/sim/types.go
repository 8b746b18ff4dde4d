package sim

import "github.com/san-kum/odelab/internal/dynamo"

// StopFunc ends a run early once it returns true for a recorded point.
type StopFunc func(t float64, y dynamo.State) bool

// Result of a driven run. Trajectory holds every recorded point, including
// the one that triggered a stop.
type Result struct {
	Trajectory *dynamo.Trajectory
	Metrics    map[string]float64
	StepsTaken int
	Stopped    bool
}

// Below returns a StopFunc that fires when y[i] drops under level, the
// usual ground-contact test for projectile models.
func Below(i int, level float64) StopFunc {
	return func(_ float64, y dynamo.State) bool {
		return i < len(y) && y[i] < level
	}
}

// Above fires when y[i] reaches level.
func Above(i int, level float64) StopFunc {
	return func(_ float64, y dynamo.State) bool {
		return i < len(y) && y[i] >= level
	}
}
