// Package dynamo provides the core types shared by the integrators, the
// step-by-step driver and the physical models.
//
// The package defines the primitives for fixed-step numerical integration of
// ordinary differential equations (ODEs):
//
//   - [State]: value plus derivatives at one time point
//   - [Params]: extra arguments forwarded unchanged to a derivative callback
//   - [Func], [ParamFunc], [HighestFunc]: derivative callback shapes
//   - [Schedule]: the (t_min, t_max, step) grid of one run
//   - [Trajectory]: the immutable output of one run
//   - [Stepper]: advances a state by one grid step
//
// # Example
//
//	decay := func(t float64, y dynamo.State) (dynamo.State, error) {
//	    return dynamo.State{-2.5 * y[0]}, nil
//	}
//	sched := dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.01}
//	traj, err := integrators.IntegrateRK4(decay, sched, dynamo.State{1000})
//
// # Thread Safety
//
// A Trajectory is safe for concurrent reads once returned. Steppers keep
// scratch buffers and are NOT safe for concurrent use; use [Ensemble] to run
// independent integrations in parallel.
package dynamo
