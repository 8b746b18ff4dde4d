// Package sim drives a dynamo.Stepper across a schedule one grid point at a
// time, feeding metrics and observers and honoring cancellation and early
// stop conditions.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/odelab/internal/dynamo"
)

type Driver struct {
	stepper   dynamo.Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(stepper dynamo.Stepper) *Driver {
	return &Driver{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (d *Driver) AddMetric(m dynamo.Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o dynamo.Observer) { d.observers = append(d.observers, o) }

// Run integrates y0 over sched. When stop is non-nil the run ends after the
// first recorded point for which it returns true. Step failures discard the
// partial trajectory, the same as integrators.Integrate.
func (d *Driver) Run(ctx context.Context, y0 dynamo.State, sched dynamo.Schedule, stop StopFunc) (*Result, error) {
	if err := d.validate(y0, sched); err != nil {
		return nil, err
	}

	n := sched.StepCount()
	times := make([]float64, 1, n+1)
	states := make([]dynamo.State, 1, n+1)
	times[0] = sched.TMin
	states[0] = y0.Clone()

	for _, m := range d.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	y := states[0]
	d.observe(y, sched.TMin)

	if stop == nil || !stop(sched.TMin, y) {
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
			default:
			}

			t := sched.Time(i)
			next, err := d.stepper.Step(t, sched.Step, y)
			if err != nil {
				return nil, &dynamo.StepError{Step: i, Time: t, State: y.Clone(), Err: err}
			}
			y = next
			t = sched.Time(i + 1)
			times = append(times, t)
			states = append(states, y)
			result.StepsTaken++
			d.observe(y, t)

			if stop != nil && stop(t, y) {
				result.Stopped = true
				break
			}
		}
	} else {
		result.Stopped = true
	}

	tr, err := dynamo.NewTrajectory(times, states)
	if err != nil {
		return nil, err
	}
	result.Trajectory = tr

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback streams every grid point to cb without storing a
// trajectory. Returning false from cb ends the run without error.
func (d *Driver) RunWithCallback(ctx context.Context, y0 dynamo.State, sched dynamo.Schedule, cb func(t float64, y dynamo.State) bool) error {
	if err := d.validate(y0, sched); err != nil {
		return err
	}
	if cb == nil {
		return fmt.Errorf("%w: nil callback", dynamo.ErrInvalidArgument)
	}

	y := y0.Clone()
	n := sched.StepCount()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		t := sched.Time(i)
		if !cb(t, y) {
			return nil
		}

		next, err := d.stepper.Step(t, sched.Step, y)
		if err != nil {
			return &dynamo.StepError{Step: i, Time: t, State: y.Clone(), Err: err}
		}
		y = next
	}

	cb(sched.Time(n), y)
	return nil
}

func (d *Driver) validate(y0 dynamo.State, sched dynamo.Schedule) error {
	if d.stepper == nil {
		return fmt.Errorf("%w: nil stepper", dynamo.ErrInvalidArgument)
	}
	if err := sched.Validate(); err != nil {
		return err
	}
	return dynamo.ValidateInitial(y0)
}

func (d *Driver) observe(y dynamo.State, t float64) {
	for _, m := range d.metrics {
		m.Observe(y, t)
	}
	for _, o := range d.observers {
		o.OnStep(y, t)
	}
}
