package dynamo

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunFunc integrates one initial condition.
type RunFunc func(y0 State) (*Trajectory, error)

// Ensemble runs independent integrations, one per initial condition, in
// parallel. Stages inside a single run are never split across goroutines.
type Ensemble struct {
	run     RunFunc
	workers int
}

// NewEnsemble returns an ensemble with at most workers concurrent runs;
// workers <= 0 means GOMAXPROCS.
func NewEnsemble(run RunFunc, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{run: run, workers: workers}
}

// Run returns one trajectory per initial condition, in input order. It is
// all-or-nothing: the first failure cancels runs that have not started and
// no trajectories are returned. Cancellation of ctx wraps ErrContextCanceled.
func (e *Ensemble) Run(ctx context.Context, inits []State) ([]*Trajectory, error) {
	if e.run == nil {
		return nil, invalidf("ensemble has no run function")
	}

	results := make([]*Trajectory, len(inits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, y0 := range inits {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrContextCanceled, err)
			}
			tr, err := e.run(y0)
			if err != nil {
				return err
			}
			results[i] = tr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
