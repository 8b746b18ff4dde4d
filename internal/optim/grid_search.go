// Package optim searches model parameter grids for the combination that
// minimizes or maximizes a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

var ErrNoSample = errors.New("optim: no grid point could be evaluated")

// Evaluate runs one parameter combination and returns its metrics.
type Evaluate func(ctx context.Context, params map[string]float64) (map[string]float64, error)

type Sample struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize flips the search to the largest metric value.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point. Points whose evaluation fails or whose
// metric is missing or non-finite are skipped; failed counts them.
func (g *GridSearch) Search(ctx context.Context, eval Evaluate, metricName string) (best Sample, failed int, err error) {
	if eval == nil || len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return Sample{}, 0, fmt.Errorf("%w: grid needs an evaluator and one range per parameter", dynamo.ErrInvalidArgument)
	}

	s := &search{
		eval:   eval,
		metric: metricName,
		better: func(a, b float64) bool { return a < b },
		best:   Sample{Value: math.Inf(1)},
	}
	if g.maximize {
		s.better = func(a, b float64) bool { return a > b }
		s.best.Value = math.Inf(-1)
	}

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), s); err != nil {
		return Sample{}, s.failed, err
	}
	if s.best.Params == nil {
		return Sample{}, s.failed, ErrNoSample
	}
	return s.best, s.failed, nil
}

type search struct {
	eval   Evaluate
	metric string
	better func(a, b float64) bool
	best   Sample
	failed int
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, s *search) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
	}

	if depth == len(g.paramNames) {
		metrics, err := s.eval(ctx, current)
		if err != nil {
			s.failed++
			return nil
		}

		val, ok := metrics[s.metric]
		if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
			s.failed++
			return nil
		}
		if s.better(val, s.best.Value) || s.best.Params == nil {
			s.best.Value = val
			s.best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				s.best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, s); err != nil {
			return err
		}
	}
	return nil
}
