package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/odelab/internal/optim"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// parseGrid reads lo:hi:n into n evenly spaced values.
func parseGrid(text string) ([]float64, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("grid %q: want lo:hi:n", text)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", text, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", text, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", text, err)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	if n < 1 {
		return nil, fmt.Errorf("grid %q: need at least one point", text)
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	if len(vary) == 0 {
		return fmt.Errorf("nothing to sweep: pass --vary name=lo:hi:n")
	}
	if metric == "" {
		return fmt.Errorf("--metric is required")
	}

	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(vary))
	for name := range vary {
		names = append(names, name)
	}
	sort.Strings(names)
	ranges := make([][]float64, len(names))
	for i, name := range names {
		if ranges[i], err = parseGrid(vary[name]); err != nil {
			return err
		}
	}

	g := optim.NewGridSearch(names, ranges)
	if maximize {
		g.Maximize()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	best, failed, err := g.Search(ctx, func(ctx context.Context, p map[string]float64) (map[string]float64, error) {
		cfg := base.Clone()
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(p))
		}
		for k, v := range p {
			cfg.Params[k] = v
		}
		run, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		res, _, err := driveRun(ctx, run)
		if err != nil {
			return nil, err
		}
		return res.Metrics, nil
	}, metric)
	if err != nil {
		return err
	}

	goal := "minimum"
	if maximize {
		goal = "maximum"
	}
	title("%s of %s over %d %s runs", goal, metric, g.Size(), base.Model)
	for _, name := range names {
		field("  "+name, "%.6g", best.Params[name])
	}
	field(metric, "%s", goodStyle.Render(strconv.FormatFloat(best.Value, 'g', 6, 64)))
	if failed > 0 {
		warn("%d grid points failed and were skipped", failed)
	}
	return nil
}
