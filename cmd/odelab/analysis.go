package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/physics"
	"github.com/san-kum/odelab/internal/stats"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

func akaikeFit(cmd *cobra.Command, args []string) error {
	cols, err := stats.LoadColumns(args[0], skipRows, xCol, yCol)
	if err != nil {
		return err
	}
	x, y := cols[0], cols[1]
	n := len(x)

	linear, err := stats.PolyFit(x, y, 1)
	if err != nil {
		return err
	}
	quadratic, err := stats.PolyFit(x, y, 2)
	if err != nil {
		return err
	}
	aicLinear, err := stats.Akaike(n, 2, x, y, linear)
	if err != nil {
		return err
	}
	aicQuadratic, err := stats.Akaike(n, 3, x, y, quadratic)
	if err != nil {
		return err
	}

	title("model selection for %s (%d points)", args[0], n)
	field("linear", "y = %.6g + %.6g x", linear[0], linear[1])
	field("  AIC", "%.4f", aicLinear)
	field("quadratic", "y = %.6g + %.6g x + %.6g x^2", quadratic[0], quadratic[1], quadratic[2])
	field("  AIC", "%.4f", aicQuadratic)

	best := "linear"
	if aicQuadratic < aicLinear {
		best = "quadratic"
	}
	field("preferred", "%s", goodStyle.Render(best))
	note("delta AIC %.3f", math.Abs(aicLinear-aicQuadratic))

	line, err := stats.LeastSquares(x, y)
	if err != nil {
		return err
	}
	fmt.Println()
	title("straight line fit")
	field("intercept", "%.6g ± %.3g", line.A, line.SigmaA)
	field("slope", "%.6g ± %.3g", line.B, line.SigmaB)

	if trials > 0 {
		mc, err := stats.MonteCarloLine(x, y, trials, seed)
		if err != nil {
			return err
		}
		note("monte carlo over %d trials", trials)
		field("intercept", "%.6g ± %.3g", mc.A, mc.SigmaA)
		field("slope", "%.6g ± %.3g", mc.B, mc.SigmaB)
	}
	return nil
}

func mapParams() ([]float64, error) {
	if rPoints < 2 || !(rMax > rMin) {
		return nil, fmt.Errorf("need r-max > r-min and at least 2 points")
	}
	return floats.Span(make([]float64, rPoints), rMin, rMax), nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	if args[0] == "logistic" {
		return logisticLyapunov()
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	run, err := cfg.Build()
	if err != nil {
		return err
	}
	st, err := run.Model.Stepper(run.Scheme)
	if err != nil {
		return err
	}

	duration := run.Schedule.TMax - run.Schedule.TMin
	lambda, err := analysis.LyapunovExponent(st, run.Init, run.Schedule.Step, duration, 1e-8)
	if err != nil {
		return err
	}

	title("largest Lyapunov exponent: %s (%s)", run.Model.Name, run.Scheme)
	field("lambda", "%.5f", lambda)
	if lambda > 0 {
		warn("positive: chaotic")
	} else {
		note("not positive: regular or decaying motion")
	}
	return nil
}

func logisticLyapunov() error {
	rs, err := mapParams()
	if err != nil {
		return err
	}
	ls, err := analysis.LyapunovSweep(rs, x0, iters, iters/10)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(ls,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("logistic map Lyapunov exponent, r in [%g, %g]", rMin, rMax)),
	)
	fmt.Println(graphStyle.Render(graph))

	chaotic := 0
	for _, l := range ls {
		if l > 0 {
			chaotic++
		}
	}
	field("chaotic r values", "%d of %d", chaotic, len(ls))
	field("largest exponent", "%.4f at r=%.4f", floats.Max(ls), rs[floats.MaxIdx(ls)])
	return nil
}

func bifurcation(cmd *cobra.Command, args []string) error {
	var m analysis.Map
	switch mapName {
	case "logistic":
		m = analysis.LogisticMap
	case "sine":
		m = analysis.SineMap
	default:
		return fmt.Errorf("unknown map %q (want logistic or sine)", mapName)
	}

	rs, err := mapParams()
	if err != nil {
		return err
	}
	data, err := analysis.Bifurcation(m, rs, x0, iters, keep)
	if err != nil {
		return err
	}

	title("%s map bifurcation diagram, r in [%g, %g]", mapName, rMin, rMax)
	fmt.Println(analysis.BifurcationToASCII(data, 80, 24))
	return nil
}

func poincare(cmd *cobra.Command, args []string) error {
	m, err := physics.Lookup("driven-pendulum", map[string]float64{"drive": drive})
	if err != nil {
		return err
	}
	st, err := m.Stepper(dynamo.SchemeRK4)
	if err != nil {
		return err
	}

	section, err := analysis.PoincareSection(st, m.Init, analysis.PoincareConfig{
		Omega:          m.Params["freq"],
		StepsPerPeriod: perPeriod,
		Periods:        periods,
		Transient:      transient,
		WrapIndex:      0,
		XIndex:         0,
		YIndex:         1,
	})
	if err != nil {
		return err
	}

	title("Poincare section of the driven pendulum, drive %g", drive)
	field("points", "%d", len(section.Points))
	fmt.Println(analysis.PhasePortraitToASCII(section, 70, 20))
	return nil
}
