package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/physics"
	"github.com/san-kum/odelab/internal/sim"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// resolveConfig layers defaults, preset, config file and flags, in that
// order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Model = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("init") {
		cfg.Init = initState
	}
	if noStop {
		cfg.Stop = false
	}
	for k, v := range params {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", k, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[k] = f
	}

	if flags.Changed("t0") || flags.Changed("t1") || flags.Changed("step") {
		m, err := physics.Lookup(cfg.Model, cfg.Params)
		if err != nil {
			return nil, err
		}
		sched := cfg.Schedule(m.Schedule)
		if flags.Changed("t0") {
			sched.TMin = tMin
		}
		if flags.Changed("t1") {
			sched.TMax = tMax
		}
		if flags.Changed("step") {
			sched.Step = step
		}
		cfg.TMin, cfg.TMax, cfg.Step = sched.TMin, sched.TMax, sched.Step
	}
	return cfg, nil
}

func defaultMetrics(m *physics.Model) []dynamo.Metric {
	ms := []dynamo.Metric{metrics.NewStability(1e15)}
	for i, label := range m.Labels {
		ms = append(ms, metrics.NewExtremes(i, label), metrics.NewFinal(i, label))
	}
	if m.Energy != nil {
		ms = append(ms, metrics.NewMeanEnergy(m.Energy), metrics.NewEnergyDrift(m.Energy))
	}
	return ms
}

func driveRun(ctx context.Context, run *config.Run) (*sim.Result, dynamo.Stepper, error) {
	st, err := run.Model.Stepper(run.Scheme)
	if err != nil {
		return nil, nil, err
	}
	driver := sim.New(st)
	for _, m := range defaultMetrics(run.Model) {
		driver.AddMetric(m)
	}
	res, err := driver.Run(ctx, run.Init, run.Schedule, run.Model.Stop)
	return res, st, err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	run, err := cfg.Build()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	title("running %s (%s)", run.Model.Name, run.Scheme)
	start := time.Now()
	res, st, err := driveRun(ctx, run)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	field("completed in", "%v", elapsed)
	field("integrator", "%s", st.Name())
	field("steps", "%d of %d", res.StepsTaken, run.Schedule.StepCount())
	tf, yf := res.Trajectory.Final()
	if res.Stopped {
		field("stopped at", "t=%.6g", tf)
	}
	for i, label := range run.Model.Labels {
		field("  "+label, "%.6g", yf[i])
	}
	printMetrics(res.Metrics)

	if noSave {
		return nil
	}
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Model:   run.Model.Name,
		Scheme:  st.Name(),
		TMin:    run.Schedule.TMin,
		TMax:    run.Schedule.TMax,
		Step:    run.Schedule.Step,
		Stopped: res.Stopped,
		Labels:  run.Model.Labels,
		Params:  run.Model.Params,
		Metrics: res.Metrics,
	}, res.Trajectory)
	if err != nil {
		return err
	}
	fmt.Println()
	field("run id", "%s", goodStyle.Render(runID))
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	names := args[1:]
	if len(names) == 0 {
		for _, s := range dynamo.Schemes() {
			names = append(names, s.String())
		}
	}

	runs := make([]*config.Run, len(names))
	for i, name := range names {
		c := cfg.Clone()
		c.Scheme = name
		if runs[i], err = c.Build(); err != nil {
			return err
		}
	}
	if component < 0 || component >= len(runs[0].Init) {
		return fmt.Errorf("component %d out of range for %s", component, cfg.Model)
	}

	results := make([]*sim.Result, len(runs))
	elapsed := make([]time.Duration, len(runs))
	g, ctx := errgroup.WithContext(context.Background())
	for i, run := range runs {
		g.Go(func() error {
			start := time.Now()
			res, _, err := driveRun(ctx, run)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			results[i] = res
			elapsed[i] = time.Since(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	ref := len(results) - 1
	_, yRef := results[ref].Trajectory.Final()
	label := runs[0].Model.Labels[component]

	title("comparing schemes on %s", cfg.Model)
	note("difference is measured against %s", names[ref])
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCHEME\tSTEPS\tTIME\tFINAL %s\tDIFF\n", label)
	series := make([][]float64, len(results))
	for i, res := range results {
		_, yf := res.Trajectory.Final()
		diff := math.NaN()
		if len(yf) == len(yRef) {
			diff = floats.Distance(yf, yRef, 2)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.6g\t%.3g\n", names[i], res.StepsTaken, elapsed[i], yf[component], diff)
		series[i] = res.Trajectory.Component(component)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs time, %v", label, names)),
	)
	fmt.Println(graphStyle.Render(graph))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	run, err := cfg.Build()
	if err != nil {
		return err
	}
	if members < 2 {
		return fmt.Errorf("need at least 2 members, got %d", members)
	}

	inits := make([]dynamo.State, members)
	for i := range inits {
		y := run.Init.Clone()
		y[0] += spread * float64(i)
		inits[i] = y
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ens := dynamo.NewEnsemble(func(y0 dynamo.State) (*dynamo.Trajectory, error) {
		st, err := run.Model.Stepper(run.Scheme)
		if err != nil {
			return nil, err
		}
		res, err := sim.New(st).Run(ctx, y0, run.Schedule, run.Model.Stop)
		if err != nil {
			return nil, err
		}
		return res.Trajectory, nil
	}, workers)

	start := time.Now()
	trs, err := ens.Run(ctx, inits)
	if err != nil {
		return err
	}

	title("ensemble of %d %s runs (%s), perturbation %.3g", members, cfg.Model, run.Scheme, spread)
	field("completed in", "%v", time.Since(start))

	finals := make([]dynamo.State, len(trs))
	for i, tr := range trs {
		_, finals[i] = tr.Final()
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tMEAN\tSTDDEV\tMIN\tMAX")
	column := make([]float64, len(finals))
	for j, label := range run.Model.Labels {
		for i, y := range finals {
			column[i] = y[j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\n", label, mean, std, floats.Min(column), floats.Max(column))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	far := 0.0
	for _, y := range finals[1:] {
		far = math.Max(far, floats.Distance(y, finals[0], 2))
	}
	fmt.Println()
	field("max separation", "%.3g", far)
	if far > 1e3*spread*float64(members) {
		warn("nearby initial states diverged: sensitive dependence on initial conditions")
	}
	return nil
}

func throwPitches(cmd *cobra.Command, args []string) error {
	types := physics.PitchTypes()
	if len(args) > 0 {
		types = nil
		for _, a := range args {
			t, err := physics.ParsePitchType(a)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}

	title("pitches from the mound to home plate (%.2f m)", physics.HomePlate)
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PITCH\tTIME\tHORIZONTAL\tHEIGHT")
	for _, t := range types {
		run, err := config.GetPreset("pitch", t.String()).Build()
		if err != nil {
			return err
		}
		res, _, err := driveRun(context.Background(), run)
		if err != nil {
			return err
		}
		if !res.Stopped {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", t)
			continue
		}
		tp, yp := atPlate(res.Trajectory)
		fmt.Fprintf(w, "%s\t%.3fs\t%+.3fm\t%.3fm\n", t, tp, yp[1], yp[2])
	}
	return w.Flush()
}

// atPlate interpolates the last two points of a stopped pitch to the plate.
func atPlate(tr *dynamo.Trajectory) (float64, dynamo.State) {
	i := tr.Len() - 1
	if i == 0 {
		return tr.Final()
	}
	a, b := tr.State(i-1), tr.State(i)
	frac := (physics.HomePlate - a[0]) / (b[0] - a[0])
	t := tr.Time(i-1) + frac*(tr.Time(i)-tr.Time(i-1))
	return t, a.Add(b.Sub(a).Scale(frac))
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSCHEME\tRANGE\tSTEP\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Scheme,
			run.TMin, run.TMax,
			run.Step,
			run.Steps,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *dynamo.Trajectory, error) {
	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := store.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

func labelOf(meta *storage.RunMetadata, i int) string {
	if i < len(meta.Labels) {
		return meta.Labels[i]
	}
	return fmt.Sprintf("x%d", i)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	field("run", "%s", meta.ID)
	field("model", "%s", meta.Model)
	field("samples", "%d", tr.Len())
	fmt.Println()

	numVars := min(tr.Dim(), 6)
	for i := 0; i < numVars; i++ {
		graph := asciigraph.Plot(tr.Component(i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(labelOf(meta, i)+" vs time"),
		)
		fmt.Println(graphStyle.Render(graph))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.PhasePortrait(tr, xAxis, yAxis)
	if err != nil {
		return err
	}

	title("phase space plot: %s", meta.ID)
	field("model", "%s", meta.Model)
	field("axes", "%s vs %s", labelOf(meta, yAxis), labelOf(meta, xAxis))
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if component < 0 || component >= tr.Dim() {
		return fmt.Errorf("component %d out of range for %d-dimensional run", component, tr.Dim())
	}
	if !(meta.Step > 0) {
		return fmt.Errorf("run %s has no step size recorded", meta.ID)
	}

	data := tr.Component(component)
	freq, err := analysis.DominantFrequency(data, 1/meta.Step)
	if err != nil {
		return err
	}

	title("frequency analysis: %s", meta.ID)
	field("model", "%s", meta.Model)

	ps := analysis.PowerSpectrum(data)
	if n := len(ps)/4 + 1; n > 2 {
		graph := asciigraph.Plot(ps[1:n],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", labelOf(meta, component))),
		)
		fmt.Println(graphStyle.Render(graph))
	}

	field("dominant frequency", "%.4g", freq)
	if freq > 0 {
		field("period", "%.4g", 1/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tr)
}
