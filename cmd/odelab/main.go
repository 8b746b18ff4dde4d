package main

import (
	"fmt"
	"os"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/physics"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// run and compare
	scheme     string
	tMin       float64
	tMax       float64
	step       float64
	initState  []float64
	params     map[string]string
	configFile string
	preset     string
	noStop     bool
	noSave     bool
	// ensemble
	members int
	spread  float64
	workers int
	// sweep
	vary     map[string]string
	metric   string
	maximize bool
	// plot, phase and analyze
	xAxis     int
	yAxis     int
	component int
	// logistic and sine maps
	rMin    float64
	rMax    float64
	rPoints int
	iters   int
	keep    int
	x0      float64
	mapName string
	// poincare
	drive     float64
	periods   int
	transient int
	perPeriod int
	// aic
	skipRows int
	xCol     int
	yCol     int
	trials   int
	seed     uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "odelab",
		Short:         "fixed-step ODE integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print results without storing the run")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [scheme...]",
		Short: "integrate one model with several schemes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSchemes,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().IntVar(&component, "component", 0, "state index to plot")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "integrate perturbed initial states in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&members, "members", 16, "number of perturbed runs")
	ensembleCmd.Flags().Float64Var(&spread, "spread", 1e-6, "initial perturbation size")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid search model parameters for the best metric value",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParams,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringToStringVar(&vary, "vary", nil, "parameter grids, name=lo:hi:n")
	sweepCmd.Flags().StringVar(&metric, "metric", "", "metric to optimize, e.g. final_x")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")

	pitchCmd := &cobra.Command{
		Use:   "pitch [type...]",
		Short: "throw baseball pitches and report their break at the plate",
		RunE:  throwPitches,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state index to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	aicCmd := &cobra.Command{
		Use:   "aic [data_file]",
		Short: "compare linear and quadratic fits with the Akaike criterion",
		Args:  cobra.ExactArgs(1),
		RunE:  akaikeFit,
	}
	aicCmd.Flags().IntVar(&skipRows, "skip", 0, "header rows to skip")
	aicCmd.Flags().IntVar(&xCol, "x-col", 0, "column holding x")
	aicCmd.Flags().IntVar(&yCol, "y-col", 1, "column holding y")
	aicCmd.Flags().IntVar(&trials, "trials", 0, "monte carlo trials for the slope uncertainty")
	aicCmd.Flags().Uint64Var(&seed, "seed", 1, "monte carlo seed")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [model|logistic]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  lyapunov,
	}
	addRunFlags(lyapunovCmd)
	addMapFlags(lyapunovCmd)

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "bifurcation diagram of the logistic or sine map",
		RunE:  bifurcation,
	}
	addMapFlags(bifurcationCmd)
	bifurcationCmd.Flags().StringVar(&mapName, "map", "logistic", "logistic or sine")
	bifurcationCmd.Flags().IntVar(&keep, "keep", 64, "iterates kept per parameter")

	poincareCmd := &cobra.Command{
		Use:   "poincare",
		Short: "Poincare section of the driven pendulum",
		RunE:  poincare,
	}
	poincareCmd.Flags().Float64Var(&drive, "drive", 1.78, "drive amplitude")
	poincareCmd.Flags().IntVar(&periods, "periods", 2000, "drive periods integrated")
	poincareCmd.Flags().IntVar(&transient, "transient", 100, "periods discarded before sampling")
	poincareCmd.Flags().IntVar(&perPeriod, "steps", 100, "steps per drive period")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range physics.Names() {
				names, err := physics.ParamNames(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s\n", titleStyle.Render(fmt.Sprintf("%-16s", name)), physics.Describe(name))
				if len(names) > 0 {
					note("  params: %v", names)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, ensembleCmd, sweepCmd, pitchCmd, listCmd, plotCmd, phaseCmd,
		analyzeCmd, exportCmd, aicCmd, lyapunovCmd, bifurcationCmd, poincareCmd, presetsCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "euler, heun or rk4")
	cmd.Flags().Float64Var(&tMin, "t0", 0, "start time")
	cmd.Flags().Float64Var(&tMax, "t1", 0, "end time")
	cmd.Flags().Float64Var(&step, "step", 0, "step size (0 keeps the model default grid)")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state")
	cmd.Flags().StringToStringVar(&params, "set", nil, "model parameter overrides, name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&noStop, "no-stop", false, "ignore the model's stop condition")
}

func addMapFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rMin, "r-min", 0.7, "lowest map parameter")
	cmd.Flags().Float64Var(&rMax, "r-max", 1.0, "highest map parameter")
	cmd.Flags().IntVar(&rPoints, "points", 200, "parameter samples")
	cmd.Flags().IntVar(&iters, "iters", 1000, "map iterations per parameter")
	cmd.Flags().Float64Var(&x0, "x0", 0.5, "initial map value")
}
