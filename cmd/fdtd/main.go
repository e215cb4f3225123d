package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/san-kum/fdtd/internal/analysis"
	"github.com/san-kum/fdtd/internal/automation"
	"github.com/san-kum/fdtd/internal/compute"
	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/experiment"
	"github.com/san-kum/fdtd/internal/export"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
	"github.com/san-kum/fdtd/internal/storage"
	"github.com/san-kum/fdtd/internal/tui"
	"github.com/san-kum/fdtd/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	nx      int
	ny      int
	nz      int
	courant float64
	decay   float64
	steps   int
	workers int
	pec     bool
	// Source
	sourceKind string
	sourcePol  string
	amplitude  float64
	delay      float64
	width      float64
	maxField   float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Live output
	watch     bool
	frameRate int
	asJSON    bool
	verbose   bool
	// Analysis
	probeName string
	peaks     int
	// Benchmark
	benchSteps int
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int
	trials     int
	perturb    float64
	seed       int64
	// SVG output
	outFile   string
	svgFile   string
	sliceZ    int
	quantity  string
	threshold float64
)

// main registers the fdtd commands and runs the live view when no subcommand
// is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fdtd",
		Short: "packed-lane FDTD field solver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunLive(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fdtd", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine events to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addGridFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the field while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 15, "frame rate for --watch")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of a summary")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and probe series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the update kernels",
		RunE:  benchKernels,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 50, "steps per measurement")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "resonance analysis of a probe",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&probeName, "probe", "", "probe column (default: first probe)")
	analyzeCmd.Flags().IntVar(&peaks, "peaks", 5, "number of resonances to list")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addGridFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tCOURANT\tDECAY\tSTEPS\tSOURCE")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%.4f\t%d\t%s\n",
					name,
					cfg.Grid,
					cfg.Courant,
					cfg.Decay,
					cfg.Steps,
					cfg.Source.Kind,
				)
			}
			return w.Flush()
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "show host vector support",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := compute.Detect()
			fmt.Printf("arch:    %s\n", f.Architecture)
			fmt.Printf("vector:  %s\n", f.Level())
			fmt.Printf("cpus:    %d\n", runtime.NumCPU())
			fmt.Printf("metrics: %v\n", experiment.NewRegistry().ListMetrics())
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report stability",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addGridFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "courant", "parameter (courant, decay, amplitude, width, delay, max_field)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.6, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 6, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run trials with random source placements",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addGridFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.5, "relative amplitude perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario and save every run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run simulation and write the final field plane as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addGridFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "field.svg", "output file")
	snapshotCmd.Flags().IntVar(&sliceZ, "z", -1, "z plane (default: source plane)")
	snapshotCmd.Flags().StringVar(&quantity, "quantity", "voltage", "voltage or current")
	snapshotCmd.Flags().Float64Var(&threshold, "wavefront", 0, "draw cells above this magnitude as dots instead")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a probe trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&probeName, "probe", "", "probe column (default: first probe)")
	exportSVGCmd.Flags().StringVarP(&svgFile, "out", "o", "", "output file (default: <run_id>.svg)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportSVGCmd, benchCmd, analyzeCmd, liveCmd, presetsCmd, infoCmd, sweepCmd, monteCarloCmd, scenarioCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nx, "nx", config.DefaultSize, "grid cells along x")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultSize, "grid cells along y")
	cmd.Flags().IntVar(&nz, "nz", config.DefaultSize, "grid cells along z")
	cmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number (< 0.577)")
	cmd.Flags().Float64Var(&decay, "decay", config.DefaultDecay, "per-step field decay in (0, 1]")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel x slabs (0: serial)")
	cmd.Flags().BoolVar(&pec, "pec", true, "close all six faces with PEC")
	cmd.Flags().StringVar(&sourceKind, "source", "gaussian", "source kind (gaussian, sine, impulse, none)")
	cmd.Flags().StringVar(&sourcePol, "pol", "z", "source polarization")
	cmd.Flags().Float64Var(&amplitude, "amp", config.DefaultAmplitude, "source amplitude")
	cmd.Flags().Float64Var(&delay, "delay", config.DefaultDelay, "pulse delay in steps (impulse: firing step)")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "pulse width in steps (sine: period)")
	cmd.Flags().Float64Var(&maxField, "max-field", 0, "stop when |field| exceeds this (0: off)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the run configuration: defaults, then a preset, then a
// config file, then any flag set on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	resized := false
	if flags.Changed("nx") {
		cfg.Grid.NX, resized = nx, true
	}
	if flags.Changed("ny") {
		cfg.Grid.NY, resized = ny, true
	}
	if flags.Changed("nz") {
		cfg.Grid.NZ, resized = nz, true
	}
	if resized {
		cfg.Center()
	}
	if flags.Changed("courant") {
		cfg.Courant = courant
	}
	if flags.Changed("decay") {
		cfg.Decay = decay
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("pec") {
		cfg.PEC = pec
	}
	if flags.Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if flags.Changed("pol") {
		cfg.Source.Polarization = sourcePol
	}
	if flags.Changed("amp") {
		cfg.Source.Amplitude = amplitude
	}
	if flags.Changed("delay") {
		cfg.Source.Delay = delay
	}
	if flags.Changed("width") {
		cfg.Source.Width = width
	}
	if flags.Changed("max-field") {
		cfg.MaxField = maxField
	}

	return cfg, cfg.Validate()
}

func logger() *log.Logger {
	if !verbose {
		return nil
	}
	return log.New(os.Stderr, "fdtd: ", log.Ltime|log.Lmicroseconds)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if l := logger(); l != nil {
		exp.SetLogger(l)
	}
	if err := exp.Setup(registry.DefaultMetrics(cfg)); err != nil {
		return err
	}
	defer exp.Close()

	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(cfg.Name, frameRate, cfg.Steps, os.Stdout)
		if src := cfg.Source; src.Kind != "none" {
			if pol, err := fdtd.ParsePolarization(src.Polarization); err == nil {
				renderer.Watch(sim.Voltage, pol)
			}
		}
		exp.Simulator().AddObserver(renderer)
		renderer.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !asJSON && !watch {
		fmt.Printf("running %s on %s grid...\n", cfg.Name, cfg.Grid)
	}
	start := time.Now()
	result, runErr := exp.Run(ctx)
	elapsed := time.Since(start)

	if renderer != nil {
		renderer.Stop()
	}
	if result == nil {
		return runErr
	}

	runID, err := st.Save(cfg, result, runErr)
	if err != nil {
		return err
	}

	if asJSON {
		if err := storage.ExportJSONStdout(cfg, result); err != nil {
			return err
		}
	} else {
		fmt.Println(viz.Summary(cfg, result, elapsed, runErr))
		fmt.Printf("run id: %s\n", runID)
	}

	// Interrupted runs are saved like complete ones; diverged runs still fail.
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tCOURANT\tSTEPS\tSOURCE\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = run.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3f\t%d/%d\t%s\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Grid,
			run.Courant,
			run.StepsTaken,
			run.Steps,
			run.Source,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadProbes(runID)
	if err != nil {
		return err
	}

	if len(series.Steps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %s\n", meta.Grid)
	fmt.Printf("samples: %d\n\n", len(series.Steps))

	const maxPlots = 6
	columns := series.Columns
	if len(columns) > maxPlots {
		columns = columns[:maxPlots]
	}

	for _, name := range columns {
		fmt.Println(viz.Plot(series.Values[name], name+" vs step", 80, 10))
		fmt.Println()
	}

	if len(series.Columns) > 2 {
		probes := make([][]float64, 0, len(series.Columns)-1)
		for _, name := range series.Columns[1:] {
			probes = append(probes, series.Values[name])
		}
		fmt.Println(viz.PlotMany(probes, "all probes", 80, 12))
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.EncodeJSON(os.Stdout, meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadProbes(args[0])
	if err != nil {
		return err
	}
	return storage.EncodeJSON(os.Stdout, struct {
		Metadata *storage.RunMetadata `json:"metadata"`
		Steps    []int                `json:"steps"`
		Values   map[string][]float64 `json:"values"`
	}{meta, series.Steps, series.Values})
}

func benchKernels(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 64}
	pools := []int{0, runtime.NumCPU()}

	fmt.Printf("benchmarking %d steps, vector level %s\n\n", benchSteps, compute.Detect().Level())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tWORKERS\tTIME\tSTEPS/SEC\tMCELLS/SEC")

	for _, n := range sizes {
		for _, nw := range pools {
			cfg := config.DefaultConfig()
			cfg.Grid = fdtd.Grid{NX: n, NY: n, NZ: n}
			cfg.Center()
			cfg.Steps = benchSteps
			cfg.Workers = nw

			exp := experiment.New(cfg)
			if err := exp.Setup(nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			elapsed := time.Since(start)
			exp.Close()
			if err != nil {
				return err
			}

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			mcells := stepsPerSec * float64(cfg.Grid.Cells()) / 1e6

			fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.1f\n",
				cfg.Grid, max(nw, 1), elapsed, stepsPerSec, mcells)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadProbes(runID)
	if err != nil {
		return err
	}

	column, data, err := probeColumn(runID, series)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("resonance analysis: %s\n", meta.ID)
	fmt.Printf("probe: %s\n\n", column)

	power, freqs := analysis.Spectrum(data, 4*len(data))

	fmt.Println(viz.Plot(power[:max(len(power)/2, 1)], "power spectrum ("+column+")", 80, 15))
	fmt.Println()

	found := analysis.Resonances(power, freqs, peaks)
	if len(found) == 0 {
		fmt.Println("no resonances found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BIN\tCYCLES/STEP\tPERIOD\tWAVELENGTH\tPOWER")
	for _, p := range found {
		fmt.Fprintf(w, "%d\t%.5f\t%.1f steps\t%.2f cells\t%.4g\n",
			p.Bin, p.Frequency, 1/p.Frequency, p.Wavelength(meta.Courant), p.Power)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return tui.RunLive(cfg)
}

// probeColumn picks --probe from series, or the first probe when unset.
func probeColumn(runID string, series *storage.Series) (string, []float64, error) {
	column := probeName
	if column == "" {
		if len(series.Columns) < 2 {
			return "", nil, fmt.Errorf("run %s has no probes", runID)
		}
		column = series.Columns[1]
	}
	data, ok := series.Values[column]
	if !ok {
		return "", nil, fmt.Errorf("unknown probe %q (available: %v)", column, series.Columns)
	}
	return column, data, nil
}

func newRunner() *automation.Runner {
	r := automation.NewRunner()
	if l := logger(); l != nil {
		r.SetLogger(l)
	}
	return r
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepN,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s over [%g, %g] on %s grid\n\n", sweepParam, sweepMin, sweepMax, cfg.Grid)
	results, err := newRunner().RunSweep(ctx, sweep)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tSTEPS\tENERGY\tGROWTH\tSTATUS")
	for _, r := range results {
		status := "stable"
		switch {
		case r.Diverged:
			status = "diverged"
		case r.Err != nil:
			status = r.Err.Error()
		}
		fmt.Fprintf(w, "%.4f\t%d\t%.4g\t%.3f\t%s\n",
			r.Value, r.StepsTaken, r.FinalEnergy, r.EnergyGrowth, status)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := newRunner().RunMonteCarlo(ctx, mc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSOURCE\tAMP\tPEAK\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t(%d,%d,%d)\t%.3f\t%.4g\t%v\n",
			r.TrialID, r.Source.X, r.Source.Y, r.Source.Z, r.Source.Amplitude, r.PeakField, r.Stable)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return err
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s (%d runs)\n", scenario.Name, len(scenario.Runs))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	outcomes, runErr := newRunner().RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tNAME\tGRID\tSTEPS\tSTATUS")
	for _, o := range outcomes {
		runID, err := st.Save(o.Config, o.Result, o.Err)
		if err != nil {
			return err
		}
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			runID, o.Config.Name, o.Config.Grid, o.Result.StepsTaken, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	q, err := sim.ParseQuantity(quantity)
	if err != nil {
		return err
	}
	pol, err := fdtd.ParsePolarization(cfg.Source.Polarization)
	if err != nil {
		return err
	}
	z := sliceZ
	if z < 0 {
		z = cfg.Source.Z
	}
	if z >= cfg.Grid.NZ {
		return fmt.Errorf("z plane %d outside grid %s", z, cfg.Grid)
	}

	exp := experiment.New(cfg)
	if l := logger(); l != nil {
		exp.SetLogger(l)
	}
	if err := exp.Setup(nil); err != nil {
		return err
	}
	defer exp.Close()

	if _, err := exp.Run(context.Background()); err != nil {
		return err
	}

	plane := viz.Slice(exp.Engine(), q, pol, z)
	var svg string
	if threshold > 0 {
		svg = export.CanvasToSVG(viz.Wavefront(plane, threshold), 4, string(viz.CurrentTheme.Accent))
	} else {
		svg = export.PlaneToSVG(plane, 8, 0, viz.CurrentTheme)
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s plane z=%d after %d steps)\n", outFile, pol, z, exp.Engine().Steps())
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadProbes(runID)
	if err != nil {
		return err
	}

	column, data, err := probeColumn(runID, series)
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(data, 800, 300, string(viz.CurrentTheme.Accent))
	if svg == "" {
		return fmt.Errorf("probe %s has too few samples", column)
	}

	path := svgFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d samples)\n", path, column, len(data))
	return nil
}
