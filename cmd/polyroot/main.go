package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/polyroot/internal/analysis"
	"github.com/san-kum/polyroot/internal/config"
	"github.com/san-kum/polyroot/internal/export"
	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
	"github.com/san-kum/polyroot/internal/storage"
	"github.com/san-kum/polyroot/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	variable   string
	// Solver
	epsilon         float64
	maxIterations   int
	divergenceBound float64
	guesses         []float64
	trace           bool
	save            bool
	// Evaluation and differentiation
	points []float64
	order  int
	// Plot window
	plotMin     float64
	plotMax     float64
	samples     int
	plotHeight  int
	plotWidth   int
	showDeriv   bool
	braille     bool
	scanSteps   int
	scanWorkers int
	// Export targets
	jsonOut string
	svgOut  string
)

// main executes the root command and exits with status 1 if it returns an
// error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Bad.Render("error:"), err)
		os.Exit(1)
	}
}

// newRootCmd registers every command and flag.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "polyroot",
		Short:         "polynomial formatting, calculus and newton root finding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupOutput()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".polyroot", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset polynomial")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	formatCmd := &cobra.Command{
		Use:   "format [poly]",
		Short: "print polynomial in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE:  formatPoly,
	}
	formatCmd.Flags().StringVar(&variable, "var", poly.DefaultVariable, "variable symbol")

	evalCmd := &cobra.Command{
		Use:   "eval [poly]",
		Short: "evaluate polynomial at points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evalPoly,
	}
	evalCmd.Flags().Float64SliceVar(&points, "at", []float64{0}, "points to evaluate at")

	diffCmd := &cobra.Command{
		Use:   "diff [poly]",
		Short: "differentiate polynomial",
		Args:  cobra.MaximumNArgs(1),
		RunE:  diffPoly,
	}
	diffCmd.Flags().IntVar(&order, "order", 1, "derivative order")

	rootFindCmd := &cobra.Command{
		Use:   "root [poly]",
		Short: "find roots with newton-raphson",
		Args:  cobra.MaximumNArgs(1),
		RunE:  findRoots,
	}
	addSolverFlags(rootFindCmd)
	rootFindCmd.Flags().BoolVar(&trace, "trace", false, "print every iteration")
	rootFindCmd.Flags().BoolVar(&save, "save", false, "store runs in the data directory")

	scanCmd := &cobra.Command{
		Use:   "scan [poly]",
		Short: "search for all real roots in a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanRoots,
	}
	addSolverFlags(scanCmd)
	scanCmd.Flags().Float64Var(&plotMin, "min", config.DefaultPlotMin, "range start")
	scanCmd.Flags().Float64Var(&plotMax, "max", config.DefaultPlotMax, "range end")
	scanCmd.Flags().IntVar(&scanSteps, "steps", config.DefaultScanSteps, "number of starting guesses")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "parallel solves (0 = all cpus)")

	plotCmd := &cobra.Command{
		Use:   "plot [poly]",
		Short: "plot polynomial in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotPoly,
	}
	addWindowFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().BoolVar(&showDeriv, "derivative", false, "overlay the derivative")
	plotCmd.Flags().BoolVar(&braille, "braille", false, "draw with braille dots")

	exploreCmd := &cobra.Command{
		Use:   "explore [poly]",
		Short: "step through newton-raphson interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  explorePoly,
	}
	addSolverFlags(exploreCmd)
	addWindowFlags(exploreCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in polynomials",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run and plot its iterates",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run with its trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [poly]",
		Short: "render polynomial and newton iterates as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addSolverFlags(exportSVGCmd)
	addWindowFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "polyroot.svg", "output file")

	rootCmd.AddCommand(formatCmd, evalCmd, diffCmd, rootFindCmd, scanCmd, plotCmd, exploreCmd,
		presetsCmd, listCmd, showCmd, exportJSONCmd, exportSVGCmd)

	return rootCmd
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&epsilon, "epsilon", newton.DefaultEpsilon, "convergence threshold")
	cmd.Flags().IntVar(&maxIterations, "max-iter", newton.DefaultMaxIterations, "iteration cap (0 = none)")
	cmd.Flags().Float64Var(&divergenceBound, "divergence-bound", newton.DefaultDivergenceBound, "give up once |x| exceeds this")
	cmd.Flags().Float64SliceVarP(&guesses, "guess", "g", []float64{0}, "starting guesses")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&plotMin, "min", config.DefaultPlotMin, "x range start")
	cmd.Flags().Float64Var(&plotMax, "max", config.DefaultPlotMax, "x range end")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultPlotSamples, "number of samples")
}

func setupOutput() {
	log.SetFlags(0)
	log.SetPrefix("polyroot: ")
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	if !viz.IsTerminal(os.Stdout) {
		viz.DisableColor()
	}
}

// loadConfig builds the effective configuration: preset, then config file,
// then the polynomial argument, then explicitly set flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	havePoly := false

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, havePoly = p, true
		log.Printf("using preset %s", preset)
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(fileCfg.Polynomial) == 0 && havePoly {
			fileCfg.Polynomial = cfg.Polynomial
		}
		cfg, havePoly = fileCfg, havePoly || len(fileCfg.Polynomial) > 0
		log.Printf("loaded config %s", configFile)
	}

	if len(args) > 0 {
		p, err := poly.Parse(args[0])
		if err != nil {
			return nil, err
		}
		cfg.SetPoly(p)
		havePoly = true
	}

	if !havePoly {
		return nil, errors.New("no polynomial given: pass it as an argument, or use --preset or --config")
	}

	flags := cmd.Flags()
	if flags.Changed("epsilon") {
		cfg.Solver.Epsilon = epsilon
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIterations
	}
	if flags.Changed("divergence-bound") {
		cfg.Solver.DivergenceBound = divergenceBound
	}
	if flags.Changed("guess") {
		cfg.Guesses = guesses
	}
	if flags.Changed("min") {
		cfg.Plot.Min, cfg.Scan.Min = plotMin, plotMin
	}
	if flags.Changed("max") {
		cfg.Plot.Max, cfg.Scan.Max = plotMax, plotMax
	}
	if flags.Changed("samples") {
		cfg.Plot.Samples = samples
	}
	if flags.Changed("steps") {
		cfg.Scan.Steps = scanSteps
	}
	if flags.Changed("workers") {
		cfg.Scan.Workers = scanWorkers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("polynomial %q, solver %+v", cfg.Poly().String(), cfg.Solver)
	return cfg, nil
}

func formatPoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), poly.FormatVar(cfg.Poly(), variable))
	return nil
}

func evalPoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Poly()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tP(X)")
	for _, x := range points {
		fmt.Fprintf(w, "%g\t%g\n", x, p.Eval(x))
	}
	return w.Flush()
}

func diffPoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	d := cfg.Poly().Derivative(order)
	if d.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "0")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), d)
	return nil
}

func findRoots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Poly()
	solverCfg := cfg.SolverConfig()

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	fmt.Println(viz.KV("p(x)", p.String()))
	fmt.Println(viz.KV("p'(x)", p.Differentiate().String()))
	fmt.Println()

	failures := 0
	for _, guess := range cfg.Guesses {
		solver := newton.New(solverCfg)
		solver.AddObserver(newton.ObserverFunc(func(s newton.Step) {
			log.Printf("  iter %d: x=%g p(x)=%g p'(x)=%g", s.Iteration, s.Guess, s.Value, s.Slope)
		}))
		start := time.Now()
		res, solveErr := solver.Solve(context.Background(), p, guess)
		log.Printf("guess %g finished in %v", guess, time.Since(start))

		printResult(guess, res, solveErr)
		if trace && res != nil {
			printTrace(res.Steps)
		}
		if solveErr != nil {
			failures++
		}

		if st != nil {
			runID, err := st.Save(storage.Run{Poly: p, Guess: guess, Config: solverCfg}, res, solveErr)
			if err != nil {
				return err
			}
			fmt.Println(viz.KV("run id", runID))
		}
	}

	if failures == len(cfg.Guesses) && failures > 0 {
		return fmt.Errorf("no guess converged")
	}
	return nil
}

func printResult(guess float64, res *newton.Result, err error) {
	status := viz.Good.Render("converged")
	if err != nil {
		status = viz.Bad.Render(err.Error())
	}
	fmt.Printf("%s  %s\n", viz.KV("guess", fmt.Sprintf("%g", guess)), status)
	if res == nil {
		return
	}
	if err == nil {
		fmt.Printf("  %s  %s  %s\n",
			viz.KV("root", fmt.Sprintf("%.10g", res.Root)),
			viz.KV("iterations", fmt.Sprintf("%d", res.Iterations)),
			viz.KV("|p(root)|", fmt.Sprintf("%.3e", res.Residual)))
	}

	sizes := make([]float64, len(res.Steps))
	for i, s := range res.Steps {
		sizes[i] = s.Next - s.Guess
	}
	if len(sizes) > 1 {
		fmt.Printf("  %s %s\n", viz.Label.Render("step size:"), viz.StepSparkline(sizes, 40))
	}
}

func printTrace(steps []newton.Step) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ITER\tX\tP(X)\tP'(X)\tNEXT")
	for _, s := range steps {
		fmt.Fprintf(w, "  %d\t%.10g\t%.4e\t%.4e\t%.10g\n", s.Iteration, s.Guess, s.Value, s.Slope, s.Next)
	}
	w.Flush()
	fmt.Println()
}

func scanRoots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Poly()
	sc := cfg.ScanConfig()

	fmt.Println(viz.KV("p(x)", p.String()))
	fmt.Println(viz.KV("range", fmt.Sprintf("[%g, %g], %d guesses", sc.Min, sc.Max, sc.Steps)))

	start := time.Now()
	roots, err := newton.New(cfg.SolverConfig()).Scan(context.Background(), p, sc)
	if err != nil {
		return err
	}
	log.Printf("scan finished in %v", time.Since(start))

	brackets := analysis.Brackets(p, sc.Min, sc.Max, sc.Steps*4)
	fmt.Println(viz.KV("sign changes", fmt.Sprintf("%d", len(brackets))))
	fmt.Println()

	if len(roots) == 0 {
		fmt.Println(viz.Bad.Render("no roots found"))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROOT\tP(ROOT)")
	for _, r := range roots {
		fmt.Fprintf(w, "%.10g\t%.3e\n", r, p.Eval(r))
	}
	return w.Flush()
}

func plotPoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Poly()

	if braille {
		pl := viz.FitPlot(p, plotWidth, plotHeight, cfg.Plot.Min, cfg.Plot.Max)
		pl.DrawPoly(p)
		if showDeriv {
			pl.DrawOverlay(p.Differentiate())
		}
		for _, b := range analysis.Brackets(p, cfg.Plot.Min, cfg.Plot.Max, plotWidth*2) {
			pl.Mark(b.Mid(), 0, viz.RootMark)
		}
		fmt.Println(viz.Title.Render(p.String()))
		fmt.Print(pl.Render(viz.GetTheme("cyberpunk")))
		return nil
	}

	_, ys := analysis.Sample(p, cfg.Plot.Min, cfg.Plot.Max, cfg.Plot.Samples)
	caption := fmt.Sprintf("%s on [%g, %g]", p, cfg.Plot.Min, cfg.Plot.Max)

	var graph string
	if showDeriv {
		_, dys := analysis.Sample(p.Differentiate(), cfg.Plot.Min, cfg.Plot.Max, cfg.Plot.Samples)
		graph = asciigraph.PlotMany([][]float64{finiteOnly(ys), finiteOnly(dys)},
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption(caption+" (derivative in magenta)"),
		)
	} else {
		graph = asciigraph.Plot(finiteOnly(ys),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(caption),
		)
	}
	fmt.Println(graph)
	return nil
}

// finiteOnly replaces NaN and Inf, which asciigraph cannot scale, with the
// nearest finite neighbour.
func finiteOnly(ys []float64) []float64 {
	out := make([]float64, len(ys))
	last := 0.0
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			out[i] = last
			continue
		}
		out[i], last = y, y
	}
	return out
}

func explorePoly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	guess := 0.0
	if len(cfg.Guesses) > 0 {
		guess = cfg.Guesses[0]
	}
	return viz.RunExplorer(cfg.Poly(), guess, cfg.SolverConfig(), cfg.Plot.Min, cfg.Plot.Max)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOLYNOMIAL\tGUESSES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%v\n", name, cfg.Poly(), cfg.Guesses)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tPOLYNOMIAL\tGUESS\tROOT\tITER\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if !run.Converged {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%.10g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Polynomial,
			run.Guess,
			run.Root,
			run.Iterations,
			status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.KV("run", meta.ID))
	fmt.Println(viz.KV("p(x)", meta.Polynomial))
	fmt.Println(viz.KV("p'(x)", meta.Derivative))
	fmt.Println(viz.KV("guess", fmt.Sprintf("%g", meta.Guess)))
	if meta.Converged {
		fmt.Println(viz.KV("root", fmt.Sprintf("%.10g", meta.Root)))
	} else {
		fmt.Println(viz.Bad.Render(meta.Error))
	}
	fmt.Println(viz.KV("iterations", fmt.Sprintf("%d", meta.Iterations)))
	fmt.Println()

	if len(steps) < 2 {
		return nil
	}

	xs := make([]float64, 0, len(steps)+1)
	xs = append(xs, steps[0].Guess)
	for _, s := range steps {
		xs = append(xs, s.Next)
	}
	fmt.Println(asciigraph.Plot(finiteOnly(xs),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("iterate vs iteration"),
	))
	return nil
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	if jsonOut == "" {
		return export.WriteJSON(cmd.OutOrStdout(), meta, steps)
	}
	if err := export.ExportJSON(jsonOut, meta, steps); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", jsonOut)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Poly()

	var steps []newton.Step
	if len(cfg.Guesses) > 0 {
		res, solveErr := newton.New(cfg.SolverConfig()).Solve(context.Background(), p, cfg.Guesses[0])
		if solveErr != nil {
			log.Printf("solve from %g: %v", cfg.Guesses[0], solveErr)
		}
		if res != nil {
			steps = res.Steps
		}
	}

	opts := export.DefaultSVGOptions()
	opts.XMin, opts.XMax = cfg.Plot.Min, cfg.Plot.Max
	opts.Samples = max(cfg.Plot.Samples, opts.Samples)

	svg := export.PlotSVG(p, steps, opts)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d iterates)\n", svgOut, len(steps))
	if !strings.HasSuffix(svgOut, ".svg") {
		log.Printf("output %s has no .svg extension", svgOut)
	}
	return nil
}
