package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/postflight/internal/analysis"
	"github.com/san-kum/postflight/internal/config"
	"github.com/san-kum/postflight/internal/scenario"
	"github.com/san-kum/postflight/internal/sim"
	"github.com/san-kum/postflight/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string

	// Scenario overrides
	duration   float64
	dtReport   float64
	altitude   float64
	speed      float64
	pitch      float64
	integrator string

	// Output
	jsonOut   string
	plotWidth int
	channel   string
)

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "postflight",
		Short: "post-damage flight dynamics and trajectory analysis",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".postflight", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a scenario and save both conditions",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "simulate reference vs damaged and report degradation",
		RunE:  runComparison,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().StringVar(&jsonOut, "json", "", "write full report to a JSON file")

	staticCmd := &cobra.Command{
		Use:   "static",
		Short: "derivative-sign stability read, no simulation",
		RunE:  runStatic,
	}
	addScenarioFlags(staticCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "stability/controllability analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "terminal plot of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in columns")
	plotCmd.Flags().StringVar(&channel, "channel", "altitude", "channel to plot (altitude|speed|theta)")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run as CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, staticCmd, listCmd, analyzeCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().Float64Var(&duration, "time", 0, "simulation duration (s)")
	cmd.Flags().Float64Var(&dtReport, "dt", 0, "reporting interval (s)")
	cmd.Flags().Float64Var(&altitude, "alt", 0, "initial altitude (m)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "initial forward speed (m/s)")
	cmd.Flags().Float64Var(&pitch, "theta", 0, "initial pitch angle (rad)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integration scheme (rk45|rk4|euler)")
}

func loadScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
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

	if cmd.Flags().Changed("time") {
		cfg.Window.TEnd = cfg.Window.TStart + duration
	}
	if cmd.Flags().Changed("dt") {
		cfg.Window.DtReport = dtReport
	}
	if cmd.Flags().Changed("alt") {
		cfg.InitState.Z = -altitude
	}
	if cmd.Flags().Changed("speed") {
		cfg.InitState.U = speed
	}
	if cmd.Flags().Changed("theta") {
		cfg.InitState.Theta = pitch
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Window.Integrator = integrator
	}

	return scenario.FromConfig(cfg), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	log := newLogger()

	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()

	ref, err := sc.RunReference(ctx)
	if err != nil {
		return describeFailure("reference", err)
	}
	dam, err := sc.RunDamaged(ctx)
	if err != nil {
		return describeFailure("damaged", err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Int("samples", ref.Len()).Msg("simulation complete")

	refID, err := st.Save(sc.Name, "reference", ref)
	if err != nil {
		return err
	}
	damID, err := st.Save(sc.Name, "damaged", dam)
	if err != nil {
		return err
	}

	fmt.Printf("saved runs: %s, %s\n\n", refID, damID)
	printMetrics("reference", analysis.Metrics(ref))
	printMetrics("damaged", analysis.Metrics(dam))
	return nil
}

func runComparison(cmd *cobra.Command, args []string) error {
	log := newLogger()

	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	rep, err := sc.RunComparison(context.Background(), log)
	if err != nil {
		return describeFailure(sc.Name, err)
	}

	printMetrics("reference", rep.Reference.Metrics)
	printMetrics("damaged", rep.Damaged.Metrics)
	printDegradation("trajectory metrics", rep.MetricsDegradation)
	printDegradation("stability", rep.StabilityDegradation)
	printDegradation("controllability", rep.ControllabilityDegradation)
	printDegradation("performance", rep.PerformanceDegradation)

	fmt.Printf("trajectory deviation: altitude %.2f m, speed %.2f m/s\n", rep.AltitudeDeviation, rep.SpeedDeviation)

	if jsonOut != "" {
		f, err := os.Create(jsonOut)
		if err != nil {
			return err
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
		log.Info().Str("path", jsonOut).Msg("report written")
	}
	return nil
}

func runStatic(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	rep := sc.Static()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "derivative\treference\tdamaged")
	fmt.Fprintf(w, "longitudinal stable\t%v\t%v\n", rep.Reference.LongitudinalStable, rep.Damaged.LongitudinalStable)
	fmt.Fprintf(w, "directional stable\t%v\t%v\n", rep.Reference.DirectionalStable, rep.Damaged.DirectionalStable)
	fmt.Fprintf(w, "lateral stable\t%v\t%v\n", rep.Reference.LateralStable, rep.Damaged.LateralStable)
	fmt.Fprintf(w, "static margin\t%.3f\t%.3f\n", rep.Reference.StaticMargin, rep.Damaged.StaticMargin)
	fmt.Fprintf(w, "pitch damping\t%.3f\t%.3f\n", rep.Reference.PitchDamping, rep.Damaged.PitchDamping)
	fmt.Fprintf(w, "roll damping\t%.3f\t%.3f\n", rep.Reference.RollDamping, rep.Damaged.RollDamping)
	fmt.Fprintf(w, "yaw damping\t%.3f\t%.3f\n", rep.Reference.YawDamping, rep.Damaged.YawDamping)

	env := rep.Envelope
	fmt.Fprintln(w, "envelope\t\t")
	fmt.Fprintf(w, "  altitude\t%.0f to %.0f m\t\n", env.AltitudeMin, env.AltitudeMax)
	fmt.Fprintf(w, "  speed\t%.0f to %.0f m/s\t\n", env.SpeedMin, env.SpeedMax)
	fmt.Fprintf(w, "  load factor\t%.1f to %.1f g\t\n", env.LoadFactorMin, env.LoadFactorMax)
	fmt.Fprintf(w, "  alpha\t%.0f to %.0f deg\t\n", env.AlphaMinDeg, env.AlphaMaxDeg)
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tscenario\tcondition\tsamples\tduration\tsaved")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\t%s\n",
			r.ID, r.Scenario, r.Condition, r.Samples, r.Duration, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	sum := analysis.Summarize(tr)
	printMetrics(args[0], sum.Metrics)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "stability\t")
	fmt.Fprintf(w, "  longitudinal\t%.1f\n", sum.Stability.Longitudinal)
	fmt.Fprintf(w, "  lateral\t%.1f\n", sum.Stability.Lateral)
	fmt.Fprintf(w, "  directional\t%.1f\n", sum.Stability.Directional)
	fmt.Fprintf(w, "  overall\t%.1f\n", sum.Stability.Overall)
	fmt.Fprintf(w, "  oscillation freq\t%.3f Hz\n", sum.Stability.OscillationFrequency)
	fmt.Fprintf(w, "  damping ratio\t%.3f\n", sum.Stability.DampingRatio)
	fmt.Fprintln(w, "controllability\t")
	fmt.Fprintf(w, "  pitch\t%.1f\n", sum.Controllability.Pitch)
	fmt.Fprintf(w, "  roll\t%.1f\n", sum.Controllability.Roll)
	fmt.Fprintf(w, "  yaw\t%.1f\n", sum.Controllability.Yaw)
	fmt.Fprintf(w, "  overall\t%.1f\n", sum.Controllability.Overall)
	fmt.Fprintf(w, "  response time\t%.2f s\n", sum.Controllability.ResponseTime)
	fmt.Fprintf(w, "  authority\t%.1f\n", sum.Controllability.ControlAuthority)
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	series := make([]float64, tr.Len())
	for i, s := range tr.States {
		switch channel {
		case "speed":
			series[i] = s.Airspeed()
		case "theta":
			series[i] = s.Theta
		default:
			series[i] = s.Altitude()
		}
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(20),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("%s: %s", args[0], channel)),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	scenarioName, condition := args[0], ""
	if runs, err := st.List(); err == nil {
		for _, r := range runs {
			if r.ID == args[0] {
				scenarioName, condition = r.Scenario, r.Condition
				break
			}
		}
	}
	return storage.ExportJSON(os.Stdout, scenarioName, condition, tr)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, tr)
}

func printMetrics(label string, m analysis.TrajectoryMetrics) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t\n", label)
	fmt.Fprintf(w, "  max altitude\t%.1f m\n", m.MaxAltitude)
	fmt.Fprintf(w, "  max range\t%.1f m\n", m.MaxRange)
	fmt.Fprintf(w, "  flight time\t%.1f s\n", m.FlightTime)
	fmt.Fprintf(w, "  impact velocity\t%.1f m/s\n", m.ImpactVelocity)
	fmt.Fprintf(w, "  impact angle\t%.1f deg\n", m.ImpactAngleDeg)
	fmt.Fprintf(w, "  stability margin\t%.2f\n", m.StabilityMargin)
	fmt.Fprintf(w, "  controllability index\t%.2f\n", m.ControllabilityIndex)
	w.Flush()
	fmt.Println()
}

func printDegradation(label string, deg map[string]float64) {
	if len(deg) == 0 {
		return
	}
	names := make([]string, 0, len(deg))
	for name := range deg {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s degradation\t\n", label)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%+.1f%%\n", name, deg[name])
	}
	w.Flush()
	fmt.Println()
}

func describeFailure(label string, err error) error {
	if kind := sim.FailureKind(err); kind != nil {
		return fmt.Errorf("%s run failed: %w", label, err)
	}
	return err
}
