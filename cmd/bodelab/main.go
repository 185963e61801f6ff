package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/render"
	"github.com/san-kum/bodelab/internal/tf"
	"github.com/san-kum/bodelab/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var version = "dev"

var (
	gain     float64
	tau      float64
	order    int
	zeta     float64
	delay    float64
	preset   string
	logLevel string

	configFile string

	asJSON  bool
	asCSV   bool
	every   int
	width   int
	height  int
	format  string
	outFile string
	figW    float64
	figH    float64
	theme   string
	addr    string
)

// main registers the bodelab commands and flags and executes the root
// command, which opens the slider app when no subcommand is given. It exits
// with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "bodelab [shape]",
		Short:         "interactive bode plots for first and second order systems",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runTUI,
	}

	addParamFlags(rootCmd)

	rootCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	tuiCmd := &cobra.Command{
		Use:   "tui [shape]",
		Short: "slider app",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	plotCmd := &cobra.Command{
		Use:   "plot [shape]",
		Short: "print bode plots to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotShape,
	}
	plotCmd.Flags().IntVar(&width, "width", 70, "plot width in columns")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height in rows")

	evalCmd := &cobra.Command{
		Use:   "eval [shape]",
		Short: "print the frequency response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evalShape,
	}
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	evalCmd.Flags().BoolVar(&asCSV, "csv", false, "output CSV")
	evalCmd.Flags().IntVar(&every, "every", 50, "print every n-th grid point (table only)")

	polesCmd := &cobra.Command{
		Use:   "poles",
		Short: "roots of τ²s² + 2τζs + 1",
		Args:  cobra.NoArgs,
		RunE:  printPoles,
	}

	figureCmd := &cobra.Command{
		Use:   "figure [shape]",
		Short: "render the bode figure as an image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFigure,
	}
	figureCmd.Flags().StringVar(&format, "format", "png", "image format (png, svg, pdf, eps, jpg, tiff)")
	figureCmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file, - for stdout")
	figureCmd.Flags().Float64Var(&figW, "width", 6, "figure width in inches")
	figureCmd.Flags().Float64Var(&figH, "height", 8, "figure height in inches")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides BODELAB_ADDR)")

	presetsCmd := &cobra.Command{
		Use:   "presets [shape]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes := tf.KindNames()
			if len(args) > 0 {
				shapes = args
			}
			for _, shape := range shapes {
				presets := config.ListPresets(shape)
				if len(presets) == 0 {
					fmt.Printf("no presets for shape: %s\n", shape)
					continue
				}
				fmt.Printf("presets for %s:\n", shape)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, plotCmd, evalCmd, polesCmd, figureCmd, serveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("bodelab failed")
		os.Exit(1)
	}
}

// addParamFlags registers the parameter, preset, config and logging flags
// shared by every subcommand.
func addParamFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Float64Var(&gain, "k", 1.0, "gain K")
	pf.Float64Var(&tau, "tau", 1.0, "time constant τ")
	pf.IntVar(&order, "n", 1, "real-pole order n (negative for zeros)")
	pf.Float64Var(&zeta, "zeta", 0.5, "damping ratio ζ")
	pf.Float64Var(&delay, "delay", 1.0, "dead time D")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// resolve builds the configuration and starting parameters. Later sources
// win: built-in defaults, then the preset, then the config file, then
// flags given on the command line.
func resolve(cmd *cobra.Command, args []string) (*config.Config, tf.Params, error) {
	cfg := config.DefaultConfig()
	kind := tf.KindRealPole
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, tf.Params{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		kind = cfg.Params.Kind
	}
	if len(args) > 0 {
		k, err := tf.ParseKind(args[0])
		if err != nil {
			return nil, tf.Params{}, err
		}
		kind = k
	}

	params := tf.DefaultParams(kind)
	if preset != "" {
		p, err := config.GetPreset(kind.String(), preset)
		if err != nil {
			return nil, tf.Params{}, err
		}
		params = p
	}
	if configFile != "" && cfg.Params.Kind == kind {
		params = cfg.Params
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		params.K = gain
	}
	if flags.Changed("tau") {
		params.Tau = tau
	}
	if flags.Changed("n") {
		params.N = order
	}
	if flags.Changed("zeta") {
		params.Zeta = zeta
	}
	if flags.Changed("delay") {
		params.Delay = delay
	}
	params.Kind = kind

	log.Debug().
		Str("shape", kind.String()).
		Float64("k", params.K).
		Float64("tau", params.Tau).
		Int("n", params.N).
		Float64("zeta", params.Zeta).
		Float64("delay", params.Delay).
		Msg("resolved parameters")
	return cfg, params, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, params, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	if _, err := bode.Evaluate(params, cfg.Grid); err != nil {
		return err
	}

	// the alternate screen owns the terminal until the app exits
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer setupLogging(logLevel)

	return viz.Run(viz.NewApp(cfg, params.Kind, params).WithTheme(theme))
}

func plotShape(cmd *cobra.Command, args []string) error {
	cfg, params, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	res, err := bode.Evaluate(params, cfg.Grid)
	if err != nil {
		return err
	}
	fmt.Print(viz.ASCIIBode(res, cfg.Limits, width, height))
	return nil
}

func evalShape(cmd *cobra.Command, args []string) error {
	cfg, params, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	res, err := bode.Evaluate(params, cfg.Grid)
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		if err := bode.CheckFinite(res); err != nil {
			return fmt.Errorf("cannot encode response as JSON: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case asCSV:
		return writeCSV(os.Stdout, res)
	}

	if every < 1 {
		every = 1
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OMEGA\t|G|\tDB\tPHASE\tPHASE_DEG")
	for i := 0; i < len(res.Omega); i += every {
		fmt.Fprintf(w, "%.4g\t%.6g\t%.3f\t%.6f\t%.2f\n",
			res.Omega[i],
			res.Magnitude[i],
			bode.DB(res.Magnitude[i]),
			res.Phase[i],
			res.Phase[i]*180/math.Pi,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if as := res.Asymptotes; as != nil {
		fmt.Printf("\ncorner: %.6g rad/s\nlow gain: %.6g\nhigh phase: %.6g rad\n", as.Corner, as.LowGain, as.HighPhase)
	}
	return nil
}

func writeCSV(out io.Writer, res *bode.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"omega", "magnitude", "phase"}); err != nil {
		return err
	}
	for i := range res.Omega {
		row := []string{
			strconv.FormatFloat(res.Omega[i], 'g', -1, 64),
			strconv.FormatFloat(res.Magnitude[i], 'g', -1, 64),
			strconv.FormatFloat(res.Phase[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printPoles(cmd *cobra.Command, args []string) error {
	_, params, err := resolve(cmd, []string{tf.KindSecondOrder.String()})
	if err != nil {
		return err
	}
	poles, err := bode.SecondOrderPoles(params.Tau, params.Zeta)
	if err != nil {
		return err
	}

	fmt.Printf("τ²s² + 2τζs + 1, τ=%g ζ=%g\n", params.Tau, params.Zeta)
	if len(poles) == 0 {
		fmt.Println("no poles")
	}
	for _, p := range poles {
		fmt.Printf("  %.6g %+.6gj\n", real(p), imag(p))
	}
	fmt.Printf("%s\n", bode.Damping(poles))
	return nil
}

func renderFigure(cmd *cobra.Command, args []string) error {
	cfg, params, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	res, err := bode.Evaluate(params, cfg.Grid)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	opts := render.Options{
		Format: format,
		Width:  vg.Length(figW) * vg.Inch,
		Height: vg.Length(figH) * vg.Inch,
	}
	if err := render.Figure(out, res, cfg.Limits, opts); err != nil {
		return err
	}
	log.Info().Str("shape", params.Kind.String()).Str("format", format).Str("out", outFile).Msg("figure written")
	return nil
}
