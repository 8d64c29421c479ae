// Command isingplot sweeps inverse temperature for an Ising lattice, prints the
// observables and renders Energy, |Magnetisation| and SpecificHeat against Beta.
//
//	isingplot --sites 64 --points 32 --beta-min 0.01 --beta-max 4.5 --png ising.png
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/metropolis"
	"github.com/katalvlaran/ising/sweep"
)

// config mirrors the command-line flags.
type config struct {
	sites, points    int
	betaMin, betaMax float64
	dim              int
	equil, measure   int
	stride           int
	seed             int64
	start            string
	warm, sequential bool
	workers          int
	coupling, field  float64
	pngPath          string
	htmlPath         string
	logLevel         string
	logFormat        string
}

func defaultConfig() config {
	d := sweep.DefaultOptions()

	return config{
		sites:     64,
		points:    32,
		betaMin:   0.01,
		betaMax:   4.5,
		dim:       1,
		equil:     d.Equilibration,
		measure:   d.Measurement,
		stride:    d.SampleStride,
		start:     "hot",
		coupling:  d.Coupling,
		pngPath:   "ising.png",
		logLevel:  "info",
		logFormat: "text",
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	cmd := &cobra.Command{
		Use:   "isingplot",
		Short: "Metropolis sweep of an Ising lattice over inverse temperature",
		Args: func(cmd *cobra.Command, args []string) error {
			return reportUsage(cmd, cobra.NoArgs(cmd, args))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetFlagErrorFunc(reportUsage)

	f := cmd.Flags()
	f.IntVar(&cfg.sites, "sites", cfg.sites, "number of lattice sites (perfect square for --dim 2)")
	f.IntVar(&cfg.points, "points", cfg.points, "number of Beta values")
	f.Float64Var(&cfg.betaMin, "beta-min", cfg.betaMin, "smallest Beta")
	f.Float64Var(&cfg.betaMax, "beta-max", cfg.betaMax, "largest Beta")
	f.IntVar(&cfg.dim, "dim", cfg.dim, "lattice dimension: 1 or 2")
	f.IntVar(&cfg.equil, "equil", cfg.equil, "equilibration sweeps per point")
	f.IntVar(&cfg.measure, "measure", cfg.measure, "measurement sweeps per point")
	f.IntVar(&cfg.stride, "stride", cfg.stride, "sweeps between samples")
	f.Int64Var(&cfg.seed, "seed", cfg.seed, "base RNG seed (0 = default)")
	f.StringVar(&cfg.start, "start", cfg.start, "initial configuration: hot or cold")
	f.BoolVar(&cfg.warm, "warm", cfg.warm, "carry the lattice from one Beta to the next")
	f.BoolVar(&cfg.sequential, "sequential", cfg.sequential, "visit every site once per sweep in shuffled order instead of at random")
	f.IntVar(&cfg.workers, "workers", cfg.workers, "parallel temperature points (0 = GOMAXPROCS)")
	f.Float64Var(&cfg.coupling, "coupling", cfg.coupling, "nearest-neighbour coupling J")
	f.Float64Var(&cfg.field, "field", cfg.field, "external field H")
	f.StringVar(&cfg.pngPath, "png", cfg.pngPath, "PNG output path (empty to skip)")
	f.StringVar(&cfg.htmlPath, "html", cfg.htmlPath, "HTML chart output path (empty to skip)")
	f.StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "debug, info, warn or error")
	f.StringVar(&cfg.logFormat, "log-format", cfg.logFormat, "text or json")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// reportUsage prints command-line errors that fail before run has a logger;
// run reports its own failures through slog.
func reportUsage(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "isingplot: %v\n", err)
	}

	return err
}

// run executes one sweep and writes the table and the requested charts.
func run(ctx context.Context, cfg config, stdout, stderr io.Writer) error {
	logger, err := newLogger(stderr, cfg.logLevel, cfg.logFormat)
	if err != nil {
		return err
	}
	dim, opts, err := cfg.options()
	if err != nil {
		logger.Error("invalid flags", "err", err)

		return err
	}
	if cfg.points <= 0 {
		err = fmt.Errorf("isingplot: --points must be > 0, got %d", cfg.points)
		logger.Error("invalid flags", "err", err)

		return err
	}

	s := series{
		dim:           dim,
		beta:          make([]float64, cfg.points),
		energy:        make([]float64, cfg.points),
		magnetisation: make([]float64, cfg.points),
		specificHeat:  make([]float64, cfg.points),
	}
	if cfg.points == 1 {
		s.beta[0] = cfg.betaMin
	} else {
		floats.Span(s.beta, cfg.betaMin, cfg.betaMax)
	}

	logger.Info("sweep starting",
		"sites", cfg.sites, "points", cfg.points, "dim", dim.String(),
		"beta_min", cfg.betaMin, "beta_max", cfg.betaMax,
		"equil", opts.Equilibration, "measure", opts.Measurement, "stride", opts.SampleStride,
		"start", opts.Start.String(), "restart", opts.Restart.String(), "mode", opts.Mode.String(),
		"workers", opts.Workers, "seed", opts.Seed)

	began := time.Now()
	err = sweep.Simulate(ctx, s.energy, s.magnetisation, s.specificHeat, s.beta, cfg.points, cfg.sites, dim, opts)
	if err != nil {
		logger.Error("sweep failed", "err", err)

		return err
	}

	if err = writeTable(stdout, s); err != nil {
		return err
	}
	if cfg.pngPath != "" {
		if err = writeFile(cfg.pngPath, func(w io.Writer) error { return renderPNG(w, s) }); err != nil {
			logger.Error("png render failed", "path", cfg.pngPath, "err", err)

			return err
		}
		logger.Debug("wrote png", "path", cfg.pngPath)
	}
	if cfg.htmlPath != "" {
		if err = writeFile(cfg.htmlPath, func(w io.Writer) error { return renderHTML(w, s) }); err != nil {
			logger.Error("html render failed", "path", cfg.htmlPath, "err", err)

			return err
		}
		logger.Debug("wrote html", "path", cfg.htmlPath)
	}
	logger.Info("sweep finished", "elapsed", time.Since(began), "png", cfg.pngPath, "html", cfg.htmlPath)

	return nil
}

// options maps flags onto the core configuration.
func (c config) options() (lattice.Dimension, sweep.Options, error) {
	opts := sweep.DefaultOptions()
	opts.Equilibration = c.equil
	opts.Measurement = c.measure
	opts.SampleStride = c.stride
	opts.Seed = c.seed
	opts.Workers = c.workers
	opts.Coupling = c.coupling
	opts.Field = c.field
	if c.warm {
		opts.Restart = sweep.Warm
	}
	if c.sequential {
		opts.Mode = metropolis.Sequential
	}

	switch strings.ToLower(c.start) {
	case "hot":
		opts.Start = lattice.HotStart
	case "cold":
		opts.Start = lattice.ColdStart
	default:
		return 0, opts, fmt.Errorf("isingplot: --start must be hot or cold, got %q", c.start)
	}

	var dim lattice.Dimension
	switch c.dim {
	case 1:
		dim = lattice.OneD
	case 2:
		dim = lattice.TwoD
	default:
		return 0, opts, fmt.Errorf("isingplot: --dim must be 1 or 2, got %d", c.dim)
	}

	return dim, opts, nil
}

// newLogger builds a slog.Logger writing to w.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("isingplot: bad --log-level %q: %w", level, err)
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("isingplot: --log-format must be text or json, got %q", format)
	}
}

// writeTable prints one row per Beta.
func writeTable(w io.Writer, s series) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "beta\tenergy\t|magnetisation|\tspecific_heat\t")
	for i := range s.beta {
		fmt.Fprintf(tw, "%.4f\t%.6f\t%.6f\t%.6f\t\n",
			s.beta[i], s.energy[i], math.Abs(s.magnetisation[i]), s.specificHeat[i])
	}

	return tw.Flush()
}

// writeFile creates path and hands it to render, closing it afterwards.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return render(f)
}
