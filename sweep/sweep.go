package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/metropolis"
	"github.com/katalvlaran/ising/observable"
	"github.com/katalvlaran/ising/rng"
)

// driftTolerance bounds |cached − recomputed| energy per site and unit of |J|+|H|
// at the end of a point.
const driftTolerance = 1e-9

// Simulate fills energy, magnetisation and specificHeat (per-site means) for each
// inverse temperature in beta, in beta's index order.
//
// Preconditions: npoints = len(beta) = len(energy) = len(magnetisation) =
// len(specificHeat) > 0, nsites ≥ 2 (a perfect square for TwoD), every beta
// finite and ≥ 0. Violations return ErrInvalidConfiguration and no output is
// touched. beta is never modified.
//
// magnetisation receives the signed mean; take the absolute value downstream if
// needed, or use Run for AbsMagnetisation directly.
func Simulate(
	ctx context.Context,
	energy, magnetisation, specificHeat, beta []float64,
	npoints, nsites int,
	dim lattice.Dimension,
	opts Options,
) error {
	if err := validateOutputs(npoints, beta, energy, magnetisation, specificHeat); err != nil {
		return err
	}
	if err := validate(beta, nsites, dim, opts); err != nil {
		return err
	}

	return execute(ctx, beta, nsites, dim, opts, func(i int, r observable.Result) {
		energy[i] = r.Energy
		magnetisation[i] = r.Magnetisation
		specificHeat[i] = r.SpecificHeat
	})
}

// Run simulates every point in beta and returns the full per-point Result set.
// On error the returned slice is nil.
func Run(ctx context.Context, beta []float64, nsites int, dim lattice.Dimension, opts Options) ([]observable.Result, error) {
	if err := validate(beta, nsites, dim, opts); err != nil {
		return nil, err
	}
	results := make([]observable.Result, len(beta))
	if err := execute(ctx, beta, nsites, dim, opts, func(i int, r observable.Result) {
		results[i] = r
	}); err != nil {
		return nil, err
	}

	return results, nil
}

// sink receives the finished Result for index i exactly once.
type sink func(i int, r observable.Result)

// execute dispatches to the warm (sequential) or fresh (parallel) driver.
// Inputs are already validated.
func execute(ctx context.Context, beta []float64, nsites int, dim lattice.Dimension, opts Options, write sink) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	if opts.Restart == Warm {
		err = runWarm(ctx, beta, nsites, dim, opts, write)
	} else {
		err = runFresh(ctx, beta, nsites, dim, opts, write)
	}
	// Cancellation by the caller wins over the in-flight point's wrapped copy.
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}

	return err
}

// runFresh runs independent points on an errgroup bounded by opts.Workers.
// The first failure cancels the group; Wait is the join barrier.
func runFresh(ctx context.Context, beta []float64, nsites int, dim lattice.Dimension, opts Options, write sink) error {
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(beta) {
		workers = len(beta)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range beta {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lat, err := newLattice(nsites, dim, opts)
			if err != nil {
				return &PointError{Index: i, Beta: beta[i], Phase: PhaseInit, Err: err}
			}
			res, err := runPoint(gctx, lat, true, i, beta[i], opts)
			if err != nil {
				return err
			}
			write(i, res)

			return nil
		})
	}

	return g.Wait()
}

// runWarm chains every point on one lattice in beta order. Only the first point
// is initialized from opts.Start.
func runWarm(ctx context.Context, beta []float64, nsites int, dim lattice.Dimension, opts Options, write sink) error {
	lat, err := newLattice(nsites, dim, opts)
	if err != nil {
		return &PointError{Index: 0, Beta: beta[0], Phase: PhaseInit, Err: err}
	}
	for i := range beta {
		res, err := runPoint(ctx, lat, i == 0, i, beta[i], opts)
		if err != nil {
			return err
		}
		write(i, res)
	}

	return nil
}

// runPoint executes Init → Equilibrate → Measure → Finalize for point i.
// Every error is returned as a *PointError; numeric failures also match
// ErrNumericInstability.
func runPoint(ctx context.Context, lat *lattice.Lattice, reset bool, i int, beta float64, opts Options) (observable.Result, error) {
	fail := func(p Phase, err error) (observable.Result, error) {
		if errors.Is(err, metropolis.ErrNonFinite) || errors.Is(err, observable.ErrNonFinite) {
			err = fmt.Errorf("%w: %w", ErrNumericInstability, err)
		}

		return observable.Result{}, &PointError{Index: i, Beta: beta, Phase: p, Err: err}
	}

	// Init
	src := rng.Derive(opts.Seed, uint64(i))
	if reset {
		lat.Initialize(opts.Start, src)
	}
	smp, err := metropolis.NewSampler(lat, src, beta, opts.Mode)
	if err != nil {
		return fail(PhaseInit, err)
	}

	// Equilibrate
	if err = smp.Equilibrate(ctx, opts.Equilibration); err != nil {
		return fail(PhaseEquilibrate, err)
	}
	smp.ResetStats()

	// Measure
	var acc observable.Accumulator
	if err = smp.Measure(ctx, opts.schedule(), acc.Add); err != nil {
		return fail(PhaseMeasure, err)
	}

	// Finalize
	scale := float64(lat.Len()) * (math.Abs(opts.Coupling) + math.Abs(opts.Field) + 1)
	if drift := math.Abs(lat.Energy() - lat.RecomputeEnergy()); drift > driftTolerance*scale {
		return fail(PhaseFinalize, fmt.Errorf("%w: cached energy drifted by %g", ErrNumericInstability, drift))
	}
	res, err := acc.Finalize(lat.Len(), beta)
	if err != nil {
		return fail(PhaseFinalize, err)
	}
	res.AcceptanceRate = smp.AcceptanceRate()

	return res, nil
}
