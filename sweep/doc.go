// Package sweep drives Metropolis simulations of an Ising lattice across an
// array of inverse temperatures and fills the caller's result arrays.
//
// Entry points:
//
//	err := sweep.Simulate(ctx, energy, magnetisation, specificHeat, beta,
//	    npoints, nsites, lattice.OneD, sweep.DefaultOptions())
//
//	results, err := sweep.Run(ctx, beta, nsites, lattice.TwoD, opts)
//
// Per temperature point i the driver moves through
//
//	Init(i) → Equilibrate → Measure → Finalize(i) → i+1 … Done
//
// Init resets the lattice (Restart=Fresh, the default) using opts.Start, or keeps
// the previous point's configuration (Restart=Warm). Finalize writes
// Energy[i], Magnetisation[i] and SpecificHeat[i] together; nothing is exposed
// mid-point.
//
// Concurrency:
//
//   - With Restart=Fresh, points are independent and run on up to opts.Workers
//     goroutines. Each point owns its Lattice and its rng stream Derive(Seed, i),
//     so results are bit-identical for a fixed seed whatever the worker count.
//   - Workers write only their own index; Simulate returns after all workers
//     have joined, so every write is visible to the caller.
//   - Restart=Warm chains points in Beta order on a single goroutine.
//
// Errors:
//
//   - ErrInvalidConfiguration - bad sizes/lengths/options; reported before any
//     simulation work and before any write.
//   - ErrNumericInstability   - non-finite or drifting energy/magnetisation; the
//     whole sweep is aborted. Wrapped in a *PointError naming the index.
//   - ctx.Err()               - cancellation; points not yet finalized are
//     abandoned, finalized points stay written.
//
// The package never logs.
package sweep
