// Package ising is a Monte Carlo playground for the Ising model: periodic spin
// lattices, Metropolis sampling and thermodynamic sweeps over inverse temperature.
//
// 🚀 What is in the box?
//
//	A small, deterministic, pure-Go engine that brings together:
//		• Lattices: 1-D chains and 2-D square lattices with periodic boundaries
//		• Cached energy & magnetisation with O(1) local updates
//		• Metropolis sampling: random-site or sequential sweeps, clamped exponent
//		• Observables: energy, magnetisation, specific heat, susceptibility
//		• Sweeps: parallel temperature points with per-point RNG streams
//
// ✨ Why this layout?
//
//   - Reproducible – same seed ⇒ bit-identical results, whatever the worker count
//   - No hidden state – every call takes explicit Options
//   - Errors, not logs – sentinels matched with errors.Is
//
// Packages:
//
//	rng/        - seedable uniform sources and SplitMix64 substreams
//	lattice/    - spin state, neighbour tables, cached energy/magnetisation
//	metropolis/ - acceptance rule, sweeps, equilibrate/measure schedule
//	observable/ - sample accumulator and per-site Result
//	sweep/      - Simulate / Run over a Beta array
//	cmd/isingplot - CLI that plots Energy, |M| and SpecificHeat against Beta
//
// Quick example:
//
//	beta := []float64{0.25, 0.5, 1, 2}
//	e, m, c := make([]float64, 4), make([]float64, 4), make([]float64, 4)
//	err := sweep.Simulate(ctx, e, m, c, beta, 4, 64, lattice.OneD, sweep.DefaultOptions())
//
//	go get github.com/katalvlaran/ising
package ising
