// Package metropolis implements single-spin-flip Metropolis sampling over a
// lattice.Lattice.
//
// Acceptance rule (Accept):
//
//	ΔE ≤ 0                         → accept
//	ΔE > 0, u ~ U[0,1)             → accept iff u < exp(-β·ΔE)
//	β·ΔE > MaxExponent             → reject without evaluating exp
//
// β = 0 accepts every move (infinite temperature); very large β rejects every
// unfavourable move and the sampler degenerates to a quench.
//
// Sweeps:
//
//   - RandomSite: N proposals at uniformly drawn sites (one attempt per site on average).
//   - Sequential: every site proposed once per sweep, in shuffled order.
//
// Run executes a Schedule: Equilibration sweeps are discarded, then Measurement
// sweeps are performed and the Observer receives the lattice's cached energy and
// magnetisation every SampleStride sweeps. The context is checked between sweeps;
// a sweep itself is never interrupted.
//
// A Sampler owns neither the lattice nor the source exclusively, but it must be
// the only user of both while it runs.
package metropolis
