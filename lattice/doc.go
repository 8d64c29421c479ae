// Package lattice holds the spin state of an Ising model on a periodic 1-D chain
// or 2-D square lattice, together with cached total energy and magnetisation.
//
// Model:
//
//	E = -J · Σ_<ij> s_i·s_j  -  H · Σ_i s_i,   s_i ∈ {-1,+1}
//
// where <ij> runs over nearest-neighbour bonds, each counted once, with periodic
// boundaries. J is the coupling (WithCoupling, default 1) and H the external
// field (WithField, default 0).
//
// Topologies:
//
//   - OneD: N sites in a ring; neighbours of i are (i-1+N)%N and (i+1)%N.
//   - TwoD: N = L·L sites stored row-major; neighbours are the four orthogonal
//     sites with wrap-around (the Conn4 pattern).
//
// Caching:
//
//	Energy() and Magnetisation() are kept in sync incrementally. EnergyDelta(i)
//	is O(1) and reads only the neighbours of i; Flip(i) updates both caches in
//	O(1). RecomputeEnergy/RecomputeMagnetisation evaluate from scratch in O(N)
//	and exist to verify the cache.
//
// A Lattice is owned by one simulation run and is not goroutine-safe.
package lattice
