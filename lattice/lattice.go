package lattice

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ising/rng"
)

// Lattice is a periodic Ising spin configuration with cached observables.
// nbr holds z neighbour indices per site (z=2 in 1-D, z=4 in 2-D), precomputed
// so EnergyDelta never branches on topology.
type Lattice struct {
	dim      Dimension
	side     int // L for TwoD; n for OneD
	z        int
	coupling float64
	field    float64

	spins []int8
	nbr   []int

	energy float64
	mag    float64
}

// New allocates a lattice of n sites in the given dimension, all spins +1.
// Call Initialize to choose the starting configuration.
//
// Returns ErrTooSmall (n<2), ErrNotSquare (TwoD with n≠L·L or L<2),
// ErrUnsupportedDimension, or ErrNonFinite for a NaN/Inf coupling or field.
// Complexity: O(n) time and memory.
func New(n int, dim Dimension, opts ...Option) (*Lattice, error) {
	cfg := config{coupling: 1}
	for _, o := range opts {
		o(&cfg)
	}
	if math.IsNaN(cfg.coupling) || math.IsInf(cfg.coupling, 0) ||
		math.IsNaN(cfg.field) || math.IsInf(cfg.field, 0) {
		return nil, ErrNonFinite
	}
	if n < 2 {
		return nil, ErrTooSmall
	}

	l := &Lattice{dim: dim, coupling: cfg.coupling, field: cfg.field}
	switch dim {
	case OneD:
		l.side, l.z = n, 2
	case TwoD:
		side := int(math.Round(math.Sqrt(float64(n))))
		if side < 2 || side*side != n {
			return nil, fmt.Errorf("%w: got %d", ErrNotSquare, n)
		}
		l.side, l.z = side, 4
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDimension, int(dim))
	}

	l.spins = make([]int8, n)
	for i := range l.spins {
		l.spins[i] = 1
	}
	l.buildNeighbors()
	l.recompute()

	return l, nil
}

// buildNeighbors fills the neighbour table with periodic wrap.
// 1-D order: left, right. 2-D order: N, E, S, W.
func (l *Lattice) buildNeighbors() {
	n := len(l.spins)
	l.nbr = make([]int, n*l.z)
	if l.dim == OneD {
		for i := 0; i < n; i++ {
			l.nbr[2*i] = (i - 1 + n) % n
			l.nbr[2*i+1] = (i + 1) % n
		}

		return
	}

	L := l.side
	offsets := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for i := 0; i < n; i++ {
		x, y := l.Coordinate(i)
		for k, d := range offsets {
			nx := (x + d[0] + L) % L
			ny := (y + d[1] + L) % L
			l.nbr[4*i+k] = ny*L + nx
		}
	}
}

// Initialize resets the spins according to start and recomputes the caches.
// src is required for HotStart and ignored for ColdStart.
// Complexity: O(N).
func (l *Lattice) Initialize(start Start, src *rng.Source) {
	for i := range l.spins {
		if start == HotStart {
			l.spins[i] = src.Sign()
		} else {
			l.spins[i] = 1
		}
	}
	l.recompute()
}

// SetSpins copies spins into the lattice and recomputes the caches.
// Returns ErrSpinCount or ErrInvalidSpin without modifying state.
func (l *Lattice) SetSpins(spins []int8) error {
	if len(spins) != len(l.spins) {
		return fmt.Errorf("%w: got %d, want %d", ErrSpinCount, len(spins), len(l.spins))
	}
	for i, s := range spins {
		if s != 1 && s != -1 {
			return fmt.Errorf("%w: site %d has %d", ErrInvalidSpin, i, s)
		}
	}
	copy(l.spins, spins)
	l.recompute()

	return nil
}

func (l *Lattice) recompute() {
	l.energy = l.RecomputeEnergy()
	l.mag = l.RecomputeMagnetisation()
}

// EnergyDelta returns the energy change flipping site would cause:
// ΔE = 2·s_i·(J·Σ_nbr s_j + H). Reads only the site and its neighbours.
// Complexity: O(1).
func (l *Lattice) EnergyDelta(site int) float64 {
	var sum int
	base := site * l.z
	for k := 0; k < l.z; k++ {
		sum += int(l.spins[l.nbr[base+k]])
	}
	s := float64(l.spins[site])

	return 2 * s * (l.coupling*float64(sum) + l.field)
}

// Flip toggles site and updates the cached energy and magnetisation.
// Returns the applied ΔE.
// Complexity: O(1).
func (l *Lattice) Flip(site int) float64 {
	dE := l.EnergyDelta(site)
	l.ApplyFlip(site, dE)

	return dE
}

// ApplyFlip toggles site using a ΔE the caller already obtained from
// EnergyDelta on the current state, skipping the second neighbour scan.
// Passing any other value corrupts the cached energy.
// Complexity: O(1).
func (l *Lattice) ApplyFlip(site int, dE float64) {
	l.spins[site] = -l.spins[site]
	l.energy += dE
	l.mag += 2 * float64(l.spins[site])
}

// RecomputeEnergy evaluates the total energy from scratch, each bond once:
// the right neighbour in 1-D, the east and south neighbours in 2-D.
// Complexity: O(N).
func (l *Lattice) RecomputeEnergy() float64 {
	var bonds, total int
	for i, s := range l.spins {
		base := i * l.z
		if l.dim == OneD {
			bonds += int(s) * int(l.spins[l.nbr[base+1]])
		} else {
			bonds += int(s) * int(l.spins[l.nbr[base+1]])
			bonds += int(s) * int(l.spins[l.nbr[base+2]])
		}
		total += int(s)
	}

	return -l.coupling*float64(bonds) - l.field*float64(total)
}

// RecomputeMagnetisation sums all spins from scratch.
// Complexity: O(N).
func (l *Lattice) RecomputeMagnetisation() float64 {
	var total int
	for _, s := range l.spins {
		total += int(s)
	}

	return float64(total)
}

// Energy returns the cached total energy.
func (l *Lattice) Energy() float64 { return l.energy }

// Magnetisation returns the cached total magnetisation Σ s_i.
func (l *Lattice) Magnetisation() float64 { return l.mag }

// Len returns the number of sites N.
func (l *Lattice) Len() int { return len(l.spins) }

// Side returns L for a 2-D lattice, N for a chain.
func (l *Lattice) Side() int { return l.side }

// Dimension returns the lattice topology.
func (l *Lattice) Dimension() Dimension { return l.dim }

// Coupling returns J.
func (l *Lattice) Coupling() float64 { return l.coupling }

// Field returns H.
func (l *Lattice) Field() float64 { return l.field }

// Spin returns the spin at site.
func (l *Lattice) Spin(site int) int8 { return l.spins[site] }

// Spins returns a copy of the configuration.
func (l *Lattice) Spins() []int8 {
	out := make([]int8, len(l.spins))
	copy(out, l.spins)

	return out
}

// Neighbors returns a copy of the neighbour indices of site.
func (l *Lattice) Neighbors(site int) []int {
	out := make([]int, l.z)
	copy(out, l.nbr[site*l.z:(site+1)*l.z])

	return out
}

// Coordinate converts a row-major index to (x,y). For a chain y is always 0.
// Complexity: O(1).
func (l *Lattice) Coordinate(idx int) (x, y int) {
	return idx % l.side, idx / l.side
}
