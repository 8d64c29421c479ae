package metropolis

import (
	"context"
	"math"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/rng"
)

// Accept applies the Metropolis criterion to an energy change dE at inverse
// temperature beta, using the uniform draw u ∈ [0,1).
// Complexity: O(1); at most one exp call.
func Accept(beta, dE, u float64) bool {
	if dE <= 0 {
		return true
	}
	x := beta * dE
	if x > MaxExponent {
		return false
	}

	return u < math.Exp(-x)
}

// Sampler performs Metropolis sweeps on a lattice at a fixed beta.
type Sampler struct {
	lat   *lattice.Lattice
	src   *rng.Source
	beta  float64
	mode  Mode
	order []int
	stats Stats
}

// NewSampler binds a lattice and random source at inverse temperature beta.
// Returns ErrNilLattice, ErrNilSource or ErrInvalidBeta.
func NewSampler(lat *lattice.Lattice, src *rng.Source, beta float64, mode Mode) (*Sampler, error) {
	if lat == nil {
		return nil, ErrNilLattice
	}
	if src == nil {
		return nil, ErrNilSource
	}
	s := &Sampler{lat: lat, src: src, mode: mode}
	if err := s.SetBeta(beta); err != nil {
		return nil, err
	}

	return s, nil
}

// SetBeta changes the inverse temperature; the lattice is left as is.
func (s *Sampler) SetBeta(beta float64) error {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return ErrInvalidBeta
	}
	s.beta = beta

	return nil
}

// Beta returns the current inverse temperature.
func (s *Sampler) Beta() float64 { return s.beta }

// Lattice returns the sampled lattice.
func (s *Sampler) Lattice() *lattice.Lattice { return s.lat }

// Step proposes flipping site and applies it if accepted.
// The uniform draw is consumed only for unfavourable moves.
func (s *Sampler) Step(site int) bool {
	s.stats.Proposed++
	dE := s.lat.EnergyDelta(site)
	if dE > 0 && !Accept(s.beta, dE, s.src.Uniform01()) {
		return false
	}
	s.lat.ApplyFlip(site, dE)
	s.stats.Accepted++

	return true
}

// Sweep performs N proposals according to the sampler's Mode and returns the
// number of accepted flips. Sequential reshuffles its visiting order every sweep.
// Complexity: O(N).
func (s *Sampler) Sweep() int {
	n := s.lat.Len()
	var accepted int
	if s.mode == Sequential {
		for _, site := range s.visitOrder(n) {
			if s.Step(site) {
				accepted++
			}
		}

		return accepted
	}
	for k := 0; k < n; k++ {
		if s.Step(s.src.UniformIndex(n)) {
			accepted++
		}
	}

	return accepted
}

// visitOrder returns a fresh random permutation of [0,n).
func (s *Sampler) visitOrder(n int) []int {
	if len(s.order) != n {
		s.order = make([]int, n)
		for i := range s.order {
			s.order[i] = i
		}
	}
	s.src.Shuffle(s.order)

	return s.order
}

// Equilibrate performs sweeps discarded sweeps, checking ctx between sweeps.
func (s *Sampler) Equilibrate(ctx context.Context, sweeps int) error {
	for k := 0; k < sweeps; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Sweep()
	}

	return nil
}

// Measure performs sched.Measurement sweeps and hands the cached observables to
// obs every sched.SampleStride sweeps. Returns ErrNonFinite if a sample is NaN/Inf.
func (s *Sampler) Measure(ctx context.Context, sched Schedule, obs Observer) error {
	if err := sched.Validate(); err != nil {
		return err
	}
	for k := 1; k <= sched.Measurement; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Sweep()
		if k%sched.SampleStride != 0 {
			continue
		}
		e, m := s.lat.Energy(), s.lat.Magnetisation()
		if math.IsNaN(e) || math.IsInf(e, 0) || math.IsNaN(m) || math.IsInf(m, 0) {
			return ErrNonFinite
		}
		if obs != nil {
			obs(e, m)
		}
	}

	return nil
}

// Run validates sched, equilibrates, resets the acceptance counters and then
// measures. Stats afterwards describe the measurement phase only.
// A nil ctx is treated as context.Background().
func (s *Sampler) Run(ctx context.Context, sched Schedule, obs Observer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sched.Validate(); err != nil {
		return err
	}
	if err := s.Equilibrate(ctx, sched.Equilibration); err != nil {
		return err
	}
	s.ResetStats()

	return s.Measure(ctx, sched, obs)
}

// Stats returns proposal counters since the last ResetStats.
func (s *Sampler) Stats() Stats { return s.stats }

// AcceptanceRate is shorthand for Stats().AcceptanceRate().
func (s *Sampler) AcceptanceRate() float64 { return s.stats.AcceptanceRate() }

// ResetStats zeroes the proposal counters.
func (s *Sampler) ResetStats() { s.stats = Stats{} }
