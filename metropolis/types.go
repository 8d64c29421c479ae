package metropolis

import (
	"errors"
	"fmt"
)

// MaxExponent bounds β·ΔE before exp is evaluated; exp(-700) is already far
// below the smallest positive u that Uniform01 can draw.
const MaxExponent = 700.0

// Sentinel errors for sampler configuration and runtime checks.
var (
	// ErrNilLattice indicates a nil lattice was passed to NewSampler.
	ErrNilLattice = errors.New("metropolis: lattice is nil")
	// ErrNilSource indicates a nil random source was passed to NewSampler.
	ErrNilSource = errors.New("metropolis: random source is nil")
	// ErrInvalidBeta indicates a negative, NaN or infinite inverse temperature.
	ErrInvalidBeta = errors.New("metropolis: beta must be finite and >= 0")
	// ErrInvalidSchedule indicates a schedule that cannot produce samples.
	ErrInvalidSchedule = errors.New("metropolis: invalid schedule")
	// ErrNonFinite indicates the cached energy or magnetisation became NaN/Inf.
	ErrNonFinite = errors.New("metropolis: non-finite energy or magnetisation")
)

// Mode selects how a sweep chooses sites.
type Mode int

const (
	// RandomSite proposes N flips at uniformly random sites.
	RandomSite Mode = iota
	// Sequential proposes one flip per site, in a fresh random order each sweep.
	Sequential
)

// String returns "random" or "sequential".
func (m Mode) String() string {
	if m == Sequential {
		return "sequential"
	}

	return "random"
}

// Schedule is the sweep protocol for one temperature point.
//   - Equilibration - sweeps discarded before measuring (≥ 0).
//   - Measurement   - sweeps during which samples are taken (≥ 1).
//   - SampleStride  - sweeps between samples (1 ≤ SampleStride ≤ Measurement).
type Schedule struct {
	Equilibration int
	Measurement   int
	SampleStride  int
}

// Validate reports ErrInvalidSchedule (wrapped with the offending field) when the
// schedule would take no samples or has negative counts.
func (s Schedule) Validate() error {
	switch {
	case s.Equilibration < 0:
		return fmt.Errorf("%w: equilibration sweeps %d < 0", ErrInvalidSchedule, s.Equilibration)
	case s.Measurement <= 0:
		return fmt.Errorf("%w: measurement sweeps must be > 0, got %d", ErrInvalidSchedule, s.Measurement)
	case s.SampleStride <= 0:
		return fmt.Errorf("%w: sample stride must be > 0, got %d", ErrInvalidSchedule, s.SampleStride)
	case s.SampleStride > s.Measurement:
		return fmt.Errorf("%w: sample stride %d exceeds measurement sweeps %d",
			ErrInvalidSchedule, s.SampleStride, s.Measurement)
	}

	return nil
}

// Samples returns how many observations Run delivers for this schedule.
func (s Schedule) Samples() int {
	if s.SampleStride <= 0 {
		return 0
	}

	return s.Measurement / s.SampleStride
}

// Observer receives one sample of the lattice's total energy and magnetisation.
type Observer func(energy, magnetisation float64)

// Stats counts proposals since the last ResetStats.
type Stats struct {
	Proposed uint64
	Accepted uint64
}

// AcceptanceRate returns Accepted/Proposed, or 0 when nothing was proposed.
func (s Stats) AcceptanceRate() float64 {
	if s.Proposed == 0 {
		return 0
	}

	return float64(s.Accepted) / float64(s.Proposed)
}
