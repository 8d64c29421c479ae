package sweep

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/metropolis"
)

// Sentinel errors returned by Run and Simulate; match with errors.Is.
var (
	// ErrInvalidConfiguration indicates inputs that cannot be simulated.
	ErrInvalidConfiguration = errors.New("sweep: invalid configuration")
	// ErrNumericInstability indicates a non-finite or inconsistent observable mid-run.
	ErrNumericInstability = errors.New("sweep: numeric instability")
)

// Defaults for Options. Sweep counts are in sweeps (N proposals each).
const (
	DefaultEquilibration = 1000
	DefaultMeasurement   = 5000
	DefaultSampleStride  = 1
	DefaultCoupling      = 1.0
)

// Restart selects what the lattice holds at the start of each point.
type Restart int

const (
	// Fresh re-initializes the lattice at every point (no history across Beta).
	Fresh Restart = iota
	// Warm carries the previous point's final configuration into the next point.
	// Points then depend on each other and run sequentially in Beta order.
	Warm
)

// String returns "fresh" or "warm".
func (r Restart) String() string {
	if r == Warm {
		return "warm"
	}

	return "fresh"
}

// Options configures a sweep. Start from DefaultOptions: the zero value has
// Coupling=0 (free spins) and no measurement sweeps.
//
// Fields:
//   - Equilibration - sweeps discarded per point before measuring.
//   - Measurement   - sweeps measured per point (> 0).
//   - SampleStride  - sweeps between samples (1..Measurement).
//   - Seed          - base seed; 0 means rng.DefaultSeed.
//   - Start         - HotStart (random) or ColdStart (all +1) at Init.
//   - Restart       - Fresh or Warm.
//   - Mode          - RandomSite or Sequential sweeps.
//   - Workers       - parallel points; 0 means GOMAXPROCS. Ignored for Warm.
//   - Coupling      - nearest-neighbour J.
//   - Field         - external field H.
type Options struct {
	Equilibration int
	Measurement   int
	SampleStride  int
	Seed          int64
	Start         lattice.Start
	Restart       Restart
	Mode          metropolis.Mode
	Workers       int
	Coupling      float64
	Field         float64
}

// DefaultOptions returns the documented defaults: 1000 equilibration sweeps,
// 5000 measurement sweeps sampled every sweep, seed 0, hot fresh starts,
// random-site sweeps, GOMAXPROCS workers, J=1, H=0.
func DefaultOptions() Options {
	return Options{
		Equilibration: DefaultEquilibration,
		Measurement:   DefaultMeasurement,
		SampleStride:  DefaultSampleStride,
		Start:         lattice.HotStart,
		Restart:       Fresh,
		Mode:          metropolis.RandomSite,
		Coupling:      DefaultCoupling,
	}
}

func (o Options) schedule() metropolis.Schedule {
	return metropolis.Schedule{
		Equilibration: o.Equilibration,
		Measurement:   o.Measurement,
		SampleStride:  o.SampleStride,
	}
}

// Phase names a step of the per-point state machine.
type Phase int

const (
	// PhaseInit builds and initialises the point's lattice.
	PhaseInit Phase = iota
	// PhaseEquilibrate runs the discarded sweeps.
	PhaseEquilibrate
	// PhaseMeasure runs the sampled sweeps.
	PhaseMeasure
	// PhaseFinalize turns the accumulated sums into per-site observables.
	PhaseFinalize
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseEquilibrate:
		return "equilibrate"
	case PhaseMeasure:
		return "measure"
	case PhaseFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// PointError reports the temperature point and phase where a sweep failed.
type PointError struct {
	Index int
	Beta  float64
	Phase Phase
	Err   error
}

// Error formats the point index, Beta, phase and cause.
func (e *PointError) Error() string {
	return fmt.Sprintf("sweep: point %d (beta=%g) failed in %s: %v", e.Index, e.Beta, e.Phase, e.Err)
}

// Unwrap returns the cause so errors.Is matches the sweep sentinels.
func (e *PointError) Unwrap() error { return e.Err }
