package sweep

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/metropolis"
)

// validate checks every precondition before any work starts. All failures wrap
// ErrInvalidConfiguration; lattice sentinels are joined where they apply.
func validate(beta []float64, nsites int, dim lattice.Dimension, opts Options) error {
	if len(beta) == 0 {
		return fmt.Errorf("%w: no temperature points", ErrInvalidConfiguration)
	}
	for i, b := range beta {
		if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
			return fmt.Errorf("%w: beta[%d]=%v must be finite and >= 0", ErrInvalidConfiguration, i, b)
		}
	}
	if err := opts.schedule().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if opts.Start != lattice.HotStart && opts.Start != lattice.ColdStart {
		return fmt.Errorf("%w: unknown start %d", ErrInvalidConfiguration, int(opts.Start))
	}
	if opts.Restart != Fresh && opts.Restart != Warm {
		return fmt.Errorf("%w: unknown restart policy %d", ErrInvalidConfiguration, int(opts.Restart))
	}
	if opts.Mode != metropolis.RandomSite && opts.Mode != metropolis.Sequential {
		return fmt.Errorf("%w: unknown sweep mode %d", ErrInvalidConfiguration, int(opts.Mode))
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfiguration, opts.Workers)
	}
	// Building a probe lattice reuses its size/dimension/parameter checks.
	if _, err := newLattice(nsites, dim, opts); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return nil
}

// validateOutputs enforces Npoints = len(Beta) = len(each output array).
func validateOutputs(npoints int, beta []float64, outs ...[]float64) error {
	if npoints <= 0 {
		return fmt.Errorf("%w: npoints %d <= 0", ErrInvalidConfiguration, npoints)
	}
	if len(beta) != npoints {
		return fmt.Errorf("%w: len(beta)=%d, npoints=%d", ErrInvalidConfiguration, len(beta), npoints)
	}
	for k, out := range outs {
		if len(out) != npoints {
			return fmt.Errorf("%w: output array %d has length %d, npoints=%d",
				ErrInvalidConfiguration, k, len(out), npoints)
		}
	}

	return nil
}

func newLattice(nsites int, dim lattice.Dimension, opts Options) (*lattice.Lattice, error) {
	return lattice.New(nsites, dim, lattice.WithCoupling(opts.Coupling), lattice.WithField(opts.Field))
}
