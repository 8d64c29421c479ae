package lattice

import "errors"

// Sentinel errors for lattice construction and state loading.
var (
	// ErrTooSmall indicates fewer than two sites were requested.
	ErrTooSmall = errors.New("lattice: need at least 2 sites")
	// ErrNotSquare indicates a 2-D site count that is not L·L with L ≥ 2.
	ErrNotSquare = errors.New("lattice: 2-D site count must be a perfect square")
	// ErrUnsupportedDimension indicates a Dimension other than OneD or TwoD.
	ErrUnsupportedDimension = errors.New("lattice: unsupported dimension")
	// ErrNonFinite indicates a NaN or ±Inf coupling or field.
	ErrNonFinite = errors.New("lattice: coupling and field must be finite")
	// ErrSpinCount indicates SetSpins received the wrong number of spins.
	ErrSpinCount = errors.New("lattice: spin count does not match lattice size")
	// ErrInvalidSpin indicates a spin value other than -1 or +1.
	ErrInvalidSpin = errors.New("lattice: spin must be -1 or +1")
)

// Dimension selects the lattice topology.
type Dimension int

const (
	// OneD is a periodic chain.
	OneD Dimension = iota + 1
	// TwoD is a periodic square lattice.
	TwoD
)

// String returns "1D" or "2D".
func (d Dimension) String() string {
	switch d {
	case OneD:
		return "1D"
	case TwoD:
		return "2D"
	default:
		return "unknown"
	}
}

// Start selects the initial spin configuration.
type Start int

const (
	// HotStart draws every spin independently, ±1 with equal probability.
	HotStart Start = iota
	// ColdStart aligns every spin to +1 (the ordered ground state for J > 0, H ≥ 0).
	ColdStart
)

// String returns "hot" or "cold".
func (s Start) String() string {
	if s == ColdStart {
		return "cold"
	}

	return "hot"
}

// Option configures a Lattice at construction.
type Option func(*config)

type config struct {
	coupling float64
	field    float64
}

// WithCoupling sets the nearest-neighbour coupling J (ferromagnetic if J > 0).
func WithCoupling(j float64) Option {
	return func(c *config) { c.coupling = j }
}

// WithField sets the uniform external field H.
func WithField(h float64) Option {
	return func(c *config) { c.field = h }
}
