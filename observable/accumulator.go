package observable

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoSamples indicates Finalize was called before any Add.
	ErrNoSamples = errors.New("observable: no samples accumulated")
	// ErrInvalidSites indicates a non-positive site count at Finalize.
	ErrInvalidSites = errors.New("observable: site count must be > 0")
	// ErrNonFinite indicates a derived observable is NaN or ±Inf.
	ErrNonFinite = errors.New("observable: non-finite observable")
)

// Result is the final set of per-site observables for one temperature point.
type Result struct {
	Beta             float64
	Energy           float64
	Magnetisation    float64
	AbsMagnetisation float64
	SpecificHeat     float64
	Susceptibility   float64
	AcceptanceRate   float64
	Samples          int
}

// Accumulator keeps running sums over the measurement phase of one point.
// The zero value is ready to use.
type Accumulator struct {
	count   int
	sumE    float64
	sumE2   float64
	sumM    float64
	sumAbsM float64
	sumM2   float64
}

// Add records one sample of total energy e and total magnetisation m.
// Complexity: O(1).
func (a *Accumulator) Add(e, m float64) {
	a.count++
	a.sumE += e
	a.sumE2 += e * e
	a.sumM += m
	a.sumAbsM += math.Abs(m)
	a.sumM2 += m * m
}

// Count returns the number of samples recorded since the last Reset.
func (a *Accumulator) Count() int { return a.count }

// Reset clears all sums.
func (a *Accumulator) Reset() { *a = Accumulator{} }

// Finalize derives per-site observables on n sites at inverse temperature beta.
// Returns ErrNoSamples, ErrInvalidSites, or ErrNonFinite (wrapped with the quantity).
// AcceptanceRate is left for the caller to fill.
func (a *Accumulator) Finalize(n int, beta float64) (Result, error) {
	if a.count == 0 {
		return Result{}, ErrNoSamples
	}
	if n <= 0 {
		return Result{}, ErrInvalidSites
	}

	c := float64(a.count)
	sites := float64(n)
	meanE := a.sumE / c
	meanAbsM := a.sumAbsM / c

	res := Result{
		Beta:             beta,
		Energy:           meanE / sites,
		Magnetisation:    a.sumM / c / sites,
		AbsMagnetisation: meanAbsM / sites,
		SpecificHeat:     beta * beta * nonNegative(a.sumE2/c-meanE*meanE) / sites,
		Susceptibility:   beta * nonNegative(a.sumM2/c-meanAbsM*meanAbsM) / sites,
		Samples:          a.count,
	}

	checks := [...]struct {
		name string
		v    float64
	}{
		{"energy", res.Energy},
		{"magnetisation", res.Magnetisation},
		{"specific heat", res.SpecificHeat},
		{"susceptibility", res.Susceptibility},
	}
	for _, q := range checks {
		if math.IsNaN(q.v) || math.IsInf(q.v, 0) {
			return Result{}, fmt.Errorf("%w: %s", ErrNonFinite, q.name)
		}
	}

	return res, nil
}

// nonNegative clamps rounding noise in a variance estimate.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}

	return v
}
