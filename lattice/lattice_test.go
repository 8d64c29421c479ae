package lattice_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ising/lattice"
	"github.com/katalvlaran/ising/rng"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects bad sizes, dimensions and parameters.
func TestNew_Errors(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name string
		n    int
		dim  lattice.Dimension
		opts []lattice.Option
		err  error
	}{
		{"Zero", 0, lattice.OneD, nil, lattice.ErrTooSmall},
		{"One", 1, lattice.OneD, nil, lattice.ErrTooSmall},
		{"NotSquare", 10, lattice.TwoD, nil, lattice.ErrNotSquare},
		{"SquareOfOne", 1, lattice.TwoD, nil, lattice.ErrTooSmall},
		{"ThreeD", 27, lattice.Dimension(3), nil, lattice.ErrUnsupportedDimension},
		{"NaNCoupling", 8, lattice.OneD, []lattice.Option{lattice.WithCoupling(nan)}, lattice.ErrNonFinite},
		{"NaNField", 8, lattice.OneD, []lattice.Option{lattice.WithField(nan)}, lattice.ErrNonFinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lattice.New(tc.n, tc.dim, tc.opts...)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(%d, %v) error = %v; want %v", tc.n, tc.dim, err, tc.err)
			}
		})
	}
}

// TestNeighbors_Periodic checks the wrap-around neighbour tables.
func TestNeighbors_Periodic(t *testing.T) {
	chain, err := lattice.New(5, lattice.OneD)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1}, chain.Neighbors(0))
	assert.Equal(t, []int{3, 0}, chain.Neighbors(4))

	sq, err := lattice.New(9, lattice.TwoD)
	require.NoError(t, err)
	require.Equal(t, 3, sq.Side())
	// Site 0 = (0,0): N=(0,2)=6, E=(1,0)=1, S=(0,1)=3, W=(2,0)=2.
	assert.Equal(t, []int{6, 1, 3, 2}, sq.Neighbors(0))
	// Site 8 = (2,2): N=5, E=(0,2)=6, S=(2,0)=2, W=7.
	assert.Equal(t, []int{5, 6, 2, 7}, sq.Neighbors(8))
	x, y := sq.Coordinate(7)
	assert.Equal(t, [2]int{1, 2}, [2]int{x, y})
}

//----------------------------------------------------------------------------//
// Cache consistency
//----------------------------------------------------------------------------//

// TestInitialize_CacheMatchesRecompute covers every N in [2,40] for both starts:
// the cached energy must equal a from-scratch evaluation exactly.
func TestInitialize_CacheMatchesRecompute(t *testing.T) {
	src := rng.New(11)
	for n := 2; n <= 40; n++ {
		l, err := lattice.New(n, lattice.OneD)
		require.NoError(t, err)
		for _, start := range []lattice.Start{lattice.HotStart, lattice.ColdStart} {
			l.Initialize(start, src)
			require.Equal(t, l.RecomputeEnergy(), l.Energy(), "n=%d start=%v", n, start)
			require.Equal(t, l.RecomputeMagnetisation(), l.Magnetisation(), "n=%d start=%v", n, start)
		}
	}
}

// TestColdStart_GroundState checks E/N = -z/2·J and M/N = 1 for aligned spins.
func TestColdStart_GroundState(t *testing.T) {
	chain, err := lattice.New(64, lattice.OneD)
	require.NoError(t, err)
	chain.Initialize(lattice.ColdStart, nil)
	assert.Equal(t, -64.0, chain.Energy())
	assert.Equal(t, 64.0, chain.Magnetisation())

	sq, err := lattice.New(16, lattice.TwoD, lattice.WithCoupling(0.5))
	require.NoError(t, err)
	sq.Initialize(lattice.ColdStart, nil)
	assert.Equal(t, -16.0, sq.Energy()) // 2 bonds per site × J=0.5
}

// TestTwoSiteChain pins the periodic double-bond convention for N=2.
func TestTwoSiteChain(t *testing.T) {
	l, err := lattice.New(2, lattice.OneD)
	require.NoError(t, err)
	l.Initialize(lattice.ColdStart, nil)
	assert.Equal(t, -2.0, l.Energy())
	assert.Equal(t, 4.0, l.EnergyDelta(0))
	l.Flip(0)
	assert.Equal(t, 2.0, l.Energy())
	assert.Equal(t, 0.0, l.Magnetisation())
}

// TestFlip_IncrementalMatchesRecompute performs many random flips and checks
// after each that the incremental caches equal the ground truth.
func TestFlip_IncrementalMatchesRecompute(t *testing.T) {
	cases := []struct {
		name string
		n    int
		dim  lattice.Dimension
		opts []lattice.Option
	}{
		{"Chain64", 64, lattice.OneD, nil},
		{"Chain3", 3, lattice.OneD, nil},
		{"Square8x8", 64, lattice.TwoD, nil},
		{"Square2x2", 4, lattice.TwoD, nil},
		{"ChainWithField", 33, lattice.OneD, []lattice.Option{lattice.WithCoupling(0.75), lattice.WithField(0.3)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := rng.New(99)
			l, err := lattice.New(tc.n, tc.dim, tc.opts...)
			require.NoError(t, err)
			l.Initialize(lattice.HotStart, src)
			for step := 0; step < 5000; step++ {
				site := src.UniformIndex(l.Len())
				before := l.Energy()
				dE := l.EnergyDelta(site)
				applied := l.Flip(site)
				require.Equal(t, dE, applied)
				require.InDelta(t, before+dE, l.Energy(), 1e-12)
				require.InDelta(t, l.RecomputeEnergy(), l.Energy(), 1e-9, "step %d", step)
				require.Equal(t, l.RecomputeMagnetisation(), l.Magnetisation(), "step %d", step)
			}
		})
	}
}

// TestFlip_Involution checks that flipping the same site twice restores state.
func TestFlip_Involution(t *testing.T) {
	src := rng.New(5)
	l, err := lattice.New(25, lattice.TwoD)
	require.NoError(t, err)
	l.Initialize(lattice.HotStart, src)
	spins, e, m := l.Spins(), l.Energy(), l.Magnetisation()
	l.Flip(12)
	l.Flip(12)
	assert.Equal(t, spins, l.Spins())
	assert.Equal(t, e, l.Energy())
	assert.Equal(t, m, l.Magnetisation())
}

// TestApplyFlip_MatchesFlip drives two identical lattices, one through Flip and
// one through EnergyDelta+ApplyFlip, and expects identical caches.
func TestApplyFlip_MatchesFlip(t *testing.T) {
	a, err := lattice.New(36, lattice.TwoD, lattice.WithField(0.3))
	require.NoError(t, err)
	b, err := lattice.New(36, lattice.TwoD, lattice.WithField(0.3))
	require.NoError(t, err)
	a.Initialize(lattice.HotStart, rng.New(11))
	b.Initialize(lattice.HotStart, rng.New(11))

	sites := rng.New(12)
	for k := 0; k < 2000; k++ {
		site := sites.UniformIndex(a.Len())
		want := a.Flip(site)
		dE := b.EnergyDelta(site)
		require.Equal(t, want, dE)
		b.ApplyFlip(site, dE)
	}
	assert.Equal(t, a.Spins(), b.Spins())
	assert.Equal(t, a.Energy(), b.Energy())
	assert.Equal(t, a.Magnetisation(), b.Magnetisation())
	assert.InDelta(t, b.RecomputeEnergy(), b.Energy(), 1e-9)
}

//----------------------------------------------------------------------------//
// SetSpins
//----------------------------------------------------------------------------//

// TestSetSpins validates input and recomputes caches.
func TestSetSpins(t *testing.T) {
	l, err := lattice.New(4, lattice.OneD)
	require.NoError(t, err)

	require.ErrorIs(t, l.SetSpins([]int8{1, 1}), lattice.ErrSpinCount)
	require.ErrorIs(t, l.SetSpins([]int8{1, 0, 1, 1}), lattice.ErrInvalidSpin)
	assert.Equal(t, 4.0, l.Magnetisation(), "rejected input must not change state")

	// Antiferromagnetic ring: every bond is frustrated for J>0.
	require.NoError(t, l.SetSpins([]int8{1, -1, 1, -1}))
	assert.Equal(t, 4.0, l.Energy())
	assert.Equal(t, 0.0, l.Magnetisation())
	assert.Equal(t, int8(-1), l.Spin(3))
}
