package rng

import "math/rand"

// DefaultSeed replaces a zero seed so that an unset Options.Seed still
// reproduces the same sweep.
const DefaultSeed int64 = 1

// Source is a seedable uniform random source.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed, or with DefaultSeed when seed is 0.
//
// Complexity: O(1).
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(baseSeed(seed)))}
}

// Derive returns the Source of temperature point stream under base seed.
// A point's draws depend only on (seed, stream), never on which worker runs
// it or in what order, so parallel sweeps stay reproducible.
//
// Complexity: O(1).
func Derive(seed int64, stream uint64) *Source {
	return &Source{r: rand.New(rand.NewSource(DeriveSeed(baseSeed(seed), stream)))}
}

// DeriveSeed maps (parent, stream) to the seed of one point's stream with a
// SplitMix64 round, so neighbouring point indices get unrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	const golden = 0x9e3779b97f4a7c15

	x := uint64(parent) ^ (stream + golden)
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

func baseSeed(seed int64) int64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// Uniform01 returns a pseudo-random float64 in [0,1).
func (s *Source) Uniform01() float64 {
	return s.r.Float64()
}

// UniformIndex returns a pseudo-random int in [0,n).
// n must be ≥ 1; callers (the lattice owner) guarantee it.
func (s *Source) UniformIndex(n int) int {
	return s.r.Intn(n)
}

// Sign returns +1 or -1 with equal probability.
func (s *Source) Sign() int8 {
	if s.r.Int63()&1 == 0 {
		return -1
	}

	return 1
}

// Shuffle permutes a in place (Fisher–Yates), drawing from s.
//
// Complexity: O(len(a)).
func (s *Source) Shuffle(a []int) {
	for i := len(a) - 1; i > 0; i-- {
		j := s.r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
