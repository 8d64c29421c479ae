// Package rng supplies the deterministic random streams used by the Monte Carlo
// sampler: uniform reals in [0,1), uniform site indices in [0,n) and random
// spin signs.
//
// Determinism policy:
//
//   - seed==0 maps to a fixed default seed, so the zero Options value is reproducible.
//   - Derive(seed, stream) mixes a base seed and a stream id (SplitMix64 finalizer)
//     into an independent seed, giving each temperature point its own stream no
//     matter which worker runs it or in which order.
//
// Concurrency:
//
//	A *Source wraps a math/rand.Rand and is NOT goroutine-safe. Create one per
//	worker or per temperature point; never share it.
//
// Usage:
//
//	src := rng.Derive(opts.Seed, uint64(i))
//	site := src.UniformIndex(n)
//	if src.Uniform01() < p { ... }
package rng
