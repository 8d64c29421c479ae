// Package observable accumulates energy and magnetisation samples for one
// temperature point and turns them into per-site thermodynamic observables.
//
// With count samples of total energy E and total magnetisation M on N sites:
//
//	Energy           = ΣE / (count·N)
//	Magnetisation    = ΣM / (count·N)                 (signed)
//	AbsMagnetisation = Σ|M| / (count·N)
//	SpecificHeat     = β²·(⟨E²⟩ − ⟨E⟩²) / N
//	Susceptibility   = β·(⟨M²⟩ − ⟨|M|⟩²) / N
//
// Variances are clamped at zero so rounding never yields a negative value.
package observable
