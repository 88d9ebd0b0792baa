// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy used by
// Eigen-based helpers and comparisons. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry validation before Jacobi, IsSymmetric).
	DefaultEpsilon = 1e-9

	// DefaultEigenTolerance is the absolute off-diagonal threshold at which
	// Jacobi rotations stop.
	DefaultEigenTolerance = 1e-12

	// DefaultEigenSweeps scales the rotation budget: maxIter = sweeps·n².
	DefaultEigenSweeps = 64
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicToleranceInvalid = "matrix: WithEigenTolerance: tol must be finite, > 0"
	panicMaxIterInvalid   = "matrix: WithMaxIter: maxIter must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps     float64 // >= 0; DefaultEpsilon
	tol     float64 // > 0; DefaultEigenTolerance
	maxIter int     // 0 means DefaultEigenSweeps·n²
}

// WithEpsilon sets the symmetry tolerance.
func WithEpsilon(eps float64) Option {
	if eps < 0 || eps != eps || eps > 1e300 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithEigenTolerance sets the Jacobi convergence threshold.
func WithEigenTolerance(tol float64) Option {
	if !(tol > 0) || tol > 1e300 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIter caps the number of Jacobi rotations.
func WithMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxIter }
}

// gatherOptions applies opts over defaults; n is the matrix order used to
// derive the rotation budget when none was given.
func gatherOptions(n int, opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, tol: DefaultEigenTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxIter == 0 {
		o.maxIter = DefaultEigenSweeps * (n*n + 1)
	}

	return o
}
