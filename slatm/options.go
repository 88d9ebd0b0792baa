package slatm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default SLATM parameters.
const (
	DefaultSigma2   = 0.05
	DefaultSigma3   = 0.05
	DefaultGrid2    = 0.03
	DefaultGrid3    = 0.03
	DefaultCutoff   = 4.8
	DefaultRPower   = 6.0
	defaultRadialR0 = 0.1
)

// Option configures BuildCatalog, Generate and GenerateLocal.
type Option func(*options)

type options struct {
	sigma2, sigma3 float64
	grid2, grid3   float64
	rcut           float64
	rpower         float64
	alchemy        bool
	periodic       bool
}

// WithSigmas sets the Gaussian widths of the 2- and 3-body spectra.
// Panics unless both are positive and finite.
func WithSigmas(s2, s3 float64) Option {
	if !positive(s2) || !positive(s3) {
		panic("slatm: WithSigmas requires positive finite widths")
	}

	return func(o *options) { o.sigma2, o.sigma3 = s2, s3 }
}

// WithGrids sets the radial (Å) and angular (rad) grid spacings.
// Panics unless both are positive and finite.
func WithGrids(d2, d3 float64) Option {
	if !positive(d2) || !positive(d3) {
		panic("slatm: WithGrids requires positive finite spacings")
	}

	return func(o *options) { o.grid2, o.grid3 = d2, d3 }
}

// WithCutoff sets the interaction radius. Panics unless rcut exceeds the
// first radial grid point.
func WithCutoff(rcut float64) Option {
	if !positive(rcut) || rcut <= defaultRadialR0 {
		panic("slatm: WithCutoff requires rcut > 0.1")
	}

	return func(o *options) { o.rcut = rcut }
}

// WithRPower sets the 2-body distance power (6 is London dispersion).
func WithRPower(p float64) Option {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		panic("slatm: WithRPower requires a finite power")
	}

	return func(o *options) { o.rpower = p }
}

// WithAlchemy sums all terms of one arity into a shared accumulator.
func WithAlchemy() Option {
	return func(o *options) { o.alchemy = true }
}

// WithPeriodic enables periodic images (the molecule must carry a cell). For
// BuildCatalog it raises per-element counts to at least 3.
func WithPeriodic() Option {
	return func(o *options) { o.periodic = true }
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func gatherOptions(opts []Option) options {
	o := options{
		sigma2: DefaultSigma2, sigma3: DefaultSigma3,
		grid2: DefaultGrid2, grid3: DefaultGrid3,
		rcut: DefaultCutoff, rpower: DefaultRPower,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// radialGrid returns linspace(0.1, rcut, ⌊(rcut−0.1)/d⌋+1).
func (o options) radialGrid() []float64 {
	return linspace(defaultRadialR0, o.rcut, int((o.rcut-defaultRadialR0)/o.grid2)+1)
}

// angularGrid returns linspace(−20°, 200°, ⌊(220°)/d⌋+1) in radians.
func (o options) angularGrid() []float64 {
	a0 := -20 * math.Pi / 180
	a1 := math.Pi + 20*math.Pi/180

	return linspace(a0, a1, int((a1-a0)/o.grid3)+1)
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	return floats.Span(out, lo, hi)
}
