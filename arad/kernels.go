package arad

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/katalvlaran/qmlkit/matrix"
)

// Kernel defaults.
const (
	DefaultWidth  = 0.2
	DefaultRWidth = 1.0
	DefaultCWidth = 0.5
)

// Option configures the ARAD kernels.
type Option func(*config)

type config struct {
	width, cut     float64
	rWidth, cWidth float64
	kopts          []kernel.Option
}

// WithWidth sets the radial Gaussian width. Panics unless positive.
func WithWidth(w float64) Option {
	if !(w > 0) {
		panic("arad: WithWidth requires w > 0")
	}

	return func(c *config) { c.width = w }
}

// WithCut sets the neighbor cutoff used by the kernels. Panics unless positive.
func WithCut(cut float64) Option {
	if !(cut > 0) {
		panic("arad: WithCut requires cut > 0")
	}

	return func(c *config) { c.cut = cut }
}

// WithElementWidths sets the row and column widths of the element
// similarity. Panics unless both are positive.
func WithElementWidths(row, col float64) Option {
	if !(row > 0) || !(col > 0) {
		panic("arad: WithElementWidths requires positive widths")
	}

	return func(c *config) { c.rWidth, c.cWidth = row, col }
}

// WithWorkers bounds the kernel row parallelism.
func WithWorkers(n int) Option {
	ko := kernel.WithWorkers(n)

	return func(c *config) { c.kopts = append(c.kopts, ko) }
}

// WithLogger attaches a debug logger to the kernel engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.kopts = append(c.kopts, kernel.WithLogger(l)) }
}

func gather(opts []Option) config {
	c := config{width: DefaultWidth, cut: DefaultCut, rWidth: DefaultRWidth, cWidth: DefaultCWidth}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// env is one atom environment restricted to neighbors within the cut, with
// taper weights precomputed.
type env struct {
	d, row, col, cs, sn, s []float64
}

func (c config) env(a Atom) env {
	n := 0
	for n < a.Size() && a.At(0, n) < c.cut {
		n++
	}
	e := env{
		d: make([]float64, n), row: make([]float64, n), col: make([]float64, n),
		cs: make([]float64, n), sn: make([]float64, n), s: make([]float64, n),
	}
	for m := 0; m < n; m++ {
		e.d[m] = a.At(0, m)
		e.row[m], e.col[m] = a.At(1, m), a.At(2, m)
		e.cs[m], e.sn[m] = a.At(3, m), a.At(4, m)
		e.s[m] = 1 - math.Sin(math.Pi*e.d[m]/(2*c.cut))
	}

	return e
}

// elementScale is rw²/(rw² + Δrow²) · cw²/(cw² + Δcol²).
func (c config) elementScale(r1, c1, r2, c2 float64) float64 {
	rw2, cw2 := c.rWidth*c.rWidth, c.cWidth*c.cWidth

	return rw2 / (rw2 + (r1-r2)*(r1-r2)) * cw2 / (cw2 + (c1-c2)*(c1-c2))
}

// overlap is the scalar similarity of two atoms:
//
//	Σ_{m,n} exp(−Δd²/(4w²))·s_m·s_n·scale(m, n)·(1 + cos_m cos_n + sin_m sin_n)
//
// over neighbor pairs with Δd² < (8w)², times the scale of the two centres.
func (c config) overlap(a, b env) float64 {
	if len(a.d) == 0 || len(b.d) == 0 {
		return 0
	}
	inv := -1 / (4 * c.width * c.width)
	maxd2 := 64 * c.width * c.width
	var sum float64
	for m := range a.d {
		for n := range b.d {
			r2 := (a.d[m] - b.d[n]) * (a.d[m] - b.d[n])
			if r2 >= maxd2 {
				continue
			}
			v := math.Exp(r2*inv) * a.s[m] * b.s[n]
			v *= c.elementScale(a.row[m], a.col[m], b.row[n], b.col[n])
			sum += v * (1 + a.cs[m]*b.cs[n] + a.sn[m]*b.sn[n])
		}
	}

	return sum * c.elementScale(a.row[0], a.col[0], b.row[0], b.col[0])
}

// engine maps exp(−l2/σ²) onto the gaussian family exp(−l2/(2σ'²)) with
// σ' = σ/√2.
func (c config) engine(sigmas []float64) (*kernel.Engine[env], error) {
	if len(sigmas) == 0 {
		return nil, fmt.Errorf("no sigmas: %w", ErrConfiguration)
	}
	scaled := make([]float64, len(sigmas))
	for i, s := range sigmas {
		if !(s > 0) {
			return nil, fmt.Errorf("sigma %g: %w", s, ErrConfiguration)
		}
		scaled[i] = s / math.Sqrt2
	}
	e, err := kernel.NewEngine(kernel.Metric[env]{Dot: c.overlap}, kernel.Gaussian, kernel.Sigmas(scaled...), c.kopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return e, nil
}

func (c config) molecules(tag string, size int, reps []*Representation) ([][]env, error) {
	if len(reps) == 0 {
		return nil, aradErrorf(tag, kernel.ErrEmptyInput)
	}
	out := make([][]env, len(reps))
	for i, r := range reps {
		if r == nil || r.Size() != size {
			return nil, aradErrorf(tag, fmt.Errorf("molecule %d: %w", i, ErrShapeMismatch))
		}
		atoms := r.Atoms()
		out[i] = make([]env, len(atoms))
		for a, at := range atoms {
			out[i][a] = c.env(at)
		}
	}

	return out, nil
}

func (c config) atoms(tag string, size int, atoms []Atom) ([]env, error) {
	if len(atoms) == 0 {
		return nil, aradErrorf(tag, kernel.ErrEmptyInput)
	}
	out := make([]env, len(atoms))
	for i, a := range atoms {
		if a.r == nil || a.Size() != size {
			return nil, aradErrorf(tag, fmt.Errorf("atom %d: %w", i, ErrShapeMismatch))
		}
		out[i] = c.env(a)
	}

	return out, nil
}

func firstSize(reps []*Representation) int {
	if len(reps) == 0 || reps[0] == nil {
		return 0
	}

	return reps[0].Size()
}

type level int

const (
	levelGlobal level = iota
	levelLocal
)

func molecular(tag string, lvl level, x1, x2 []*Representation, sigmas []float64, opts []Option) ([]*matrix.Dense, error) {
	c := gather(opts)
	size := firstSize(x1)
	a, err := c.molecules(tag, size, x1)
	if err != nil {
		return nil, err
	}
	var b [][]env
	if x2 != nil {
		if b, err = c.molecules(tag, size, x2); err != nil {
			return nil, err
		}
	}
	e, err := c.engine(sigmas)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}

	var out []*matrix.Dense
	switch {
	case lvl == levelGlobal && b == nil:
		out, err = e.GlobalSymmetric(a)
	case lvl == levelGlobal:
		out, err = e.Global(a, b)
	case b == nil:
		out, err = e.LocalSymmetric(a)
	default:
		out, err = e.Local(a, b)
	}
	if err != nil {
		return nil, aradErrorf(tag, err)
	}

	return out, nil
}

// Kernels returns the global kernels between two sets: molecules are compared
// through their summed atom overlaps. One matrix per sigma.
func Kernels(x1, x2 []*Representation, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	if x2 == nil {
		return nil, aradErrorf("Kernels", kernel.ErrEmptyInput)
	}
	return molecular("Kernels", levelGlobal, x1, x2, sigmas, opts)
}

// SymmetricKernels is Kernels(x, x) evaluating one triangle.
func SymmetricKernels(x []*Representation, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	return molecular("SymmetricKernels", levelGlobal, x, nil, sigmas, opts)
}

// LocalKernels returns K[I][J] = Σ_{a∈I} Σ_{b∈J} exp(−l2(a, b)/σ²).
func LocalKernels(x1, x2 []*Representation, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	if x2 == nil {
		return nil, aradErrorf("LocalKernels", kernel.ErrEmptyInput)
	}
	return molecular("LocalKernels", levelLocal, x1, x2, sigmas, opts)
}

// LocalSymmetricKernels is LocalKernels(x, x) evaluating one triangle.
func LocalSymmetricKernels(x []*Representation, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	return molecular("LocalSymmetricKernels", levelLocal, x, nil, sigmas, opts)
}

// AtomicKernels returns atom-by-atom kernels, for atomic properties.
func AtomicKernels(a1, a2 []Atom, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	const tag = "AtomicKernels"
	c := gather(opts)
	if len(a1) == 0 || len(a2) == 0 {
		return nil, aradErrorf(tag, kernel.ErrEmptyInput)
	}
	size := a1[0].Size()
	x, err := c.atoms(tag, size, a1)
	if err != nil {
		return nil, err
	}
	y, err := c.atoms(tag, size, a2)
	if err != nil {
		return nil, err
	}
	e, err := c.engine(sigmas)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}
	out, err := e.Atomic(x, y)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}

	return out, nil
}

// AtomicSymmetricKernels is AtomicKernels(a, a) evaluating one triangle.
func AtomicSymmetricKernels(a []Atom, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	const tag = "AtomicSymmetricKernels"
	c := gather(opts)
	if len(a) == 0 {
		return nil, aradErrorf(tag, kernel.ErrEmptyInput)
	}
	x, err := c.atoms(tag, a[0].Size(), a)
	if err != nil {
		return nil, err
	}
	e, err := c.engine(sigmas)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}
	out, err := e.AtomicSymmetric(x)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}

	return out, nil
}
