package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/matrix"
	"golang.org/x/sync/errgroup"
)

// Metric compares two atom environments.
//
// Dot is required and must be symmetric. SqDist and L1 are optional; without
// SqDist the squared distance is derived as Dot(a,a) + Dot(b,b) - 2·Dot(a,b)
// (clamped at zero), and without L1 the laplacian family uses sqrt(d2).
type Metric[E any] struct {
	Dot    func(a, b E) float64
	SqDist func(a, b E) float64
	L1     func(a, b E) float64
}

// Engine evaluates kernel matrices for one family and its hyperparameter
// sets. It holds no mutable state and is safe for concurrent use.
type Engine[E any] struct {
	metric Metric[E]
	tr     *Transform
	opts   options
}

// NewEngine resolves family and params once for all later calls.
// Errors: ErrConfiguration (nil Dot, invalid family or params).
func NewEngine[E any](metric Metric[E], family Family, params Params, opts ...Option) (*Engine[E], error) {
	if metric.Dot == nil {
		return nil, kernelErrorf("NewEngine", fmt.Errorf("%w: metric has no Dot", ErrConfiguration))
	}
	tr, err := NewTransform(family, params)
	if err != nil {
		return nil, err
	}

	return &Engine[E]{metric: metric, tr: tr, opts: gatherOptions(opts...)}, nil
}

// Transform returns the resolved family/hyperparameter sets.
func (e *Engine[E]) Transform() *Transform { return e.tr }

// Len returns the number of matrices each call returns.
func (e *Engine[E]) Len() int { return e.tr.Len() }

// needSelf reports whether d2 has to be derived from self overlaps.
func (e *Engine[E]) needSelf() bool {
	nd := e.tr.needs
	wantD2 := nd.sqDist || (nd.l1 && e.metric.L1 == nil)
	return wantD2 && e.metric.SqDist == nil
}

// measure computes the base measures of one environment pair; sa and sb are
// the self overlaps (only read when needSelf).
func (e *Engine[E]) measure(a, b E, sa, sb float64) Measure {
	nd := e.tr.needs
	var m Measure
	if nd.dot {
		m.S = e.metric.Dot(a, b)
	}
	if nd.sqDist || (nd.l1 && e.metric.L1 == nil) {
		if e.metric.SqDist != nil {
			m.D2 = e.metric.SqDist(a, b)
		} else {
			s := m.S
			if !nd.dot {
				s = e.metric.Dot(a, b)
			}
			m.D2 = math.Max(0, sa+sb-2*s)
		}
	}
	if nd.l1 {
		if e.metric.L1 != nil {
			m.D1 = e.metric.L1(a, b)
		} else {
			m.D1 = math.Sqrt(m.D2)
		}
	}

	return m
}

func (e *Engine[E]) selfDots(xs []E) []float64 {
	if !e.needSelf() {
		return make([]float64, len(xs))
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.metric.Dot(x, x)
	}

	return out
}

// Atomic returns K[k][i][j] = f_k(a[i], b[j]).
func (e *Engine[E]) Atomic(a, b []E) ([]*matrix.Dense, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, kernelErrorf("Atomic", ErrEmptyInput)
	}
	sa, sb := e.selfDots(a), e.selfDots(b)

	return e.fill("atomic", len(a), len(b), false, func(i, j int, out []float64) {
		e.tr.Eval(e.measure(a[i], b[j], sa[i], sb[j]), out)
	})
}

// AtomicSymmetric is Atomic(a, a) evaluating only j ≤ i.
func (e *Engine[E]) AtomicSymmetric(a []E) ([]*matrix.Dense, error) {
	if len(a) == 0 {
		return nil, kernelErrorf("AtomicSymmetric", ErrEmptyInput)
	}
	sa := e.selfDots(a)

	return e.fill("atomic-symmetric", len(a), len(a), true, func(i, j int, out []float64) {
		e.tr.Eval(e.measure(a[i], a[j], sa[i], sa[j]), out)
	})
}

// Local returns K[k][I][J] = Σ_{a∈A_I} Σ_{b∈B_J} f_k(a, b).
func (e *Engine[E]) Local(a, b [][]E) ([]*matrix.Dense, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, kernelErrorf("Local", ErrEmptyInput)
	}
	sa, sb := e.selfDotsSet(a), e.selfDotsSet(b)

	return e.fill("local", len(a), len(b), false, e.localCell(a, b, sa, sb))
}

// LocalSymmetric is Local(a, a) evaluating only J ≤ I.
func (e *Engine[E]) LocalSymmetric(a [][]E) ([]*matrix.Dense, error) {
	if len(a) == 0 {
		return nil, kernelErrorf("LocalSymmetric", ErrEmptyInput)
	}
	sa := e.selfDotsSet(a)

	return e.fill("local-symmetric", len(a), len(a), true, e.localCell(a, a, sa, sa))
}

func (e *Engine[E]) selfDotsSet(xs [][]E) [][]float64 {
	out := make([][]float64, len(xs))
	for i, x := range xs {
		out[i] = e.selfDots(x)
	}

	return out
}

func (e *Engine[E]) localCell(a, b [][]E, sa, sb [][]float64) func(i, j int, out []float64) {
	return func(i, j int, out []float64) {
		tmp := make([]float64, len(out))
		for k := range out {
			out[k] = 0
		}
		for ia, xa := range a[i] {
			for jb, xb := range b[j] {
				e.tr.Eval(e.measure(xa, xb, sa[i][ia], sb[j][jb]), tmp)
				for k, v := range tmp {
					out[k] += v
				}
			}
		}
	}
}

// overlap returns Σ_a Σ_b Dot(a, b).
func (e *Engine[E]) overlap(a, b []E) float64 {
	var s float64
	for _, xa := range a {
		for _, xb := range b {
			s += e.metric.Dot(xa, xb)
		}
	}

	return s
}

// Global returns K[k][I][J] = f_k(S_IJ, S_II + S_JJ - 2·S_IJ) with molecular
// overlaps S built from summed environment overlaps.
// Molecules have no signature vector here, so the laplacian family sees
// sqrt(d2). VectorKernels compares summed rows instead and keeps L1.
func (e *Engine[E]) Global(a, b [][]E) ([]*matrix.Dense, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, kernelErrorf("Global", ErrEmptyInput)
	}
	sa, sb := e.selfOverlaps(a), e.selfOverlaps(b)

	return e.fill("global", len(a), len(b), false, e.globalCell(a, b, sa, sb))
}

// GlobalSymmetric is Global(a, a) evaluating only J ≤ I.
func (e *Engine[E]) GlobalSymmetric(a [][]E) ([]*matrix.Dense, error) {
	if len(a) == 0 {
		return nil, kernelErrorf("GlobalSymmetric", ErrEmptyInput)
	}
	sa := e.selfOverlaps(a)

	return e.fill("global-symmetric", len(a), len(a), true, e.globalCell(a, a, sa, sa))
}

func (e *Engine[E]) selfOverlaps(xs [][]E) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.overlap(x, x)
	}

	return out
}

func (e *Engine[E]) globalCell(a, b [][]E, sa, sb []float64) func(i, j int, out []float64) {
	return func(i, j int, out []float64) {
		s := e.overlap(a[i], b[j])
		d2 := math.Max(0, sa[i]+sb[j]-2*s)
		e.tr.Eval(Measure{S: s, D2: d2, D1: math.Sqrt(d2)}, out)
	}
}

// fill allocates one rows×cols matrix per hyperparameter set and evaluates
// cell for every (i, j) (j ≤ i when symmetric, mirrored). Rows run on an
// errgroup limited to the configured worker count; every cell is written by
// exactly one goroutine.
func (e *Engine[E]) fill(level string, rows, cols int, symmetric bool, cell func(i, j int, out []float64)) ([]*matrix.Dense, error) {
	nk := e.tr.Len()
	out := make([]*matrix.Dense, nk)
	for k := range out {
		m, err := matrix.NewDense(rows, cols)
		if err != nil {
			return nil, kernelErrorf(level, err)
		}
		out[k] = m
	}

	var g errgroup.Group
	g.SetLimit(e.opts.workers)
	for i := 0; i < rows; i++ {
		i := i
		g.Go(func() error {
			buf := make([]float64, nk)
			last := cols - 1
			if symmetric {
				last = i
			}
			for j := 0; j <= last; j++ {
				cell(i, j, buf)
				for k, v := range buf {
					out[k].RowView(i)[j] = v
					if symmetric && j != i {
						out[k].RowView(j)[i] = v
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, kernelErrorf(level, err)
	}
	e.opts.logger.Debug("kernel evaluated",
		"level", level, "family", e.tr.Family().String(),
		"rows", rows, "cols", cols, "sets", nk, "workers", e.opts.workers)

	return out, nil
}
