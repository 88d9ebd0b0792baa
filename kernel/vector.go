package kernel

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/qmlkit/matrix"
	"gonum.org/v1/gonum/floats"
)

// VectorMetric compares plain descriptor vectors (Coulomb matrices, BoB,
// SLATM, ACSF/FCHL19 rows): Dot product, squared L2 and L1 distances.
func VectorMetric() Metric[[]float64] {
	return Metric[[]float64]{
		Dot: floats.Dot,
		SqDist: func(a, b []float64) float64 {
			d := floats.Distance(a, b, 2)
			return d * d
		},
		L1: func(a, b []float64) float64 { return floats.Distance(a, b, 1) },
	}
}

// checkWidth verifies that every vector in every set shares one length.
func checkWidth(tag string, sets ...[][]float64) error {
	width := -1
	for _, set := range sets {
		for i, v := range set {
			if width >= 0 && len(v) != width {
				return kernelErrorf(fmt.Sprintf("%s: row %d", tag, i), ErrShapeMismatch)
			}
			width = len(v)
		}
	}

	return nil
}

// GaussianKernel returns K[i][j] = exp(-|a_i - b_j|²/(2σ²)).
func GaussianKernel(a, b [][]float64, sigma float64, opts ...Option) (*matrix.Dense, error) {
	return vectorKernel("GaussianKernel", Gaussian, a, b, sigma, opts...)
}

// LaplacianKernel returns K[i][j] = exp(-|a_i - b_j|₁/σ).
func LaplacianKernel(a, b [][]float64, sigma float64, opts ...Option) (*matrix.Dense, error) {
	return vectorKernel("LaplacianKernel", Laplacian, a, b, sigma, opts...)
}

func vectorKernel(tag string, f Family, a, b [][]float64, sigma float64, opts ...Option) (*matrix.Dense, error) {
	if err := checkWidth(tag, a, b); err != nil {
		return nil, err
	}
	e, err := NewEngine(VectorMetric(), f, Sigmas(sigma), opts...)
	if err != nil {
		return nil, kernelErrorf(tag, err)
	}
	out, err := e.Atomic(a, b)
	if err != nil {
		return nil, kernelErrorf(tag, err)
	}

	return out[0], nil
}

// splitByCounts slices stacked atomic descriptors into molecules using
// per-molecule atom counts.
func splitByCounts(tag string, x [][]float64, n []int) ([][][]float64, error) {
	out := make([][][]float64, len(n))
	off := 0
	for i, c := range n {
		if c < 0 || off+c > len(x) {
			return nil, kernelErrorf(fmt.Sprintf("%s: molecule %d", tag, i), ErrShapeMismatch)
		}
		out[i] = x[off : off+c]
		off += c
	}
	if off != len(x) {
		return nil, kernelErrorf(tag, fmt.Errorf("%w: counts cover %d of %d rows", ErrShapeMismatch, off, len(x)))
	}

	return out, nil
}

// LocalGaussianKernels evaluates local gaussian kernels for several σ over
// stacked atomic descriptors: rows of a belong to molecules of na atoms each
// (in order), likewise b/nb.
func LocalGaussianKernels(a, b [][]float64, na, nb []int, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	return localStacked("LocalGaussianKernels", Gaussian, a, b, na, nb, sigmas, opts...)
}

// LocalLaplacianKernels is LocalGaussianKernels with the laplacian family.
func LocalLaplacianKernels(a, b [][]float64, na, nb []int, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	return localStacked("LocalLaplacianKernels", Laplacian, a, b, na, nb, sigmas, opts...)
}

func localStacked(tag string, f Family, a, b [][]float64, na, nb []int, sigmas []float64, opts ...Option) ([]*matrix.Dense, error) {
	if err := checkWidth(tag, a, b); err != nil {
		return nil, err
	}
	ma, err := splitByCounts(tag, a, na)
	if err != nil {
		return nil, err
	}
	mb, err := splitByCounts(tag, b, nb)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(VectorMetric(), f, Sigmas(sigmas...), opts...)
	if err != nil {
		return nil, kernelErrorf(tag, err)
	}

	return e.Local(ma, mb)
}

// Level selects the aggregation of VectorKernels.
type Level int

const (
	LevelAtomic Level = iota
	LevelLocal
	LevelGlobal
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelAtomic:
		return "atomic"
	case LevelLocal:
		return "local"
	case LevelGlobal:
		return "global"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel resolves "atomic", "local" or "global" (case-insensitive).
func ParseLevel(name string) (Level, error) {
	n := strings.TrimSpace(name)
	for _, l := range []Level{LevelAtomic, LevelLocal, LevelGlobal} {
		if strings.EqualFold(n, l.String()) {
			return l, nil
		}
	}

	return 0, kernelErrorf("ParseLevel", fmt.Errorf("%w: unknown level %q", ErrConfiguration, name))
}

// VectorKernels evaluates a family-parameterized kernel over per-molecule
// atomic vector descriptors (x[molecule][atom][feature]). With y == nil the
// symmetric path is used. LevelAtomic flattens all atoms of each set.
func VectorKernels(level Level, x, y [][][]float64, family Family, params Params, opts ...Option) ([]*matrix.Dense, error) {
	var flat [][]float64
	for _, m := range x {
		flat = append(flat, m...)
	}
	var flatY [][]float64
	for _, m := range y {
		flatY = append(flatY, m...)
	}
	if err := checkWidth("VectorKernels", flat, flatY); err != nil {
		return nil, err
	}
	e, err := NewEngine(VectorMetric(), family, params, opts...)
	if err != nil {
		return nil, kernelErrorf("VectorKernels", err)
	}
	symmetric := y == nil
	switch level {
	case LevelAtomic:
		if symmetric {
			return e.AtomicSymmetric(flat)
		}
		return e.Atomic(flat, flatY)
	case LevelLocal:
		if symmetric {
			return e.LocalSymmetric(x)
		}
		return e.Local(x, y)
	case LevelGlobal:
		width := 0
		if len(flat) > 0 {
			width = len(flat[0])
		}
		sx := signatures(x, width)
		if symmetric {
			return e.LocalSymmetric(sx)
		}
		return e.Local(sx, signatures(y, width))
	}

	return nil, kernelErrorf("VectorKernels", fmt.Errorf("%w: unknown level %d", ErrConfiguration, int(level)))
}

// signatures sums each molecule's rows into one vector. Comparing the sums
// gives the same dot products and squared distances as the global engine,
// and the metric's own L1 for the laplacian family.
func signatures(x [][][]float64, width int) [][][]float64 {
	out := make([][][]float64, len(x))
	for i, m := range x {
		sum := make([]float64, width)
		for _, row := range m {
			floats.Add(sum, row)
		}
		out[i] = [][]float64{sum}
	}

	return out
}
