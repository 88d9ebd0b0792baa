package kernel_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianAndLaplacianKernel_Values(t *testing.T) {
	a := [][]float64{{0, 0}, {1, 1}}
	b := [][]float64{{1, 0}, {3, 1}, {0, 0}}

	g, err := kernel.GaussianKernel(a, b, 2)
	require.NoError(t, err)
	l, err := kernel.LaplacianKernel(a, b, 2)
	require.NoError(t, err)

	for i := range a {
		for j := range b {
			var d2, d1 float64
			for k := range a[i] {
				d := a[i][k] - b[j][k]
				d2 += d * d
				d1 += math.Abs(d)
			}
			gv, _ := g.At(i, j)
			lv, _ := l.At(i, j)
			assert.InDelta(t, math.Exp(-d2/8), gv, 1e-14)
			assert.InDelta(t, math.Exp(-d1/2), lv, 1e-14)
		}
	}
}

func TestGaussianKernel_ShapeMismatch(t *testing.T) {
	_, err := kernel.GaussianKernel([][]float64{{1, 2}}, [][]float64{{1}}, 1)
	assert.ErrorIs(t, err, kernel.ErrShapeMismatch)
}

func TestLocalGaussianKernels_StackedCounts(t *testing.T) {
	x := molecules(11, 3, 4, 3)
	var stacked [][]float64
	var counts []int
	for _, m := range x {
		stacked = append(stacked, m...)
		counts = append(counts, len(m))
	}
	got, err := kernel.LocalGaussianKernels(stacked, stacked, counts, counts, []float64{1, 2})
	require.NoError(t, err)
	want, err := kernel.VectorKernels(kernel.LevelLocal, x, nil, kernel.Gaussian, kernel.Sigmas(1, 2))
	require.NoError(t, err)
	for k := range want {
		requireClose(t, want[k], got[k], 1e-12)
	}

	lap, err := kernel.LocalLaplacianKernels(stacked, stacked, counts, counts, []float64{1})
	require.NoError(t, err)
	assert.Len(t, lap, 1)

	_, err = kernel.LocalGaussianKernels(stacked, stacked, []int{1}, counts, []float64{1})
	assert.ErrorIs(t, err, kernel.ErrShapeMismatch)
}

func TestVectorKernels_Levels(t *testing.T) {
	x := molecules(12, 3, 3, 2)
	atomic, err := kernel.VectorKernels(kernel.LevelAtomic, x, nil, kernel.Linear, nil)
	require.NoError(t, err)
	total := 0
	for _, m := range x {
		total += len(m)
	}
	r, c := atomic[0].Shape()
	assert.Equal(t, total, r)
	assert.Equal(t, total, c)

	global, err := kernel.VectorKernels(kernel.LevelGlobal, x, x, kernel.Linear, nil)
	require.NoError(t, err)
	local, err := kernel.VectorKernels(kernel.LevelLocal, x, x, kernel.Linear, nil)
	require.NoError(t, err)
	// for the linear family the global overlap equals the local sum
	requireClose(t, local[0], global[0], 1e-12)

	_, err = kernel.VectorKernels(kernel.Level(9), x, nil, kernel.Linear, nil)
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
}

func TestVectorKernels_GlobalLaplacianUsesL1(t *testing.T) {
	a := [][]float64{{1, 0, 0}}
	b := [][]float64{{0, 1, 2}}
	want, err := kernel.LaplacianKernel(a, b, 1)
	require.NoError(t, err)
	w00, _ := want.At(0, 0)
	assert.InDelta(t, math.Exp(-4), w00, 1e-12)

	for _, l := range []kernel.Level{kernel.LevelLocal, kernel.LevelGlobal} {
		got, err := kernel.VectorKernels(l, [][][]float64{a}, [][][]float64{b}, kernel.Laplacian, kernel.Sigmas(1))
		require.NoError(t, err)
		g00, _ := got[0].At(0, 0)
		assert.InDelta(t, w00, g00, 1e-12, l.String())
	}

	// multi-row molecules compare their summed rows: |(1,1,0) - (0,1,2)|_1 = 3
	x := [][][]float64{{{1, 0, 0}, {0, 1, 0}}, {{0, 1, 2}}}
	got, err := kernel.VectorKernels(kernel.LevelGlobal, x, nil, kernel.Laplacian, kernel.Sigmas(2))
	require.NoError(t, err)
	g10, _ := got[0].At(1, 0)
	g01, _ := got[0].At(0, 1)
	g00, _ := got[0].At(0, 0)
	assert.InDelta(t, math.Exp(-1.5), g10, 1e-12)
	assert.InDelta(t, g10, g01, 1e-15)
	assert.InDelta(t, 1, g00, 1e-15)
}

func TestParseLevel(t *testing.T) {
	for _, l := range []kernel.Level{kernel.LevelAtomic, kernel.LevelLocal, kernel.LevelGlobal} {
		got, err := kernel.ParseLevel(" " + strings.ToUpper(l.String()))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := kernel.ParseLevel("molecular")
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
}
