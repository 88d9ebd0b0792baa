package fchl_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qmlkit/alchemy"
	"github.com/katalvlaran/qmlkit/fchl"
	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/internal/testutil"
	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/katalvlaran/qmlkit/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	size      = 6
	neighbors = 6
)

func generate(t testing.TB, charges []int, coords [][3]float64) *fchl.Representation {
	t.Helper()
	m, err := geometry.New(charges, coords)
	require.NoError(t, err)
	rep, err := fchl.Generate(m, size, neighbors, fchl.DefaultCut)
	require.NoError(t, err)

	return rep
}

func dataset(t testing.TB) []*fchl.Representation {
	t.Helper()
	return []*fchl.Representation{
		generate(t, []int{8, 1, 1}, [][3]float64{{0, 0, 0}, {0.76, 0.59, 0}, {-0.8, 0.6, 0.05}}),
		generate(t, []int{6, 8, 1, 1}, [][3]float64{{0, 0, 0}, {1.21, 0, 0}, {-0.55, 0.94, 0}, {-0.55, -0.94, 0.02}}),
		generate(t, []int{7, 1, 1, 1}, [][3]float64{{0, 0, 0.1}, {0.94, 0, -0.2}, {-0.47, 0.81, -0.2}, {-0.47, -0.81, -0.2}}),
		generate(t, []int{1, 1}, [][3]float64{{0, 0, 0}, {0.74, 0, 0}}),
	}
}

func off(t testing.TB) *alchemy.Coupling {
	t.Helper()
	c, err := alchemy.Off(alchemy.DefaultEmax)
	require.NoError(t, err)

	return c
}

func requireClose(t *testing.T, want, got *matrix.Dense, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.True(t, ok, "want\n%v\ngot\n%v", want, got)
}

func sum(m *matrix.Dense) float64 {
	var s float64
	for i := 0; i < m.Rows(); i++ {
		for _, v := range m.RowView(i) {
			s += v
		}
	}

	return s
}

func linear() fchl.Option { return fchl.WithFamily(kernel.Linear, nil) }

// TestAtomicKernels_TwoBodyClosedForm compares two hydrogen molecules, where
// only the one- and two-body terms are present.
func TestAtomicKernels_TwoBodyClosedForm(t *testing.T) {
	a := generate(t, []int{1, 1}, [][3]float64{{0, 0, 0}, {1, 0, 0}})
	b := generate(t, []int{1, 1}, [][3]float64{{0, 0, 0}, {0, 1.2, 0}})
	s2 := fchl.DefaultTwoBodyScaling / 16

	k, err := fchl.AtomicKernels(a.Atoms(), b.Atoms(), linear(), fchl.WithAlchemy(off(t)))
	require.NoError(t, err)
	want := 1 + math.Exp(-0.25)*s2/math.Pow(1.2, 4)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := k[0].At(i, j)
			assert.InDelta(t, want, v, 1e-12)
		}
	}

	self, err := fchl.AtomicSymmetricKernels(a.Atoms(), linear(), fchl.WithAlchemy(off(t)))
	require.NoError(t, err)
	v, _ := self[0].At(0, 0)
	assert.InDelta(t, 1+s2, v, 1e-12)
}

func TestAtomicKernels_SmoothCutoff(t *testing.T) {
	a := generate(t, []int{1, 1}, [][3]float64{{0, 0, 0}, {1.5, 0, 0}})
	// start 1 Å, end 2 Å: x = 0.5 and the switch is 0.5.
	k, err := fchl.AtomicSymmetricKernels(a.Atoms(), linear(), fchl.WithAlchemy(off(t)), fchl.WithCut(0.5, 2))
	require.NoError(t, err)
	ksi := 0.5 / math.Pow(1.5, 4)
	v, _ := k[0].At(0, 0)
	assert.InDelta(t, 1+fchl.DefaultTwoBodyScaling/16*ksi*ksi, v, 1e-12)
}

func TestAtomicKernels_Alchemy(t *testing.T) {
	h := generate(t, []int{1}, [][3]float64{{0, 0, 0}})
	he := generate(t, []int{2}, [][3]float64{{0, 0, 0}})

	k, err := fchl.AtomicKernels(h.Atoms(), he.Atoms(), fchl.WithAlchemy(off(t)), fchl.WithFamily(kernel.Gaussian, kernel.Sigmas(1)))
	require.NoError(t, err)
	v, _ := k[0].At(0, 0)
	assert.InDelta(t, math.Exp(-1), v, 1e-12)

	pt, err := alchemy.DefaultPeriodicTable()
	require.NoError(t, err)
	k, err = fchl.AtomicKernels(h.Atoms(), he.Atoms(), fchl.WithAlchemy(pt), linear())
	require.NoError(t, err)
	v, _ = k[0].At(0, 0)
	assert.InDelta(t, pt.Weight(1, 2), v, 1e-12)
	assert.Greater(t, v, 0.0)
}

func TestAtomicKernels_ThreeBodySeesAngles(t *testing.T) {
	bent := generate(t, []int{8, 1, 1}, [][3]float64{{0, 0, 0}, {0.96, 0, 0}, {-0.24, 0.93, 0}})
	wide := generate(t, []int{8, 1, 1}, [][3]float64{{0, 0, 0}, {0.96, 0, 0}, {-0.93, 0.24, 0}})
	// Same O–H distances; only the H–O–H angle differs.
	require.Equal(t, bent.At(0, 0, 2), wide.At(0, 0, 2))

	opts := []fchl.Option{linear(), fchl.WithAlchemy(off(t))}
	self, err := fchl.AtomicSymmetricKernels(bent.Atoms()[:1], opts...)
	require.NoError(t, err)
	cross, err := fchl.AtomicKernels(bent.Atoms()[:1], wide.Atoms()[:1], opts...)
	require.NoError(t, err)
	s, _ := self[0].At(0, 0)
	c, _ := cross[0].At(0, 0)
	assert.Greater(t, math.Abs(s-c), 1e-6)

	// Without the three-body term the two oxygens are indistinguishable.
	opts = append(opts, fchl.WithThreeBody(0, math.Pi, 2))
	self, err = fchl.AtomicSymmetricKernels(bent.Atoms()[:1], opts...)
	require.NoError(t, err)
	cross, err = fchl.AtomicKernels(bent.Atoms()[:1], wide.Atoms()[:1], opts...)
	require.NoError(t, err)
	s, _ = self[0].At(0, 0)
	c, _ = cross[0].At(0, 0)
	assert.InDelta(t, s, c, 1e-12)
}

func TestKernels_SymmetricEqualsAsymmetric(t *testing.T) {
	x := dataset(t)
	opts := []fchl.Option{fchl.WithFamily(kernel.Gaussian, kernel.Sigmas(0.5, 2.5))}

	ls, err := fchl.LocalSymmetricKernels(x, opts...)
	require.NoError(t, err)
	la, err := fchl.LocalKernels(x, x, opts...)
	require.NoError(t, err)
	gs, err := fchl.GlobalSymmetricKernels(x, opts...)
	require.NoError(t, err)
	ga, err := fchl.GlobalKernels(x, x, opts...)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	for k := range ls {
		requireClose(t, la[k], ls[k], 1e-10)
		requireClose(t, ga[k], gs[k], 1e-10)
		assert.True(t, matrix.IsSymmetric(ls[k], 0))
		require.NoError(t, matrix.ValidateFinite(gs[k]))
		for i := range x {
			v, _ := gs[k].At(i, i)
			assert.InDelta(t, 1, v, 1e-12)
		}
	}

	for _, rep := range x {
		as, err := fchl.AtomicSymmetricKernels(rep.Atoms(), opts...)
		require.NoError(t, err)
		aa, err := fchl.AtomicKernels(rep.Atoms(), rep.Atoms(), opts...)
		require.NoError(t, err)
		requireClose(t, aa[0], as[0], 1e-10)
	}
}

func TestKernels_AtomicSumsToLocal(t *testing.T) {
	x := dataset(t)
	local, err := fchl.LocalKernels(x, x)
	require.NoError(t, err)
	for i := range x {
		for j := range x {
			atomic, err := fchl.AtomicKernels(x[i].Atoms(), x[j].Atoms())
			require.NoError(t, err)
			want, _ := local[0].At(i, j)
			assert.InDelta(t, want, sum(atomic[0]), 1e-9)
		}
	}
}

func TestKernels_FamiliesFromLinearOverlaps(t *testing.T) {
	x := dataset(t)
	poly, err := fchl.LocalSymmetricKernels(x, fchl.WithFamily(kernel.Polynomial, kernel.Params{
		"alpha": {2}, "c": {3}, "d": {4},
	}))
	require.NoError(t, err)
	global, err := fchl.GlobalSymmetricKernels(x, linear())
	require.NoError(t, err)

	for i := range x {
		for j := range x {
			s, err := fchl.AtomicKernels(x[i].Atoms(), x[j].Atoms(), linear())
			require.NoError(t, err)
			var want float64
			for a := 0; a < s[0].Rows(); a++ {
				for _, v := range s[0].RowView(a) {
					want += math.Pow(2*v+3, 4)
				}
			}
			got, _ := poly[0].At(i, j)
			assert.InDelta(t, 1, got/want, 1e-10)

			g, _ := global[0].At(i, j)
			assert.InDelta(t, sum(s[0]), g, 1e-9)
		}
	}
}

func TestKernels_RigidInvariance(t *testing.T) {
	charges := []int{6, 8, 1, 1}
	coords := [][3]float64{{0, 0, 0}, {1.21, 0, 0}, {-0.55, 0.94, 0}, {-0.55, -0.94, 0.02}}
	m, err := geometry.New(charges, coords)
	require.NoError(t, err)
	rot := r3.NewRotation(0.7, r3.Unit(r3.Vec{X: 1, Y: 2, Z: -1}))
	moved := m.Transform(func(v r3.Vec) r3.Vec { return r3.Add(rot.Rotate(v), r3.Vec{X: 3, Y: -1, Z: 2}) })

	a, err := fchl.Generate(m, size, neighbors, fchl.DefaultCut)
	require.NoError(t, err)
	b, err := fchl.Generate(moved, size, neighbors, fchl.DefaultCut)
	require.NoError(t, err)
	k, err := fchl.GlobalKernels([]*fchl.Representation{a}, []*fchl.Representation{b})
	require.NoError(t, err)
	v, _ := k[0].At(0, 0)
	assert.InDelta(t, 1, v, 1e-9)
}

func TestKernels_BatchedEqualsSingle(t *testing.T) {
	x := dataset(t)
	all, err := fchl.LocalSymmetricKernels(x, fchl.WithFamily(kernel.Gaussian, kernel.Sigmas(1, 4)), fchl.WithWorkers(3), fchl.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	for k, s := range []float64{1, 4} {
		one, err := fchl.LocalSymmetricKernels(x, fchl.WithFamily(kernel.Gaussian, kernel.Sigmas(s)), fchl.WithWorkers(1))
		require.NoError(t, err)
		requireClose(t, one[0], all[k], 0)
	}
}

func TestKernels_Errors(t *testing.T) {
	x := dataset(t)
	other, err := fchl.Generate(water(t), size, neighbors+1, fchl.DefaultCut)
	require.NoError(t, err)

	_, err = fchl.LocalKernels(x, []*fchl.Representation{other})
	assert.ErrorIs(t, err, fchl.ErrShapeMismatch)
	_, err = fchl.AtomicKernels(x[0].Atoms(), other.Atoms())
	assert.ErrorIs(t, err, fchl.ErrShapeMismatch)

	small, err := alchemy.Off(5)
	require.NoError(t, err)
	_, err = fchl.LocalSymmetricKernels(x, fchl.WithAlchemy(small))
	assert.ErrorIs(t, err, fchl.ErrConfiguration)

	_, err = fchl.LocalSymmetricKernels(x, fchl.WithFamily(kernel.Laplacian, nil))
	assert.ErrorIs(t, err, fchl.ErrConfiguration)
	assert.ErrorIs(t, err, kernel.ErrConfiguration)

	_, err = fchl.GlobalKernels(x, nil)
	assert.ErrorIs(t, err, kernel.ErrEmptyInput)
	_, err = fchl.LocalSymmetricKernels(nil)
	assert.ErrorIs(t, err, kernel.ErrEmptyInput)

	assert.Panics(t, func() { fchl.WithCut(0, 5) })
	assert.Panics(t, func() { fchl.WithFourierOrder(0) })
}
