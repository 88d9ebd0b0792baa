package arad_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qmlkit/arad"
	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func ethanol(t testing.TB) *geometry.Molecule {
	t.Helper()
	m, err := geometry.New(
		[]int{6, 6, 8, 1, 1, 1, 1, 1, 1},
		[][3]float64{
			{-1.17, 0.08, 0.01}, {0.33, -0.01, -0.02}, {0.91, 1.27, 0.03},
			{-1.57, -0.93, -0.05}, {-1.51, 0.64, -0.87}, {-1.49, 0.58, 0.93},
			{0.66, -0.56, 0.86}, {0.68, -0.53, -0.91}, {1.87, 1.16, 0.01},
		})
	require.NoError(t, err)

	return m
}

func TestGenerate_Layout(t *testing.T) {
	m := ethanol(t)
	rep, err := arad.Generate(m, 12, arad.DefaultCut, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, rep.Size())
	assert.Equal(t, 9, rep.Len())
	require.Len(t, rep.Atoms(), 9)

	for i := 0; i < 9; i++ {
		// slot 0 is the atom itself
		assert.Zero(t, rep.At(i, 0, 0))
		assert.InDelta(t, 1, rep.At(i, 3, 0), 1e-12)
		assert.InDelta(t, 0, rep.At(i, 4, 0), 1e-12)
		for m := 1; m < 9; m++ {
			assert.LessOrEqual(t, rep.At(i, 0, m-1), rep.At(i, 0, m))
		}
		for m := 9; m < 12; m++ {
			assert.Equal(t, arad.Sentinel, rep.At(i, 0, m))
			assert.Zero(t, rep.At(i, 1, m))
			assert.Zero(t, rep.At(i, 3, m))
		}
	}
	// carbon sits in row 2, column 4; hydrogen in row 1, column 1
	assert.Equal(t, []float64{2, 4}, []float64{rep.At(0, 1, 0), rep.At(0, 2, 0)})
	assert.Equal(t, []float64{1, 1}, []float64{rep.At(3, 1, 0), rep.At(3, 2, 0)})

	v := rep.Atoms()[3].Values()
	require.Len(t, v, 5*12)
	assert.Equal(t, []float64{1, 1}, []float64{v[12], v[24]})

	for i := 9; i < 12; i++ {
		for m := 0; m < 12; m++ {
			assert.Equal(t, arad.Sentinel, rep.At(i, 0, m))
			for c := 1; c < 5; c++ {
				assert.Zero(t, rep.At(i, c, m))
			}
		}
	}
}

func TestGenerate_CutoffDropsFarNeighbors(t *testing.T) {
	m, err := geometry.New([]int{1, 1, 1}, [][3]float64{{0, 0, 0}, {1, 0, 0}, {7, 0, 0}})
	require.NoError(t, err)
	rep, err := arad.Generate(m, 3, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.At(0, 0, 1))
	assert.Equal(t, arad.Sentinel, rep.At(0, 0, 2))
	assert.Equal(t, arad.Sentinel, rep.At(2, 0, 1))

	bent, err := geometry.New([]int{8, 1, 1}, [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	require.NoError(t, err)
	rep, err = arad.Generate(bent, 3, 5, nil)
	require.NoError(t, err)
	// neighbor (1,0,0) of the oxygen: angle 0 with itself and the centre, 90° with the other
	w := 1 - math.Sin(math.Pi/10)
	assert.InDelta(t, (1+w)/(1+2*w), rep.At(0, 3, 1), 1e-12)
	assert.InDelta(t, w/(1+2*w), rep.At(0, 4, 1), 1e-12)
}

func TestGenerate_RigidInvariance(t *testing.T) {
	m := ethanol(t)
	rot := r3.NewRotation(2.1, r3.Unit(r3.Vec{X: -0.2, Y: 0.4, Z: 1}))
	moved := m.Transform(func(v r3.Vec) r3.Vec { return r3.Add(rot.Rotate(v), r3.Vec{X: -4, Y: 2, Z: 9}) })

	a, err := arad.Generate(m, 10, 5, nil)
	require.NoError(t, err)
	b, err := arad.Generate(moved, 10, 5, nil)
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		for c := 0; c < 5; c++ {
			for k := 0; k < 9; k++ {
				assert.InDelta(t, a.At(i, c, k), b.At(i, c, k), 1e-9)
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	m := ethanol(t)
	_, err := arad.Generate(m, 8, 5, nil)
	assert.ErrorIs(t, err, arad.ErrShape)
	_, err = arad.Generate(m, 9, 0, nil)
	assert.ErrorIs(t, err, arad.ErrConfiguration)

	crystal, err := geometry.New([]int{6}, [][3]float64{{0, 0, 0}},
		geometry.WithCell([3][3]float64{{1.5, 0, 0}, {0, 1.5, 0}, {0, 0, 1.5}}))
	require.NoError(t, err)
	_, err = arad.Generate(crystal, 4, 3, nil)
	assert.ErrorIs(t, err, arad.ErrShape)
	rep, err := arad.Generate(crystal, 200, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Len())
	assert.Equal(t, 1.5, rep.At(0, 0, 1))
}
