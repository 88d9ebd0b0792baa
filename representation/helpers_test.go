package representation_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// methanol returns a slightly distorted CH3OH-like molecule.
func methanol(t testing.TB) *geometry.Molecule {
	t.Helper()
	m, err := geometry.New(
		[]int{6, 8, 1, 1, 1, 1},
		[][3]float64{
			{0, 0, 0},
			{1.43, 0.02, -0.01},
			{-0.36, 1.02, 0.05},
			{-0.38, -0.5, 0.88},
			{-0.35, -0.49, -0.9},
			{1.75, 0.9, -0.2},
		})
	require.NoError(t, err)

	return m
}

// randomMolecule places n atoms of charges drawn from zs in a 4 Å box.
func randomMolecule(t testing.TB, seed int64, n int, zs []int) *geometry.Molecule {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	charges := make([]int, n)
	coords := make([][3]float64, n)
	for i := range charges {
		charges[i] = zs[rng.Intn(len(zs))]
		coords[i] = [3]float64{4 * rng.Float64(), 4 * rng.Float64(), 4 * rng.Float64()}
	}
	m, err := geometry.New(charges, coords)
	require.NoError(t, err)

	return m
}

// rigid rotates about a skew axis and translates.
func rigid(m *geometry.Molecule) *geometry.Molecule {
	axis := r3.Unit(r3.Vec{X: 1, Y: 2, Z: -0.5})
	rot := r3.NewRotation(0.7, axis)

	return m.Transform(func(v r3.Vec) r3.Vec {
		return r3.Add(rot.Rotate(v), r3.Vec{X: 3, Y: -1.5, Z: 0.25})
	})
}

// displaced returns a copy of m with atom a moved by h along axis d.
func displaced(m *geometry.Molecule, a, d int, h float64) *geometry.Molecule {
	out := m.Transform(func(v r3.Vec) r3.Vec { return v })
	v := out.Coords[a]
	switch d {
	case 0:
		v.X += h
	case 1:
		v.Y += h
	default:
		v.Z += h
	}
	out.Coords[a] = v

	return out
}

func requireRowsClose(t *testing.T, want, got [][]float64, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.Equal(t, len(want[i]), len(got[i]))
		for f := range want[i] {
			require.InDelta(t, want[i][f], got[i][f], tol*math.Max(1, math.Abs(want[i][f])), "row %d feature %d", i, f)
		}
	}
}
