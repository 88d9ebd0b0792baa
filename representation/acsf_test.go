package representation_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/representation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type atomicGenerator func(*geometry.Molecule, ...representation.Option) ([][]float64, *representation.Gradient, error)

// checkGradient compares an analytic gradient with central differences.
func checkGradient(t *testing.T, gen atomicGenerator, m *geometry.Molecule, tol float64) {
	t.Helper()
	_, g, err := gen(m, representation.WithGradients())
	require.NoError(t, err)
	require.NotNil(t, g)

	const h = 1e-5
	for a := 0; a < m.Len(); a++ {
		for d := 0; d < 3; d++ {
			plus, _, err := gen(displaced(m, a, d, h))
			require.NoError(t, err)
			minus, _, err := gen(displaced(m, a, d, -h))
			require.NoError(t, err)
			for i := range plus {
				for f := range plus[i] {
					num := (plus[i][f] - minus[i][f]) / (2 * h)
					require.InDelta(t, num, g.At(i, f, a, d), tol*math.Max(1, math.Abs(num)),
						"row %d feature %d atom %d axis %d", i, f, a, d)
				}
			}
		}
	}
}

func acsf(cfg representation.ACSFConfig) atomicGenerator {
	return func(m *geometry.Molecule, opts ...representation.Option) ([][]float64, *representation.Gradient, error) {
		return representation.ACSF(m, cfg, opts...)
	}
}

func TestACSF_ShapeAndInvariance(t *testing.T) {
	m := methanol(t)
	cfg := representation.DefaultACSFConfig()
	rep, g, err := representation.ACSF(m, cfg)
	require.NoError(t, err)
	assert.Nil(t, g)
	require.Len(t, rep, 6)
	assert.Len(t, rep[0], cfg.Size())
	assert.Equal(t, 5*3+15*3*3, cfg.Size())

	moved, _, err := representation.ACSF(rigid(m), cfg)
	require.NoError(t, err)
	requireRowsClose(t, rep, moved, 1e-9)

	// permuting atoms permutes rows
	perm := []int{3, 5, 0, 1, 4, 2}
	p, err := m.Permute(perm)
	require.NoError(t, err)
	prep, _, err := representation.ACSF(p, cfg)
	require.NoError(t, err)
	for i, src := range perm {
		assert.InDeltaSlice(t, rep[src], prep[i], 1e-10)
	}
}

func TestACSF_TwoBodyClosedForm(t *testing.T) {
	m, err := geometry.New([]int{1, 8}, [][3]float64{{0, 0, 0}, {0, 0, 1.5}})
	require.NoError(t, err)
	cfg := representation.DefaultACSFConfig()
	rep, _, err := representation.ACSF(m, cfg)
	require.NoError(t, err)

	fc := 0.5 * (math.Cos(math.Pi*1.5/5) + 1)
	rs := []float64{0.8, 2.9, 5}
	// H sees O (element index 3), O sees H (element index 0)
	for l, r := range rs {
		want := math.Exp(-(1.5-r)*(1.5-r)) * fc
		assert.InDelta(t, want, rep[0][3*3+l], 1e-14)
		assert.InDelta(t, want, rep[1][l], 1e-14)
	}
	// no triplets in a diatomic
	for _, v := range rep[0][15:] {
		assert.Zero(t, v)
	}
}

func TestACSF_Padding(t *testing.T) {
	m := methanol(t)
	rep, g, err := representation.ACSF(m, representation.DefaultACSFConfig(), representation.WithPad(9), representation.WithGradients())
	require.NoError(t, err)
	require.Len(t, rep, 9)
	assert.Equal(t, 9, g.Rows)
	for i := 6; i < 9; i++ {
		for f, v := range rep[i] {
			assert.Zero(t, v)
			for a := 0; a < 9; a++ {
				assert.Zero(t, g.At(i, f, a, 2))
			}
		}
	}

	_, _, err = representation.ACSF(m, representation.DefaultACSFConfig(), representation.WithPad(4))
	assert.ErrorIs(t, err, representation.ErrShape)
	assert.Panics(t, func() { representation.WithPad(-1) })
}

func TestACSF_Gradient(t *testing.T) {
	cfg := representation.DefaultACSFConfig()
	cfg.Zeta = 2
	checkGradient(t, acsf(cfg), methanol(t), 1e-6)
}

func TestACSF_Errors(t *testing.T) {
	m := methanol(t)
	cfg := representation.DefaultACSFConfig()
	cfg.Elements = []int{1, 6}
	_, _, err := representation.ACSF(m, cfg)
	assert.ErrorIs(t, err, representation.ErrConfiguration)

	cfg = representation.DefaultACSFConfig()
	cfg.NTs = 0
	_, _, err = representation.ACSF(m, cfg)
	assert.ErrorIs(t, err, representation.ErrConfiguration)

	cfg = representation.DefaultACSFConfig()
	cfg.Elements = []int{1, 1, 6, 8}
	_, _, err = representation.ACSF(m, cfg)
	assert.ErrorIs(t, err, representation.ErrConfiguration)
}
