package geometry_test

import (
	"testing"

	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCell_HeightsAndCounts(t *testing.T) {
	c := geometry.Cell{{X: 3}, {Y: 4}, {Z: 5}}
	ch := c.Heights()
	assert.InDeltaSlice(t, []float64{3, 4, 5}, ch[:], 1e-12)
	assert.Equal(t, [3]int{2, 2, 1}, c.ReplicaCounts(4.5))

	// a sheared cell: the height along a is smaller than |a|
	sheared := geometry.Cell{{X: 2, Y: 2}, {Y: 2}, {Z: 2}}
	h := sheared.Heights()
	assert.InDelta(t, 2.0, h[0], 1e-12)
	assert.Less(t, h[1], 2.0)
}

func TestReplicate_NonPeriodic(t *testing.T) {
	m, err := geometry.New([]int{1, 1}, [][3]float64{{0, 0, 0}, {0, 0, 0.74}})
	require.NoError(t, err)
	im, err := m.Replicate(5)
	require.NoError(t, err)
	assert.Equal(t, 2, im.Len())
	assert.Equal(t, []int{0, 1}, im.Origin)

	_, err = m.Replicate(0)
	assert.ErrorIs(t, err, geometry.ErrBadCutoff)
}

func TestReplicate_Bounded(t *testing.T) {
	m, err := geometry.New([]int{6, 8}, [][3]float64{{0, 0, 0}, {1, 0, 0}},
		geometry.WithCell([3][3]float64{{3, 0, 0}, {0, 3, 0}, {0, 0, 3}}))
	require.NoError(t, err)
	im, err := m.Replicate(2.5)
	require.NoError(t, err)

	// one replica per side in every direction: 27 cells
	assert.Equal(t, 2*27, im.Len())
	assert.Equal(t, 2, im.Originals)
	for i := 0; i < im.Len(); i++ {
		o := im.Origin[i]
		s := im.Shift[i]
		want := r3.Add(m.Coords[o], m.Cell.Shift(s[0], s[1], s[2]))
		assert.InDelta(t, 0, r3.Norm(r3.Sub(want, im.Coords[i])), 1e-12)
		assert.Equal(t, m.Charges[o], im.Charges[i])
	}
	// the C image at x = -3 is 3 Å from C but 4 Å from O
	nb := im.Neighbors(1, 2.5)
	for _, j := range nb {
		assert.Less(t, im.Distance(1, j), 2.5)
	}
	assert.Contains(t, nb, 0)
}
