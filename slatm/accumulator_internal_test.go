package slatm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_RejectsMismatchedTerms(t *testing.T) {
	var a accumulator
	require.NoError(t, a.add([]float64{1, 2}))
	require.NoError(t, a.add([]float64{3, 4}))
	assert.Equal(t, []float64{4, 6}, a.data)
	assert.ErrorIs(t, a.add([]float64{1}), ErrInconsistentTermSize)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0.5}, linspace(0.5, 2, 1))
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, linspace(0, 1, 5), 1e-15)

	o := gatherOptions(nil)
	xs := o.radialGrid()
	require.NotEmpty(t, xs)
	assert.Equal(t, defaultRadialR0, xs[0])
	assert.InDelta(t, o.rcut, xs[len(xs)-1], 1e-12)
}
