package slatm_test

import (
	"testing"

	"github.com/katalvlaran/qmlkit/slatm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog_Order(t *testing.T) {
	cat, err := slatm.BuildCatalog([][]int{{1, 1, 8}, {1, 6}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{1}, {6}, {8},
		{1, 1}, {6, 6}, {8, 8}, {1, 6}, {1, 8}, {6, 8},
		{1, 1, 6}, {1, 6, 1}, {1, 1, 8}, {1, 8, 1}, {1, 6, 8}, {1, 8, 6}, {6, 1, 8},
	}, cat.Types())
	assert.Equal(t, []int{1, 6, 8}, cat.Charges())
	assert.Equal(t, 7, cat.Count(3))
}

func TestBuildCatalog_Periodic(t *testing.T) {
	cat, err := slatm.BuildCatalog([][]int{{6}}, slatm.WithPeriodic())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{6}, {6, 6}, {6, 6, 6}}, cat.Types())

	plain, err := slatm.BuildCatalog([][]int{{6}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{6}, {6, 6}}, plain.Types())
}

func TestCatalog_TypesIsACopy(t *testing.T) {
	cat, err := slatm.BuildCatalog([][]int{{1, 8, 1}})
	require.NoError(t, err)
	ts := cat.Types()
	ts[0][0] = 99
	assert.Equal(t, 1, cat.Types()[0][0])
}

func TestCatalog_Errors(t *testing.T) {
	_, err := slatm.BuildCatalog(nil)
	assert.ErrorIs(t, err, slatm.ErrConfiguration)
	_, err = slatm.BuildCatalog([][]int{{}})
	assert.ErrorIs(t, err, slatm.ErrConfiguration)
	_, err = slatm.BuildCatalog([][]int{{1, -2}})
	assert.ErrorIs(t, err, slatm.ErrConfiguration)

	_, err = slatm.NewCatalog([][]int{{1, 1}, {1}})
	assert.ErrorIs(t, err, slatm.ErrConfiguration)
	_, err = slatm.NewCatalog([][]int{{1, 1, 1, 1}})
	assert.ErrorIs(t, err, slatm.ErrConfiguration)
	cat, err := slatm.NewCatalog([][]int{{8}, {1, 8}})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}
