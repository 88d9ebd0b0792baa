package elements_test

import (
	"testing"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Positions(t *testing.T) {
	tbl := elements.Default()
	cases := []struct {
		sym      string
		z        int
		row, col int
	}{
		{"H", 1, 1, 1},
		{"He", 2, 1, 8},
		{"Li", 3, 2, 1},
		{"C", 6, 2, 4},
		{"O", 8, 2, 6},
		{"Cl", 17, 3, 7},
		{"K", 19, 4, 1},
		{"Sc", 21, 4, 9},
		{"Zn", 30, 4, 18},
		{"Ga", 31, 4, 3},
		{"Kr", 36, 4, 8},
		{"Ag", 47, 5, 17},
		{"I", 53, 5, 7},
		{"La", 57, 6, 19},
		{"Lu", 71, 6, 33},
		{"Hf", 72, 6, 10},
		{"Hg", 80, 6, 18},
		{"Rn", 86, 6, 8},
		{"U", 92, 7, 22},
		{"Cn", 112, 7, 18},
		{"Og", 118, 7, 8},
	}
	for _, tc := range cases {
		z, err := tbl.Charge(tc.sym)
		require.NoError(t, err)
		assert.Equal(t, tc.z, z, tc.sym)
		row, col, err := tbl.Position(tc.z)
		require.NoError(t, err)
		assert.Equal(t, tc.row, row, tc.sym)
		assert.Equal(t, tc.col, col, tc.sym)
	}
	assert.Equal(t, 118, tbl.MaxZ())
	assert.Same(t, tbl, elements.Default())
}

func TestDefault_UniqueColumnsPerRow(t *testing.T) {
	seen := map[[2]int]string{}
	for _, e := range elements.Default().Elements() {
		key := [2]int{e.Row, e.Column}
		prev, dup := seen[key]
		assert.False(t, dup, "%s collides with %s", e.Symbol, prev)
		seen[key] = e.Symbol
	}
}

func TestTable_Unknown(t *testing.T) {
	tbl := elements.Default()
	_, err := tbl.Charge("Xx")
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
	_, err = tbl.Symbol(0)
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
	_, _, err = tbl.Position(200)
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
	_, err = tbl.Charges([]string{"H", "Q"})
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
}

func TestNew_Validation(t *testing.T) {
	_, err := elements.New([]elements.Element{{Symbol: "A", Z: 1, Row: 1, Column: 1}, {Symbol: "B", Z: 1, Row: 1, Column: 2}})
	assert.ErrorIs(t, err, elements.ErrDuplicateElement)
	_, err = elements.New([]elements.Element{{Symbol: "", Z: 1, Row: 1, Column: 1}})
	assert.ErrorIs(t, err, elements.ErrBadElement)

	tbl, err := elements.New([]elements.Element{{Symbol: "X", Z: 5, Row: 2, Column: 3}})
	require.NoError(t, err)
	zs, err := tbl.Charges([]string{"X", "X"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, zs)
}
