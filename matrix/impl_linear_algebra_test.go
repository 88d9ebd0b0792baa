// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Jacobi eigen solver.
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/qmlkit/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEigen_Diagonal2x2(t *testing.T) {
	m := mustRows(t, [][]float64{{2, 1}, {1, 2}})
	eigs, err := matrix.SymmetricEigenvalues(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 3}, eigs, 1e-12)
}

func TestEigen_RejectsAsymmetric(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {0, 1}})
	_, _, err := matrix.Eigen(m)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(mustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestEigen_NotConverged(t *testing.T) {
	m := randomSymmetric(t, 6, 7)
	_, _, err := matrix.Eigen(m, matrix.WithMaxIter(1))
	assert.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

// TestEigen_MatchesGonum cross-checks Jacobi eigenvalues against LAPACK-style
// symmetric decomposition from gonum.
func TestEigen_MatchesGonum(t *testing.T) {
	for _, n := range []int{1, 3, 8, 23} {
		m := randomSymmetric(t, n, int64(n))
		got, err := matrix.SymmetricEigenvalues(m)
		require.NoError(t, err)

		var flat []float64
		for i := 0; i < n; i++ {
			flat = append(flat, m.RowView(i)...)
		}
		var es mat.EigenSym
		require.True(t, es.Factorize(mat.NewSymDense(n, flat), false))
		want := es.Values(nil)
		sort.Float64s(want)

		assert.InDeltaSlice(t, want, got, 1e-8, "n=%d", n)
	}
}

// TestEigen_VectorsReconstruct checks A·q_k = λ_k·q_k for every column.
func TestEigen_VectorsReconstruct(t *testing.T) {
	const n = 5
	m := randomSymmetric(t, n, 99)
	eigs, q, err := matrix.Eigen(hide{m})
	require.NoError(t, err)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			var av float64
			for j := 0; j < n; j++ {
				aij, _ := m.At(i, j)
				qjk, _ := q.At(j, k)
				av += aij * qjk
			}
			qik, _ := q.At(i, k)
			assert.InDelta(t, eigs[k]*qik, av, 1e-8)
		}
	}
}

func TestEigen_Deterministic(t *testing.T) {
	m := randomSymmetric(t, 10, 3)
	a, err := matrix.SymmetricEigenvalues(m)
	require.NoError(t, err)
	b, err := matrix.SymmetricEigenvalues(m.CloneDense())
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]))
	}
}
