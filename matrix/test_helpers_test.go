// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures for Dense and Eigen tests.
//   - Keep all data finite and well-formed.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/qmlkit/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the interface fallback paths.
type hide struct{ matrix.Matrix }

// mustDense allocates an r×c Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// mustRows builds a Dense from literal rows or fails the test.
func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// randomSymmetric fills an n×n symmetric matrix from a fixed seed.
func randomSymmetric(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := mustDense(tb, n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := rng.Float64()*20 - 10
			require.NoError(tb, m.Set(i, j, v))
			require.NoError(tb, m.Set(j, i, v))
		}
	}

	return m
}
