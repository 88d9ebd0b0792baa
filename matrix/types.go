// SPDX-License-Identifier: MIT

// Package matrix: the read/write surface shared by validators and solvers.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Dense is the only implementation shipped here; validators and Eigen accept
// the interface and take a fast path when they see *Dense.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At returns the element at (i, j) or ErrIndexOutOfBounds.
	At(i, j int) (float64, error)

	// Set assigns v at (i, j) or returns ErrIndexOutOfBounds.
	Set(i, j int, v float64) error

	// Clone returns a deep copy.
	Clone() Matrix
}
