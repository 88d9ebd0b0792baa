// SPDX-License-Identifier: MIT

// Package matrix: element-wise comparisons used to check kernel matrices.
package matrix

import "math"

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds for every element
// (numpy.allclose semantics; NaN never compares close).
//
// Errors: ErrNaNInf for non-finite tolerances, ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	return SliceClose(da.data, db.data, rtol, atol), nil
}

// SliceClose is AllClose over flat slices of equal length; a length mismatch
// reports false.
// Complexity: O(n).
func SliceClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !(math.Abs(a[i]-b[i]) <= atol+rtol*math.Abs(b[i])) {
			return false
		}
	}

	return true
}

// IsSymmetric reports whether m is square and symmetric within eps.
// Complexity: O(n²).
func IsSymmetric(m Matrix, eps float64) bool {
	return ValidateSymmetric(m, eps) == nil
}
