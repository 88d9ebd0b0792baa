// SPDX-License-Identifier: MIT

// Package matrix: symmetric eigen decomposition (Jacobi rotations).
//
// Eigen is deterministic: the pivot search scans the strict upper triangle in
// row-major order and always picks the first maximal |A[p,q]|, so identical
// inputs produce bit-identical eigenvalues.
package matrix

import (
	"fmt"
	"math"
	"sort"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

const (
	opEigen       = "Eigen"
	opEigenvalues = "SymmetricEigenvalues"
)

// toDense returns m itself when it already is *Dense, or a Dense copy built
// through the interface otherwise.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix with the
// classical (largest pivot) Jacobi method.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, eps); copy into a working Dense A; Q = I.
//   - Stage 2: repeat { find (p,q) maximizing |A[p,q]|; stop when it is below
//     tol·max(1, ‖A‖_F); rotate A and accumulate the rotation into Q }.
//   - Stage 3: read eigenvalues from diag(A) (unsorted, Jacobi order).
//
// Returns eigenvalues in diagonal order and Q whose columns are eigenvectors.
// Errors: ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrMatrixEigenFailed.
// Complexity: O(n²) per rotation, O(n³)–O(n⁴) overall for the pivot scans.
func Eigen(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	o := gatherOptions(m.Rows(), opts...)
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src.CloneDense()
	n := a.r
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	// Absolute threshold scaled by the Frobenius norm (rotations preserve it).
	var frob float64
	for _, v := range a.data {
		frob += v * v
	}
	threshold := o.tol * math.Max(1, math.Sqrt(frob))

	var (
		iter, i, j, p, q0  int
		maxOff, off        float64
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
	)
	converged := n == 1
	for iter = 0; iter < o.maxIter && !converged; iter++ {
		// J.1: pivot search over the strict upper triangle
		maxOff = NormZero
		for i = 0; i < n; i++ {
			base := i * n
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[base+j])
				if off > maxOff {
					maxOff, p, q0 = off, i, j
				}
			}
		}
		// J.2: convergence
		if maxOff <= threshold {
			converged = true
			break
		}

		// J.3: rotation parameters
		app = a.data[p*n+p]
		aqq = a.data[q0*n+q0]
		apq = a.data[p*n+q0]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: rotate rows/columns p and q
		for i = 0; i < n; i++ {
			if i == p || i == q0 {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q0]
			nip := c*aip - s*aiq
			niq := s*aip + c*aiq
			a.data[i*n+p], a.data[p*n+i] = nip, nip
			a.data[i*n+q0], a.data[q0*n+i] = niq, niq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q0*n+q0] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q0], a.data[q0*n+p] = 0, 0

		// J.5: accumulate into Q
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+q0]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+q0] = s*qip + c*qiq
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// SymmetricEigenvalues returns the eigenvalues of a symmetric matrix sorted
// in ascending order.
// Complexity: Eigen + O(n log n).
func SymmetricEigenvalues(m Matrix, opts ...Option) ([]float64, error) {
	eigs, _, err := Eigen(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	sort.Float64s(eigs)

	return eigs, nil
}
