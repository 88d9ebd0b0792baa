// Package matrix provides the dense numeric backend used by descriptor
// generators and kernel assemblers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and
//     zero-copy RowView access for hot loops.
//   - Validators (ValidateNotNil, ValidateSameShape, ValidateSquare,
//     ValidateSymmetric) returning sentinel errors.
//   - Eigen, a deterministic cyclic-pivot Jacobi solver for symmetric input,
//     and SymmetricEigenvalues (ascending) built on top of it.
//   - AllClose / IsSymmetric numeric comparisons with numpy-like semantics.
//
// Kernel matrices returned by the kernel, arad and fchl packages are *Dense
// values; symmetric kernels satisfy IsSymmetric within DefaultEpsilon.
package matrix
