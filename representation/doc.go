// Package representation generates fixed-shape molecular descriptors:
//
//   - CoulombMatrix             packed Coulomb matrix (unsorted or row-norm sorted)
//   - AtomicCoulombMatrix       one cutoff-windowed Coulomb matrix per central atom
//   - EigenvalueCoulombMatrix   ascending Coulomb-matrix spectrum
//   - BagOfBonds                per-element and per-pair sorted bags
//   - ACSF                      atom-centred symmetry functions (Gaussian radial/angular bases)
//   - FCHL19                    FCHL-ACSF with decay weighting, periodic images and gradients
//
// Every generator is a pure function of a validated *geometry.Molecule and a
// configuration value. Descriptors of one family and configuration always
// have identical shapes; unused slots are zero. A molecule that exceeds the
// configured capacity fails with ErrShape instead of being truncated.
//
// Packed layouts store the lower triangle (m, n≤m) at m(m+1)/2 + n, which is
// the row-major upper triangle of the symmetric matrix.
package representation
