// Package alchemy builds element-by-element coupling matrices used by
// locality-aware kernels when atoms of different elements are compared.
//
// A Coupling is a read-only square matrix indexed directly by nuclear
// charge (row/column 0 is unused):
//
//   - Off:           identity; elements only match themselves.
//   - PeriodicTable: exp(-Δrow²/(4·wr²) - Δcol²/(4·wc²)) over table positions.
//   - Custom:        a caller-supplied symmetric matrix.
//   - FromVectors:   exp(-|v_a - v_b|²/(4·w²)) over per-element feature vectors.
//
// Couplings are built once per experiment and shared by every kernel call.
package alchemy
