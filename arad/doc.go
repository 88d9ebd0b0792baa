// Package arad implements the angular-radial (ARAD) atomic representation
// and its Gaussian kernels.
//
// A Representation of a molecule with capacity size has shape
// (size, 5, size): for atom i and its neighbor slot m,
//
//	channel 0: distance to the neighbor (sorted ascending; 1e100 when unused)
//	channel 1: periodic-table row of the neighbor
//	channel 2: periodic-table column of the neighbor
//	channel 3: normalized Σ cos of the angles the neighbor spans with all others
//	channel 4: the same aggregate for sin
//
// Slot 0 is always the atom itself. Kernels compare atoms through a scalar
// overlap of their neighbor lists and apply exp(−l2/σ²) to
// l2 = s_aa + s_bb − 2·s_ab, at atomic, local (summed over atom pairs) or
// global (summed overlaps) level.
package arad
