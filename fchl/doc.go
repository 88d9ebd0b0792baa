// Package fchl implements the FCHL18 neighbor representation and the scalar
// FCHL kernels built on it.
//
// A Representation has shape (size, 5, neighbors). For atom i and neighbor
// slot m:
//
//	channel 0: distance (ascending; slot 0 is the atom itself; 1e100 unused)
//	channel 1: nuclear charge of the neighbor
//	channel 2-4: displacement of the neighbor from atom i
//
// Two atom environments are compared by a scalar overlap made of a one-body
// term, Gaussian-smeared two-body terms weighted by r^-p, and Fourier-expanded
// three-body terms, each coupled through an alchemy.Coupling. The overlap is
// an inner product, so any kernel.Family can be applied to it at atomic,
// local or global level.
package fchl
