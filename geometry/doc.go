// Package geometry normalizes molecule input (nuclear charges, Cartesian
// coordinates, optional periodic cell) into the canonical form consumed by
// descriptor generators.
//
// A Molecule is validated once at construction and treated as read-only
// afterwards. Periodic molecules expose Replicate, which builds an explicit,
// bounded neighbor list of periodic images within a cutoff: the number of
// replicas per lattice direction is derived from the cutoff and the cell's
// perpendicular heights, and every image remembers which original atom it
// copies so that gradients and per-atom outputs can be mapped back.
//
// Vector arithmetic uses gonum's spatial/r3.
package geometry
