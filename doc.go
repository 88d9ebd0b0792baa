// Package qmlkit turns molecular geometries into machine-learning
// descriptors and evaluates kernel matrices between them, the two halves of
// kernel ridge regression on quantum-chemical data.
//
// What is in the box?
//
//	Descriptors, one vector per molecule or per atom:
//		• Coulomb matrix (unsorted, row-norm sorted), its eigenvalues
//		• Atomic Coulomb matrices with cutoff windows
//		• Bag of Bonds
//		• SLATM (global and local, with a shared many-body catalog)
//		• ACSF and FCHL19, with analytic gradients
//		• ARAD and FCHL neighbor arrays
//	Kernels:
//		• twelve closed-form families over dot products and distances
//		• atomic, local and global aggregation, symmetric or not
//		• element coupling (alchemy) for the FCHL overlap
//
// Everything is side-effect-free: generators and kernels take immutable
// inputs and return fresh values, and row-parallel evaluation gives the
// same bits for any worker count.
//
// The packages:
//
//	matrix/         row-major Dense, validators, Jacobi eigen solver
//	elements/       periodic table: symbols, charges, (row, column)
//	geometry/       Molecule, optional unit cell, periodic images
//	alchemy/        element-by-element coupling matrices
//	kernel/         kernel families and the generic pairwise engine
//	representation/ Coulomb family, BoB, ACSF, FCHL19
//	slatm/          many-body catalog and SLATM
//	arad/           ARAD representation and kernels
//	fchl/           FCHL representation, scalar overlap and kernels
//	cmd/qmlkit      command line: represent, kernel, elements
//
// Quick example:
//
//	mol, _ := geometry.New([]int{8, 1, 1}, [][3]float64{{0, 0, 0}, {0.76, 0.59, 0}, {-0.76, 0.59, 0}})
//	cm, _ := representation.CoulombMatrix(mol, 3, representation.SortRowNorm)
//
//	go get github.com/katalvlaran/qmlkit
package qmlkit
