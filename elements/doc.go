// Package elements holds the immutable periodic-table lookup used by
// descriptor generators and alchemical coupling builders.
//
// A Table maps element symbols to nuclear charges and every nuclear charge to
// a (row, column) position. Positions follow the compact layout used by the
// alchemy and ARAD code paths:
//
//	rows 1-3:        eight columns, s-block in 1-2, p-block in 3-8
//	rows 4-7:        s-block 1-2, p-block 3-8, d-block 9-18
//	lanthanides,
//	actinides:       columns 19-33 of rows 6 and 7
//
// Default returns the process-wide table (built once, never mutated). Code
// that needs a different layout constructs its own Table with New and passes
// it explicitly.
package elements
