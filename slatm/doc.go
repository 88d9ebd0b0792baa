// Package slatm builds the Spectrum of London and Axilrod-Teller-Muto
// potentials (SLATM) descriptor.
//
// A dataset-wide Catalog fixes the ordered list of 1-, 2- and 3-body element
// types. Every descriptor generated against the same Catalog has the same
// length and term order:
//
//	[ 1-body counts | 2-body radial spectra | 3-body angular spectra ]
//
// The 2-body spectrum of type (z1, z2) is a Gaussian-smeared histogram of
// pair distances weighted by 1/r^rpower; the 3-body spectrum of (z1, z2, z3)
// smears the angle at the z2 atom weighted by the ATM factor
// (1 + cos a·cos b·cos c)/(r_ij·r_jk·r_ik)³.
//
// In alchemy mode all terms of one arity are summed into a single shared
// accumulator instead of being concatenated.
package slatm
