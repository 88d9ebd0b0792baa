package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMolecule is returned for a molecule without atoms.
	ErrEmptyMolecule = errors.New("geometry: molecule has no atoms")

	// ErrLengthMismatch is returned when charges and coordinates differ in length.
	ErrLengthMismatch = errors.New("geometry: charges and coordinates differ in length")

	// ErrBadCharge is returned for a non-positive nuclear charge.
	ErrBadCharge = errors.New("geometry: nuclear charge must be positive")

	// ErrNonFinite is returned for NaN or ±Inf coordinates or cell entries.
	ErrNonFinite = errors.New("geometry: non-finite coordinate")

	// ErrDegenerateCell is returned for a cell with (near) zero volume.
	ErrDegenerateCell = errors.New("geometry: degenerate unit cell")

	// ErrNoCell is returned when a periodic operation is requested without a cell.
	ErrNoCell = errors.New("geometry: molecule has no unit cell")

	// ErrBadCutoff is returned for a non-positive or non-finite cutoff.
	ErrBadCutoff = errors.New("geometry: cutoff must be finite and > 0")

	// ErrBadPermutation is returned by Permute for an invalid permutation.
	ErrBadPermutation = errors.New("geometry: invalid permutation")
)

func geometryErrorf(tag string, err error) error {
	return fmt.Errorf("geometry.%s: %w", tag, err)
}
