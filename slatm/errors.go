package slatm

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates a missing or empty catalog, bad grid or
	// cutoff parameters, or periodic mode without a cell.
	ErrConfiguration = errors.New("slatm: invalid configuration")

	// ErrInconsistentTermSize indicates that terms sharing an alchemy
	// accumulator differ in length, or that the atoms of one molecule
	// resolved to different (n1, n2, n3) layouts.
	ErrInconsistentTermSize = errors.New("slatm: inconsistent term size")
)

func slatmErrorf(tag string, err error) error {
	return fmt.Errorf("slatm.%s: %w", tag, err)
}
