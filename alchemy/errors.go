package alchemy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for invalid builder arguments (non-positive
	// widths or emax, non-square or asymmetric custom matrices, missing
	// table entries) and by Covers for charges outside the matrix.
	ErrConfiguration = errors.New("alchemy: invalid configuration")
)

func alchemyErrorf(tag string, err error) error {
	return fmt.Errorf("alchemy.%s: %w", tag, err)
}
