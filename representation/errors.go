package representation

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when a molecule, a neighborhood or a bag exceeds
	// the configured capacity.
	ErrShape = errors.New("representation: shape exceeds capacity")

	// ErrConfiguration is returned for missing or invalid configuration
	// (unknown sorting, elements not covered, non-positive sizes or cutoffs).
	ErrConfiguration = errors.New("representation: invalid configuration")

	// ErrUnsupportedConfiguration is returned for valid configurations that a
	// code path cannot serve, such as gradients of higher Fourier orders.
	ErrUnsupportedConfiguration = errors.New("representation: unsupported configuration")
)

func representationErrorf(tag string, err error) error {
	return fmt.Errorf("representation.%s: %w", tag, err)
}
