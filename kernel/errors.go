package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for an unknown family, unknown or missing
	// hyperparameter keys, unequal list lengths or invalid values.
	ErrConfiguration = errors.New("kernel: invalid configuration")

	// ErrShapeMismatch is returned when compared descriptors differ in length.
	ErrShapeMismatch = errors.New("kernel: descriptor shape mismatch")

	// ErrEmptyInput is returned when a descriptor set has no entries.
	ErrEmptyInput = errors.New("kernel: empty descriptor set")
)

func kernelErrorf(tag string, err error) error {
	return fmt.Errorf("kernel.%s: %w", tag, err)
}
