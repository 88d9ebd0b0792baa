package fchl

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates more atoms or neighbors than the capacity.
	ErrShape = errors.New("fchl: shape exceeds capacity")

	// ErrShapeMismatch indicates descriptor sets of different capacity.
	ErrShapeMismatch = errors.New("fchl: descriptor shapes differ")

	// ErrConfiguration indicates invalid sizes, cutoffs, kernel options or an
	// alchemy coupling that does not cover every charge.
	ErrConfiguration = errors.New("fchl: invalid configuration")
)

func fchlErrorf(tag string, err error) error {
	return fmt.Errorf("fchl.%s: %w", tag, err)
}
