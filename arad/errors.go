package arad

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates more atoms or neighbors than the capacity.
	ErrShape = errors.New("arad: shape exceeds capacity")

	// ErrShapeMismatch indicates descriptor sets of different capacity.
	ErrShapeMismatch = errors.New("arad: descriptor shapes differ")

	// ErrConfiguration indicates invalid sizes, cutoffs, widths or sigmas,
	// or an element without a periodic-table position.
	ErrConfiguration = errors.New("arad: invalid configuration")
)

func aradErrorf(tag string, err error) error {
	return fmt.Errorf("arad.%s: %w", tag, err)
}
