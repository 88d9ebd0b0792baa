package elements

import "errors"

var (
	// ErrUnknownElement is returned when a symbol or nuclear charge is not in the table.
	ErrUnknownElement = errors.New("elements: unknown element")

	// ErrDuplicateElement is returned by New when a symbol or charge repeats.
	ErrDuplicateElement = errors.New("elements: duplicate element")

	// ErrBadElement is returned by New for non-positive charges, rows or columns
	// and for empty symbols.
	ErrBadElement = errors.New("elements: invalid element entry")
)
