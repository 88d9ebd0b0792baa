package elements

import (
	"fmt"
	"sort"
	"sync"
)

// Element is one periodic-table entry.
type Element struct {
	Symbol string
	Z      int
	Row    int // period, 1-based
	Column int // compact column, 1-based (see package doc)
}

// Table is an immutable symbol/charge/position lookup.
// All methods are safe for concurrent use.
type Table struct {
	byZ      map[int]Element
	bySymbol map[string]int
	maxZ     int
}

// symbols lists element symbols by nuclear charge (index 0 is Z=1).
var symbols = [...]string{
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// position returns the compact (row, column) of nuclear charge z in 1..118.
func position(z int) (row, col int) {
	switch {
	case z == 1:
		return 1, 1
	case z == 2:
		return 1, 8
	case z <= 10:
		return 2, z - 2
	case z <= 18:
		return 3, z - 10
	case z <= 54:
		row, start := 4, 19
		if z >= 37 {
			row, start = 5, 37
		}
		off := z - start
		switch {
		case off < 2:
			return row, off + 1
		case off < 12:
			return row, off + 7
		default:
			return row, off - 9
		}
	default:
		row, start := 6, 55
		if z >= 87 {
			row, start = 7, 87
		}
		off := z - start
		switch {
		case off < 2:
			return row, off + 1
		case off < 17:
			return row, off + 17
		case off < 26:
			return row, off - 7
		default:
			return row, off - 23
		}
	}
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared table covering Z = 1..118.
func Default() *Table {
	defaultOnce.Do(func() {
		entries := make([]Element, len(symbols))
		for i, s := range symbols {
			z := i + 1
			r, c := position(z)
			entries[i] = Element{Symbol: s, Z: z, Row: r, Column: c}
		}
		t, err := New(entries)
		if err != nil {
			panic(fmt.Sprintf("elements: building default table: %v", err))
		}
		defaultTable = t
	})

	return defaultTable
}

// New builds a Table from entries. The input slice is copied.
// Errors: ErrBadElement, ErrDuplicateElement.
func New(entries []Element) (*Table, error) {
	t := &Table{
		byZ:      make(map[int]Element, len(entries)),
		bySymbol: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Symbol == "" || e.Z <= 0 || e.Row <= 0 || e.Column <= 0 {
			return nil, fmt.Errorf("entry %+v: %w", e, ErrBadElement)
		}
		if _, dup := t.byZ[e.Z]; dup {
			return nil, fmt.Errorf("Z=%d: %w", e.Z, ErrDuplicateElement)
		}
		if _, dup := t.bySymbol[e.Symbol]; dup {
			return nil, fmt.Errorf("symbol %q: %w", e.Symbol, ErrDuplicateElement)
		}
		t.byZ[e.Z] = e
		t.bySymbol[e.Symbol] = e.Z
		if e.Z > t.maxZ {
			t.maxZ = e.Z
		}
	}

	return t, nil
}

// Charge returns the nuclear charge of symbol.
func (t *Table) Charge(symbol string) (int, error) {
	z, ok := t.bySymbol[symbol]
	if !ok {
		return 0, fmt.Errorf("symbol %q: %w", symbol, ErrUnknownElement)
	}

	return z, nil
}

// Symbol returns the element symbol of nuclear charge z.
func (t *Table) Symbol(z int) (string, error) {
	e, ok := t.byZ[z]
	if !ok {
		return "", fmt.Errorf("Z=%d: %w", z, ErrUnknownElement)
	}

	return e.Symbol, nil
}

// Position returns the (row, column) of nuclear charge z.
func (t *Table) Position(z int) (row, col int, err error) {
	e, ok := t.byZ[z]
	if !ok {
		return 0, 0, fmt.Errorf("Z=%d: %w", z, ErrUnknownElement)
	}

	return e.Row, e.Column, nil
}

// Lookup returns the entry for z.
func (t *Table) Lookup(z int) (Element, bool) {
	e, ok := t.byZ[z]
	return e, ok
}

// MaxZ returns the largest nuclear charge in the table.
func (t *Table) MaxZ() int { return t.maxZ }

// Elements returns all entries ordered by nuclear charge.
func (t *Table) Elements() []Element {
	out := make([]Element, 0, len(t.byZ))
	for _, e := range t.byZ {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })

	return out
}

// Charges converts symbols to nuclear charges.
func (t *Table) Charges(syms []string) ([]int, error) {
	out := make([]int, len(syms))
	for i, s := range syms {
		z, err := t.Charge(s)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}

	return out, nil
}
