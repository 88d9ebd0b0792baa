// Package dataset reads molecule sets from YAML files:
//
//	molecules:
//	  - name: water
//	    atoms:
//	      - {element: O, xyz: [0, 0, 0]}
//	      - {element: H, xyz: [0.76, 0.59, 0]}
//	    cell: [[5, 0, 0], [0, 5, 0], [0, 0, 5]]   # optional
//	    fractional: false                        # optional
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/geometry"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for structurally invalid datasets.
var ErrInvalid = errors.New("dataset: invalid dataset")

// File is the YAML document.
type File struct {
	Molecules []Entry `yaml:"molecules"`
}

// Entry is one molecule as written in the file.
type Entry struct {
	Name       string       `yaml:"name"`
	Atoms      []Atom       `yaml:"atoms"`
	Cell       [][3]float64 `yaml:"cell,omitempty"`
	Fractional bool         `yaml:"fractional,omitempty"`
}

// Atom is one element symbol and its position.
type Atom struct {
	Element string     `yaml:"element"`
	XYZ     [3]float64 `yaml:"xyz"`
}

// Set is a parsed dataset.
type Set struct {
	Names     []string
	Molecules []*geometry.Molecule
}

// Charges returns the nuclear charges of every molecule.
func (s *Set) Charges() [][]int {
	out := make([][]int, len(s.Molecules))
	for i, m := range s.Molecules {
		out[i] = m.Charges
	}

	return out
}

// MaxAtoms returns the size of the largest molecule.
func (s *Set) MaxAtoms() int {
	n := 0
	for _, m := range s.Molecules {
		n = max(n, m.Len())
	}

	return n
}

// Read parses a dataset; tbl may be nil for elements.Default().
func Read(r io.Reader, tbl *elements.Table) (*Set, error) {
	if tbl == nil {
		tbl = elements.Default()
	}
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(f.Molecules) == 0 {
		return nil, fmt.Errorf("no molecules: %w", ErrInvalid)
	}

	s := &Set{}
	for i, e := range f.Molecules {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("mol%d", i)
		}
		m, err := e.Molecule(tbl)
		if err != nil {
			return nil, fmt.Errorf("molecule %q: %w", name, err)
		}
		s.Names = append(s.Names, name)
		s.Molecules = append(s.Molecules, m)
	}

	return s, nil
}

// ReadFile opens and parses path.
func ReadFile(path string, tbl *elements.Table) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, tbl)
}

// Molecule converts the entry.
func (e Entry) Molecule(tbl *elements.Table) (*geometry.Molecule, error) {
	charges := make([]int, len(e.Atoms))
	coords := make([][3]float64, len(e.Atoms))
	for i, a := range e.Atoms {
		z, err := tbl.Charge(a.Element)
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w: %w", i, ErrInvalid, err)
		}
		charges[i] = z
		coords[i] = a.XYZ
	}
	var opts []geometry.Option
	switch len(e.Cell) {
	case 0:
	case 3:
		opts = append(opts, geometry.WithCell([3][3]float64{e.Cell[0], e.Cell[1], e.Cell[2]}))
		if e.Fractional {
			opts = append(opts, geometry.WithFractionalCoords())
		}
	default:
		return nil, fmt.Errorf("cell has %d rows: %w", len(e.Cell), ErrInvalid)
	}

	return geometry.New(charges, coords, opts...)
}
