package geometry

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/matrix"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cell holds the three lattice vectors of a periodic system as rows.
type Cell [3]r3.Vec

// Volume returns the signed cell volume a·(b×c).
func (c Cell) Volume() float64 {
	return r3.Dot(c[0], r3.Cross(c[1], c[2]))
}

// Heights returns the perpendicular distance between opposite faces along
// each lattice direction: h_k = |V| / |a_l × a_m|.
func (c Cell) Heights() [3]float64 {
	v := math.Abs(c.Volume())
	return [3]float64{
		v / r3.Norm(r3.Cross(c[1], c[2])),
		v / r3.Norm(r3.Cross(c[2], c[0])),
		v / r3.Norm(r3.Cross(c[0], c[1])),
	}
}

// Cartesian converts fractional coordinates f into Cartesian ones.
func (c Cell) Cartesian(f r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(f.X, c[0]), r3.Scale(f.Y, c[1])), r3.Scale(f.Z, c[2]))
}

// Shift returns i·a + j·b + k·c.
func (c Cell) Shift(i, j, k int) r3.Vec {
	return c.Cartesian(r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
}

// Molecule is an ordered set of atoms with an optional periodic cell.
// Construct it with New; fields are exported for read access and must not be
// mutated after construction.
type Molecule struct {
	Charges []int
	Coords  []r3.Vec
	Cell    *Cell
}

// Option configures New.
type Option func(*buildOptions)

type buildOptions struct {
	cell       *Cell
	fractional bool
}

// WithCell attaches a unit cell whose rows are the lattice vectors.
func WithCell(rows [3][3]float64) Option {
	return func(o *buildOptions) {
		c := Cell{}
		for i, r := range rows {
			c[i] = r3.Vec{X: r[0], Y: r[1], Z: r[2]}
		}
		o.cell = &c
	}
}

// WithFractionalCoords interprets coordinates as fractions of the cell
// vectors. It has no effect without WithCell.
func WithFractionalCoords() Option {
	return func(o *buildOptions) { o.fractional = true }
}

// New copies and validates charges and coordinates.
// Errors: ErrEmptyMolecule, ErrLengthMismatch, ErrBadCharge, ErrNonFinite,
// ErrDegenerateCell.
func New(charges []int, coords [][3]float64, opts ...Option) (*Molecule, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	m := &Molecule{
		Charges: append([]int(nil), charges...),
		Coords:  make([]r3.Vec, len(coords)),
		Cell:    o.cell,
	}
	for i, c := range coords {
		m.Coords[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if o.fractional && m.Cell != nil {
		for i, f := range m.Coords {
			m.Coords[i] = m.Cell.Cartesian(f)
		}
	}

	return m, nil
}

// Validate checks the molecule invariants.
func (m *Molecule) Validate() error {
	if len(m.Charges) == 0 {
		return geometryErrorf("Validate", ErrEmptyMolecule)
	}
	if len(m.Charges) != len(m.Coords) {
		return geometryErrorf("Validate", ErrLengthMismatch)
	}
	for i, z := range m.Charges {
		if z <= 0 {
			return geometryErrorf(fmt.Sprintf("Validate: atom %d", i), ErrBadCharge)
		}
	}
	for i, c := range m.Coords {
		if !finite(c) {
			return geometryErrorf(fmt.Sprintf("Validate: atom %d", i), ErrNonFinite)
		}
	}
	if m.Cell != nil {
		for _, v := range m.Cell {
			if !finite(v) {
				return geometryErrorf("Validate: cell", ErrNonFinite)
			}
		}
		if math.Abs(m.Cell.Volume()) < 1e-12 {
			return geometryErrorf("Validate", ErrDegenerateCell)
		}
	}

	return nil
}

func finite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// Len returns the number of atoms.
func (m *Molecule) Len() int { return len(m.Charges) }

// Periodic reports whether a unit cell is attached.
func (m *Molecule) Periodic() bool { return m.Cell != nil }

// Distance returns |R_i − R_j|.
func (m *Molecule) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(m.Coords[i], m.Coords[j]))
}

// Distances returns the full symmetric distance matrix.
// Complexity: O(n²).
func (m *Molecule) Distances() *matrix.Dense {
	n := m.Len()
	d, _ := matrix.NewDense(n, n) // n > 0 after Validate
	for i := 0; i < n; i++ {
		row := d.RowView(i)
		for j := 0; j < i; j++ {
			r := m.Distance(i, j)
			row[j] = r
			d.RowView(j)[i] = r
		}
	}

	return d
}

// Transform returns a copy with f applied to every coordinate; the cell
// vectors are transformed with the linear part f(v) − f(0).
func (m *Molecule) Transform(f func(r3.Vec) r3.Vec) *Molecule {
	out := &Molecule{Charges: append([]int(nil), m.Charges...), Coords: make([]r3.Vec, m.Len())}
	for i, c := range m.Coords {
		out.Coords[i] = f(c)
	}
	if m.Cell != nil {
		origin := f(r3.Vec{})
		c := Cell{}
		for i, v := range m.Cell {
			c[i] = r3.Sub(f(v), origin)
		}
		out.Cell = &c
	}

	return out
}

// Permute returns a copy with atoms reordered so that atom i of the result is
// atom perm[i] of m.
func (m *Molecule) Permute(perm []int) (*Molecule, error) {
	if len(perm) != m.Len() {
		return nil, geometryErrorf("Permute", ErrBadPermutation)
	}
	seen := make([]bool, m.Len())
	out := &Molecule{Charges: make([]int, m.Len()), Coords: make([]r3.Vec, m.Len()), Cell: m.Cell}
	for i, p := range perm {
		if p < 0 || p >= m.Len() || seen[p] {
			return nil, geometryErrorf("Permute", ErrBadPermutation)
		}
		seen[p] = true
		out.Charges[i] = m.Charges[p]
		out.Coords[i] = m.Coords[p]
	}

	return out, nil
}

// CosAngle returns the cosine of the angle a-center-b. Degenerate inputs
// (a zero-length arm) yield 1.
func CosAngle(a, center, b r3.Vec) float64 {
	u := r3.Sub(a, center)
	v := r3.Sub(b, center)
	nu, nv := r3.Norm(u), r3.Norm(v)
	if nu == 0 || nv == 0 {
		return 1
	}
	c := r3.Dot(u, v) / (nu * nv)

	return math.Max(-1, math.Min(1, c))
}

// Angle returns the angle a-center-b in radians.
func Angle(a, center, b r3.Vec) float64 {
	return math.Acos(CosAngle(a, center, b))
}
