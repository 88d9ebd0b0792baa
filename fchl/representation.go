// SPDX-License-Identifier: MIT

package fchl

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qmlkit/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generation defaults.
const (
	DefaultSize      = 23
	DefaultNeighbors = 23
	DefaultCut       = 5.0

	// Sentinel fills unused distance slots.
	Sentinel = 1e100

	channels = 5

	// atomThreshold is the smallest channel-1 value that marks a real atom.
	atomThreshold = 1e-4
)

// Representation is the (size, 5, neighbors) FCHL18 array of one molecule.
type Representation struct {
	size, neighbors int
	data            []float64
}

// NewRepresentation returns an empty representation.
func NewRepresentation(size, neighbors int) (*Representation, error) {
	if size <= 0 || neighbors <= 0 {
		return nil, fchlErrorf("NewRepresentation", fmt.Errorf("size %d, neighbors %d: %w", size, neighbors, ErrConfiguration))
	}
	r := &Representation{size: size, neighbors: neighbors, data: make([]float64, size*channels*neighbors)}
	for i := 0; i < size; i++ {
		d := r.slab(i, 0)
		for m := range d {
			d[m] = Sentinel
		}
	}

	return r, nil
}

// Size returns the atom capacity.
func (r *Representation) Size() int { return r.size }

// Neighbors returns the neighbor capacity.
func (r *Representation) Neighbors() int { return r.neighbors }

// At returns channel c of neighbor slot m of atom i.
func (r *Representation) At(i, c, m int) float64 {
	return r.data[(i*channels+c)*r.neighbors+m]
}

func (r *Representation) slab(i, c int) []float64 {
	o := (i*channels + c) * r.neighbors
	return r.data[o : o+r.neighbors]
}

// Len returns the number of real atoms, those whose own charge slot is set.
func (r *Representation) Len() int {
	n := 0
	for i := 0; i < r.size; i++ {
		if r.At(i, 1, 0) > atomThreshold {
			n++
		}
	}

	return n
}

// Atoms returns views of the first Len() atom environments.
func (r *Representation) Atoms() []Atom {
	out := make([]Atom, r.Len())
	for i := range out {
		out[i] = Atom{r: r, i: i}
	}

	return out
}

// Atom is a read-only view of one atom's (5, neighbors) slab.
type Atom struct {
	r *Representation
	i int
}

// Charge returns the nuclear charge of the atom.
func (a Atom) Charge() int { return int(math.Round(a.r.At(a.i, 1, 0))) }

// At returns channel c of neighbor slot m.
func (a Atom) At(c, m int) float64 { return a.r.At(a.i, c, m) }

// Values copies the atom's (5, neighbors) slab, channel-major.
func (a Atom) Values() []float64 {
	o := a.i * channels * a.r.neighbors
	return append([]float64(nil), a.r.data[o:o+channels*a.r.neighbors]...)
}

// Generate builds the FCHL18 representation of mol. Neighbors (the atom
// itself included) closer than cut are stored in ascending distance; a cell
// adds periodic images.
// Complexity: O(n·k log k) for k neighbors per atom.
func Generate(mol *geometry.Molecule, size, neighbors int, cut float64) (*Representation, error) {
	const tag = "Generate"
	if mol == nil {
		return nil, fchlErrorf(tag, geometry.ErrEmptyMolecule)
	}
	if err := mol.Validate(); err != nil {
		return nil, fchlErrorf(tag, err)
	}
	if !(cut > 0) || math.IsInf(cut, 0) {
		return nil, fchlErrorf(tag, fmt.Errorf("cut %g: %w", cut, ErrConfiguration))
	}
	rep, err := NewRepresentation(size, neighbors)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	if mol.Len() > size {
		return nil, fchlErrorf(tag, fmt.Errorf("%d atoms, size %d: %w", mol.Len(), size, ErrShape))
	}
	im, err := mol.Replicate(cut)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}

	for i := 0; i < im.Originals; i++ {
		nb := append([]int{i}, im.Neighbors(i, cut)...)
		dist := make(map[int]float64, len(nb))
		for _, j := range nb {
			dist[j] = im.Distance(i, j)
		}
		sort.SliceStable(nb, func(a, b int) bool { return dist[nb[a]] < dist[nb[b]] })
		if len(nb) > neighbors {
			return nil, fchlErrorf(tag, fmt.Errorf("atom %d has %d neighbors, capacity %d: %w", i, len(nb), neighbors, ErrShape))
		}
		d, z := rep.slab(i, 0), rep.slab(i, 1)
		dx, dy, dz := rep.slab(i, 2), rep.slab(i, 3), rep.slab(i, 4)
		for m, j := range nb {
			v := r3.Sub(im.Coords[j], im.Coords[i])
			d[m] = dist[j]
			z[m] = float64(im.Charges[j])
			dx[m], dy[m], dz[m] = v.X, v.Y, v.Z
		}
	}

	return rep, nil
}
