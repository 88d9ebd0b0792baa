// SPDX-License-Identifier: MIT

package arad

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generation defaults.
const (
	DefaultSize = 23
	DefaultCut  = 5.0

	// Sentinel fills unused distance slots so padding never looks near.
	Sentinel = 1e100

	channels = 5
)

// angleEpsilon matches 10 machine epsilons.
const angleEpsilon = 10 * 2.220446049250313e-16

// Representation is the (size, 5, size) ARAD array of one molecule.
type Representation struct {
	size int
	data []float64
}

// NewRepresentation returns an empty representation: every distance slot
// holds Sentinel and every other slot 0.
func NewRepresentation(size int) (*Representation, error) {
	if size <= 0 {
		return nil, aradErrorf("NewRepresentation", ErrConfiguration)
	}
	r := &Representation{size: size, data: make([]float64, size*channels*size)}
	for i := 0; i < size; i++ {
		d := r.slab(i, 0)
		for m := range d {
			d[m] = Sentinel
		}
	}

	return r, nil
}

// Size returns the atom and neighbor capacity.
func (r *Representation) Size() int { return r.size }

// At returns channel c of neighbor slot m of atom i.
func (r *Representation) At(i, c, m int) float64 {
	return r.data[(i*channels+c)*r.size+m]
}

// slab aliases channel c of atom i.
func (r *Representation) slab(i, c int) []float64 {
	o := (i*channels + c) * r.size
	return r.data[o : o+r.size]
}

// Len returns the number of real atoms: rows whose own column (channel 2,
// slot 0) is positive.
func (r *Representation) Len() int {
	n := 0
	for i := 0; i < r.size; i++ {
		if r.At(i, 2, 0) > 0 {
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

// Atom is a read-only view of one atom's (5, size) slab.
type Atom struct {
	r *Representation
	i int
}

// Size returns the neighbor capacity.
func (a Atom) Size() int { return a.r.size }

// At returns channel c of neighbor slot m.
func (a Atom) At(c, m int) float64 { return a.r.At(a.i, c, m) }

// Values copies the atom's channels, channel-major.
func (a Atom) Values() []float64 {
	o := a.i * channels * a.r.size
	return append([]float64(nil), a.r.data[o:o+channels*a.r.size]...)
}

// Generate builds the ARAD representation of mol with the given capacity
// and cutoff; tbl may be nil. A cell adds periodic images within cut.
//
// Stage 1: per atom, collect images within cut (self included) and
// stable-sort them by distance.
// Stage 2: taper weights w_c = 1 − sin(π d_c / (2 cut)), norm = Σ w_c.
// Stage 3: channel 3/4 of neighbor b = Σ_c {cos, sin}(θ_bc)·w_c / norm, θ_bc
// the angle b–atom–c.
// Complexity: O(n·k²) for k neighbors per atom.
func Generate(mol *geometry.Molecule, size int, cut float64, tbl *elements.Table) (*Representation, error) {
	const tag = "Generate"
	if tbl == nil {
		tbl = elements.Default()
	}
	if mol == nil {
		return nil, aradErrorf(tag, geometry.ErrEmptyMolecule)
	}
	if err := mol.Validate(); err != nil {
		return nil, aradErrorf(tag, err)
	}
	if size <= 0 || !(cut > 0) || math.IsInf(cut, 0) {
		return nil, aradErrorf(tag, fmt.Errorf("size %d, cut %g: %w", size, cut, ErrConfiguration))
	}
	if mol.Len() > size {
		return nil, aradErrorf(tag, fmt.Errorf("%d atoms, size %d: %w", mol.Len(), size, ErrShape))
	}
	im, err := mol.Replicate(cut)
	if err != nil {
		return nil, aradErrorf(tag, err)
	}
	pos := make(map[int][2]float64)
	for _, z := range im.Charges {
		if _, ok := pos[z]; ok {
			continue
		}
		row, col, err := tbl.Position(z)
		if err != nil {
			return nil, aradErrorf(tag, fmt.Errorf("%w: %w", ErrConfiguration, err))
		}
		pos[z] = [2]float64{float64(row), float64(col)}
	}

	rep, err := NewRepresentation(size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < im.Originals; i++ {
		nb := append([]int{i}, im.Neighbors(i, cut)...)
		dist := make(map[int]float64, len(nb))
		for _, j := range nb {
			dist[j] = im.Distance(i, j)
		}
		sort.SliceStable(nb, func(a, b int) bool { return dist[nb[a]] < dist[nb[b]] })
		if len(nb) > size {
			return nil, aradErrorf(tag, fmt.Errorf("atom %d has %d neighbors, size %d: %w", i, len(nb), size, ErrShape))
		}

		w := make([]float64, len(nb))
		var norm float64
		for c, j := range nb {
			w[c] = 1 - math.Sin(math.Pi*dist[j]/(2*cut))
			norm += w[c]
		}
		d, row, col, cs, sn := rep.slab(i, 0), rep.slab(i, 1), rep.slab(i, 2), rep.slab(i, 3), rep.slab(i, 4)
		for b, jb := range nb {
			vb := r3.Sub(im.Coords[jb], im.Coords[i])
			var sc, ss float64
			for c, jc := range nb {
				theta := angle(vb, r3.Sub(im.Coords[jc], im.Coords[i]), dist[jb], dist[jc])
				sc += math.Cos(theta) * w[c]
				ss += math.Sin(theta) * w[c]
			}
			p := pos[im.Charges[jb]]
			d[b] = dist[jb]
			row[b], col[b] = p[0], p[1]
			cs[b], sn[b] = sc/norm, ss/norm
		}
	}

	return rep, nil
}

// angle is the angle between u and v, or 0 when either is (nearly) null or
// they are parallel.
func angle(u, v r3.Vec, nu, nv float64) float64 {
	norms := nu * nv
	dot := r3.Dot(u, v)
	if math.Abs(norms) <= angleEpsilon || math.Abs(dot-norms) <= angleEpsilon {
		return 0
	}

	return math.Acos(math.Max(-1, math.Min(1, dot/norms)))
}
