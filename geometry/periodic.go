package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Images is an explicit neighbor list made of the original atoms followed by
// their periodic replicas.
//
// Invariants:
//   - indices [0, Originals) are the original atoms, in input order;
//   - Origin[i] is the original atom copied by image i (Origin[i] == i for originals);
//   - Coords[i] == molecule.Coords[Origin[i]] + Shift[i].
type Images struct {
	Charges   []int
	Coords    []r3.Vec
	Origin    []int
	Shift     [][3]int
	Originals int
}

// Len returns the total number of atoms, replicas included.
func (im *Images) Len() int { return len(im.Charges) }

// Distance returns the distance between images i and j.
func (im *Images) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(im.Coords[i], im.Coords[j]))
}

// ReplicaCounts returns, per lattice direction, how many cells on each side
// of the home cell can hold an atom within cut of a home-cell atom:
// floor(cut / h_k) + 1.
func (c Cell) ReplicaCounts(cut float64) [3]int {
	h := c.Heights()
	var out [3]int
	for k := range out {
		out[k] = int(math.Floor(cut/h[k])) + 1
	}

	return out
}

// Replicate builds the neighbor list for a cutoff. Non-periodic molecules
// yield the originals only. Replicas are appended in (i, j, k) lexicographic
// shift order, atoms in input order within each shift.
//
// Stage 1: derive replica counts from the cell heights.
// Stage 2: allocate the full list once (no incremental concatenation).
// Stage 3: fill originals, then every non-zero shift.
// Complexity: O(n·(2a+1)(2b+1)(2c+1)).
func (m *Molecule) Replicate(cut float64) (*Images, error) {
	if !(cut > 0) || math.IsInf(cut, 0) {
		return nil, geometryErrorf("Replicate", ErrBadCutoff)
	}
	n := m.Len()
	counts := [3]int{}
	if m.Cell != nil {
		counts = m.Cell.ReplicaCounts(cut)
	}
	cells := (2*counts[0] + 1) * (2*counts[1] + 1) * (2*counts[2] + 1)
	total := n * cells
	im := &Images{
		Charges:   make([]int, 0, total),
		Coords:    make([]r3.Vec, 0, total),
		Origin:    make([]int, 0, total),
		Shift:     make([][3]int, 0, total),
		Originals: n,
	}
	appendShift := func(i, j, k int) {
		var d r3.Vec
		if m.Cell != nil {
			d = m.Cell.Shift(i, j, k)
		}
		for a := 0; a < n; a++ {
			im.Charges = append(im.Charges, m.Charges[a])
			im.Coords = append(im.Coords, r3.Add(m.Coords[a], d))
			im.Origin = append(im.Origin, a)
			im.Shift = append(im.Shift, [3]int{i, j, k})
		}
	}
	appendShift(0, 0, 0)
	for i := -counts[0]; i <= counts[0]; i++ {
		for j := -counts[1]; j <= counts[1]; j++ {
			for k := -counts[2]; k <= counts[2]; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				appendShift(i, j, k)
			}
		}
	}

	return im, nil
}

// Neighbors returns the indices of images within cut of original atom a,
// excluding a itself, in image order.
func (im *Images) Neighbors(a int, cut float64) []int {
	var out []int
	for j := range im.Coords {
		if j == a {
			continue
		}
		if im.Distance(a, j) < cut {
			out = append(out, j)
		}
	}

	return out
}
