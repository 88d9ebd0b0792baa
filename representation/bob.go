package representation

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/geometry"
)

// Bag is one labelled slice of a Bag-of-Bonds vector.
type Bag struct {
	// Z1 == Z2 with Pair false is the self bag of Z1.
	Z1, Z2 int
	Pair   bool
	Offset int
	Cap    int
}

// BagLayout returns the bag order produced by BagOfBonds for asize: elements
// by ascending capacity (ties by Z), and per element its self bag, its
// same-element pair bag, then one cross bag per later element.
func BagLayout(asize map[string]int, tbl *elements.Table) ([]Bag, int, error) {
	if tbl == nil {
		tbl = elements.Default()
	}
	if len(asize) == 0 {
		return nil, 0, representationErrorf("BagLayout", fmt.Errorf("empty asize: %w", ErrConfiguration))
	}
	type entry struct{ z, cap int }
	es := make([]entry, 0, len(asize))
	for sym, c := range asize {
		z, err := tbl.Charge(sym)
		if err != nil {
			return nil, 0, representationErrorf("BagLayout", fmt.Errorf("%w: %w", ErrConfiguration, err))
		}
		if c < 0 {
			return nil, 0, representationErrorf("BagLayout", fmt.Errorf("%s capacity %d: %w", sym, c, ErrConfiguration))
		}
		es = append(es, entry{z, c})
	}
	sort.Slice(es, func(a, b int) bool {
		if es[a].cap != es[b].cap {
			return es[a].cap < es[b].cap
		}

		return es[a].z < es[b].z
	})

	var bags []Bag
	off := 0
	add := func(b Bag) {
		b.Offset = off
		off += b.Cap
		bags = append(bags, b)
	}
	for i, ei := range es {
		add(Bag{Z1: ei.z, Z2: ei.z, Cap: ei.cap})
		add(Bag{Z1: ei.z, Z2: ei.z, Pair: true, Cap: ei.cap * (ei.cap - 1) / 2})
		for _, ej := range es[i+1:] {
			add(Bag{Z1: ei.z, Z2: ej.z, Pair: true, Cap: ei.cap * ej.cap})
		}
	}

	return bags, off, nil
}

// BagOfBonds returns the Bag-of-Bonds vector of mol. asize maps element
// symbols to the maximum number of atoms of that element; tbl may be nil.
// Each bag holds its Coulomb terms sorted descending and zero-padded.
// Complexity: O(n² log n).
func BagOfBonds(mol *geometry.Molecule, asize map[string]int, tbl *elements.Table) ([]float64, error) {
	const tag = "BagOfBonds"
	if err := checkMolecule(tag, mol); err != nil {
		return nil, err
	}
	bags, total, err := BagLayout(asize, tbl)
	if err != nil {
		return nil, err
	}

	type key struct {
		z1, z2 int
		pair   bool
	}
	index := make(map[key]int, len(bags))
	covered := make(map[int]bool)
	for i, b := range bags {
		index[key{b.Z1, b.Z2, b.Pair}] = i
		covered[b.Z1] = true
	}
	for _, z := range mol.Charges {
		if !covered[z] {
			return nil, representationErrorf(tag, fmt.Errorf("Z=%d not in asize: %w", z, ErrConfiguration))
		}
	}

	values := make([][]float64, len(bags))
	push := func(k key, v float64) {
		values[index[k]] = append(values[index[k]], v)
	}
	m := coulomb(mol)
	for i, zi := range mol.Charges {
		push(key{zi, zi, false}, m[i][i])
		for j := 0; j < i; j++ {
			zj := mol.Charges[j]
			k := key{zi, zj, true}
			if _, ok := index[k]; !ok {
				k = key{zj, zi, true}
			}
			push(k, m[i][j])
		}
	}

	out := make([]float64, total)
	for i, b := range bags {
		v := values[i]
		if len(v) > b.Cap {
			return nil, representationErrorf(tag, fmt.Errorf("bag (%d,%d) holds %d of %d: %w", b.Z1, b.Z2, len(v), b.Cap, ErrShape))
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(v)))
		copy(out[b.Offset:], v)
	}

	return out, nil
}
