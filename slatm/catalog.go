package slatm

import (
	"fmt"
	"slices"
	"sort"
)

// Catalog is the ordered list of many-body types shared by every SLATM
// descriptor of a dataset. It is immutable once built.
type Catalog struct {
	types [][]int
	zs    []int
}

// BuildCatalog scans the nuclear charges of a dataset and enumerates the
// minimal set of many-body types. With WithPeriodic the per-element maximum
// count is raised to at least 3, since images add terms absent from the
// isolated cell.
//
// Stage 1: zs = sorted unique charges; nzmax[z] = max count of z per molecule.
// Stage 2: 1-body [z]; 2-body [z,z] then the 2-combinations of zs.
// Stage 3: for every z_i and 2-body [j,k] try [i,j,k], [i,k,j], [j,i,k];
// keep a candidate that is new (reversal included) and within nzmax.
func BuildCatalog(charges [][]int, opts ...Option) (*Catalog, error) {
	o := gatherOptions(opts)
	if len(charges) == 0 {
		return nil, slatmErrorf("BuildCatalog", fmt.Errorf("no molecules: %w", ErrConfiguration))
	}

	nzmax := make(map[int]int)
	for _, mol := range charges {
		count := make(map[int]int)
		for _, z := range mol {
			if z <= 0 {
				return nil, slatmErrorf("BuildCatalog", fmt.Errorf("charge %d: %w", z, ErrConfiguration))
			}
			count[z]++
		}
		for z, n := range count {
			nzmax[z] = max(nzmax[z], n)
		}
	}
	if len(nzmax) == 0 {
		return nil, slatmErrorf("BuildCatalog", fmt.Errorf("no atoms: %w", ErrConfiguration))
	}
	zs := make([]int, 0, len(nzmax))
	for z := range nzmax {
		zs = append(zs, z)
		if o.periodic {
			nzmax[z] = max(nzmax[z], 3)
		}
	}
	sort.Ints(zs)

	var types [][]int
	for _, z := range zs {
		types = append(types, []int{z})
	}
	var pairs [][]int
	for _, z := range zs {
		pairs = append(pairs, []int{z, z})
	}
	for a := range zs {
		for b := a + 1; b < len(zs); b++ {
			pairs = append(pairs, []int{zs[a], zs[b]})
		}
	}
	types = append(types, pairs...)

	var triples [][]int
	seen := func(t []int) bool {
		r := []int{t[2], t[1], t[0]}
		for _, u := range triples {
			if slices.Equal(u, t) || slices.Equal(u, r) {
				return true
			}
		}

		return false
	}
	within := func(t []int) bool {
		count := make(map[int]int, 3)
		for _, z := range t {
			count[z]++
		}
		for z, n := range count {
			if n > nzmax[z] {
				return false
			}
		}

		return true
	}
	for _, i := range zs {
		for _, p := range pairs {
			j, k := p[0], p[1]
			for _, cand := range [][]int{{i, j, k}, {i, k, j}, {j, i, k}} {
				if !seen(cand) && within(cand) {
					triples = append(triples, cand)
				}
			}
		}
	}
	types = append(types, triples...)

	return &Catalog{types: types, zs: zs}, nil
}

// NewCatalog wraps an explicit type list. Types must have arity 1, 2 or 3,
// positive charges, and be grouped by ascending arity.
func NewCatalog(types [][]int) (*Catalog, error) {
	if len(types) == 0 {
		return nil, slatmErrorf("NewCatalog", ErrConfiguration)
	}
	set := make(map[int]bool)
	last := 1
	out := make([][]int, len(types))
	for i, t := range types {
		if len(t) < last || len(t) > 3 {
			return nil, slatmErrorf("NewCatalog", fmt.Errorf("type %v: %w", t, ErrConfiguration))
		}
		last = len(t)
		for _, z := range t {
			if z <= 0 {
				return nil, slatmErrorf("NewCatalog", fmt.Errorf("type %v: %w", t, ErrConfiguration))
			}
			set[z] = true
		}
		out[i] = slices.Clone(t)
	}
	zs := make([]int, 0, len(set))
	for z := range set {
		zs = append(zs, z)
	}
	sort.Ints(zs)

	return &Catalog{types: out, zs: zs}, nil
}

// Len returns the number of types.
func (c *Catalog) Len() int { return len(c.types) }

// Types returns a copy of the ordered type list.
func (c *Catalog) Types() [][]int {
	out := make([][]int, len(c.types))
	for i, t := range c.types {
		out[i] = slices.Clone(t)
	}

	return out
}

// Charges returns the sorted unique charges the catalog was built from.
func (c *Catalog) Charges() []int { return slices.Clone(c.zs) }

// Count returns how many types of the given arity the catalog holds.
func (c *Catalog) Count(arity int) int {
	n := 0
	for _, t := range c.types {
		if len(t) == arity {
			n++
		}
	}

	return n
}
