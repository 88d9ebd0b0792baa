package slatm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/geometry"
	"gonum.org/v1/gonum/floats"
)

// global marks a whole-molecule descriptor in place of a central atom.
const global = -1

// accumulator is the fixed-size alchemy channel of one arity.
type accumulator struct {
	data []float64
}

func (a *accumulator) add(term []float64) error {
	if a.data == nil {
		a.data = make([]float64, len(term))
	}
	if len(term) != len(a.data) {
		return fmt.Errorf("term of %d into channel of %d: %w", len(term), len(a.data), ErrInconsistentTermSize)
	}
	floats.Add(a.data, term)

	return nil
}

// system is a molecule prepared for one catalog and option set.
type system struct {
	im       *geometry.Images
	o        options
	xs2, xs3 []float64
	// w2 caches c/x^rpower on the radial grid.
	w2 []float64
}

func prepare(tag string, mol *geometry.Molecule, cat *Catalog, o options) (*system, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, slatmErrorf(tag, fmt.Errorf("empty catalog: %w", ErrConfiguration))
	}
	if mol == nil {
		return nil, slatmErrorf(tag, geometry.ErrEmptyMolecule)
	}
	if err := mol.Validate(); err != nil {
		return nil, slatmErrorf(tag, err)
	}
	src := mol
	if o.periodic {
		if mol.Cell == nil {
			return nil, slatmErrorf(tag, fmt.Errorf("periodic mode without cell: %w", ErrConfiguration))
		}
	} else {
		src = &geometry.Molecule{Charges: mol.Charges, Coords: mol.Coords}
	}
	im, err := src.Replicate(o.rcut)
	if err != nil {
		return nil, slatmErrorf(tag, err)
	}

	s := &system{im: im, o: o, xs2: o.radialGrid(), xs3: o.angularGrid()}
	c := 1 / math.Sqrt(2*math.Pi*o.sigma2*o.sigma2)
	s.w2 = make([]float64, len(s.xs2))
	for m, x := range s.xs2 {
		s.w2[m] = c / math.Pow(x, o.rpower)
	}

	return s, nil
}

// oneBody is z·count(z) for a molecule, or z when the central atom is a z.
func (s *system) oneBody(z, center int) float64 {
	if center != global {
		if s.im.Charges[center] == z {
			return float64(z)
		}
		return 0
	}
	n := 0
	for i := 0; i < s.im.Originals; i++ {
		if s.im.Charges[i] == z {
			n++
		}
	}

	return float64(z * n)
}

// twoBody smears every (z1, z2) distance below rcut. Each ordered pair
// (original i, neighbor j) contributes half, so unordered pairs count once
// and per-atom spectra sum to the molecular one.
func (s *system) twoBody(z1, z2, center int) []float64 {
	ys := make([]float64, len(s.xs2))
	inv := 1 / (2 * s.o.sigma2 * s.o.sigma2)
	visit := func(i int) {
		zi := s.im.Charges[i]
		if zi != z1 && zi != z2 {
			return
		}
		for _, j := range s.im.Neighbors(i, s.o.rcut) {
			zj := s.im.Charges[j]
			if !(zi == z1 && zj == z2) && !(zi == z2 && zj == z1) {
				continue
			}
			r := s.im.Distance(i, j)
			for m, x := range s.xs2 {
				ys[m] += 0.5 * s.w2[m] * math.Exp(-(x-r)*(x-r)*inv)
			}
		}
	}
	if center != global {
		visit(center)
		return ys
	}
	for i := 0; i < s.im.Originals; i++ {
		visit(i)
	}

	return ys
}

// threeBody smears the angle at the z2 atom of every (z1, z2, z3) triple
// whose three distances are below rcut. Molecular spectra take apexes from
// the original atoms; per-atom spectra take every triple holding the
// central atom.
func (s *system) threeBody(t []int, center int) []float64 {
	ys := make([]float64, len(s.xs3))
	c := 1 / math.Sqrt(2*math.Pi*s.o.sigma3*s.o.sigma3)
	inv := 1 / (2 * s.o.sigma3 * s.o.sigma3)
	add := func(i, j, k int) {
		rij, rjk, rik := s.im.Distance(i, j), s.im.Distance(j, k), s.im.Distance(i, k)
		if rij >= s.o.rcut || rjk >= s.o.rcut || rik >= s.o.rcut || rik == 0 {
			return
		}
		xi, xj, xk := s.im.Coords[i], s.im.Coords[j], s.im.Coords[k]
		ca := geometry.CosAngle(xj, xi, xk)
		cb := geometry.CosAngle(xi, xj, xk)
		cc := geometry.CosAngle(xi, xk, xj)
		theta := math.Acos(cb)
		w := c * (1 + ca*cb*cc) / math.Pow(rij*rjk*rik, 3)
		for m, x := range s.xs3 {
			ys[m] += w * math.Exp(-(x-theta)*(x-theta)*inv)
		}
	}
	match := func(i, k int) bool {
		if s.im.Charges[i] != t[0] || s.im.Charges[k] != t[2] || i == k {
			return false
		}

		return t[0] != t[2] || i < k
	}

	if center == global {
		for j := 0; j < s.im.Originals; j++ {
			if s.im.Charges[j] != t[1] {
				continue
			}
			nb := s.im.Neighbors(j, s.o.rcut)
			for _, i := range nb {
				for _, k := range nb {
					if match(i, k) {
						add(i, j, k)
					}
				}
			}
		}

		return ys
	}

	set := append([]int{center}, s.im.Neighbors(center, s.o.rcut)...)
	for _, j := range set {
		if s.im.Charges[j] != t[1] {
			continue
		}
		for _, i := range set {
			if i == j {
				continue
			}
			for _, k := range set {
				if k == j || !match(i, k) {
					continue
				}
				if i != center && j != center && k != center {
					continue
				}
				add(i, j, k)
			}
		}
	}

	return ys
}

// descriptor assembles the catalog-ordered vector and its (n1, n2, n3).
func (s *system) descriptor(cat *Catalog, center int) ([]float64, [3]int, error) {
	var out []float64
	var sizes [3]int
	var acc [3]accumulator
	for _, t := range cat.types {
		var term []float64
		switch len(t) {
		case 1:
			term = []float64{s.oneBody(t[0], center)}
		case 2:
			term = s.twoBody(t[0], t[1], center)
		default:
			term = s.threeBody(t, center)
		}
		a := len(t) - 1
		if s.o.alchemy {
			if err := acc[a].add(term); err != nil {
				return nil, sizes, err
			}
			continue
		}
		sizes[a] += len(term)
		out = append(out, term...)
	}
	if s.o.alchemy {
		for a := range acc {
			sizes[a] = len(acc[a].data)
			out = append(out, acc[a].data...)
		}
	}

	return out, sizes, nil
}

// Generate returns the molecular SLATM descriptor of mol.
func Generate(mol *geometry.Molecule, cat *Catalog, opts ...Option) ([]float64, error) {
	const tag = "Generate"
	s, err := prepare(tag, mol, cat, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	out, _, err := s.descriptor(cat, global)
	if err != nil {
		return nil, slatmErrorf(tag, err)
	}

	return out, nil
}

// GenerateLocal returns one SLATM descriptor per original atom. The 2-body
// spectra carry a factor ½ so that pair terms are not double counted across
// atoms. Every atom must resolve to the same (n1, n2, n3) layout.
func GenerateLocal(mol *geometry.Molecule, cat *Catalog, opts ...Option) ([][]float64, error) {
	const tag = "GenerateLocal"
	s, err := prepare(tag, mol, cat, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	out := make([][]float64, s.im.Originals)
	var first [3]int
	for a := range out {
		v, sizes, err := s.descriptor(cat, a)
		if err != nil {
			return nil, slatmErrorf(tag, err)
		}
		if a == 0 {
			first = sizes
		} else if sizes != first {
			return nil, slatmErrorf(tag, fmt.Errorf("atom %d layout %v, atom 0 %v: %w", a, sizes, first, ErrInconsistentTermSize))
		}
		out[a] = v
	}

	return out, nil
}

// Layout returns the section lengths (n1, n2, n3) of descriptors generated
// against c with opts.
func (c *Catalog) Layout(opts ...Option) (n1, n2, n3 int) {
	o := gatherOptions(opts)
	per := [3]int{1, len(o.radialGrid()), len(o.angularGrid())}
	var out [3]int
	for a := range out {
		cnt := c.Count(a + 1)
		if o.alchemy {
			cnt = min(cnt, 1)
		}
		out[a] = cnt * per[a]
	}

	return out[0], out[1], out[2]
}
