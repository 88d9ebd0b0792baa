package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/qmlkit/arad"
	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/fchl"
	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/internal/config"
	"github.com/katalvlaran/qmlkit/internal/dataset"
	"github.com/katalvlaran/qmlkit/representation"
	"github.com/katalvlaran/qmlkit/slatm"
)

// Descriptor families understood by represent and kernel.
const (
	familyCM         = "cm"
	familyCMEigen    = "cm-eigen"
	familyCMAtomic   = "cm-atomic"
	familyBoB        = "bob"
	familySLATM      = "slatm"
	familySLATMLocal = "slatm-local"
	familyACSF       = "acsf"
	familyFCHL19     = "fchl19"
	familyARAD       = "arad"
	familyFCHL       = "fchl"
)

var descriptorFamilies = []string{
	familyCM, familyCMEigen, familyCMAtomic, familyBoB, familySLATM, familySLATMLocal,
	familyACSF, familyFCHL19, familyARAD, familyFCHL,
}

// descriptors holds x[molecule][row][feature]. Molecular families carry one
// row per molecule, atomic families one row per atom.
type descriptors struct {
	family  string
	perAtom bool
	x       [][][]float64
}

// describer builds the descriptors of every molecule of a dataset, in
// parallel, from a resolved configuration.
type describer struct {
	cfg     config.RepresentationConfig
	workers int
	tbl     *elements.Table
}

func newDescriber(cfg *config.Config) describer {
	return describer{cfg: cfg.Representation, workers: cfg.Workers, tbl: elements.Default()}
}

func wrap(v []float64, err error) ([][]float64, error) {
	if err != nil {
		return nil, err
	}

	return [][]float64{v}, nil
}

// elementsOf returns the sorted distinct charges of every set.
func elementsOf(sets ...*dataset.Set) []int {
	var zs []int
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, c := range s.Charges() {
			zs = append(zs, c...)
		}
	}
	slices.Sort(zs)

	return slices.Compact(zs)
}

// asize returns the configured bag capacities, or the per-element maxima
// over all sets.
func (d describer) asize(sets ...*dataset.Set) (map[string]int, error) {
	if len(d.cfg.ASize) > 0 {
		return d.cfg.ASize, nil
	}
	out := make(map[string]int)
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, zs := range s.Charges() {
			count := make(map[int]int)
			for _, z := range zs {
				count[z]++
			}
			for z, n := range count {
				sym, err := d.tbl.Symbol(z)
				if err != nil {
					return nil, err
				}
				out[sym] = max(out[sym], n)
			}
		}
	}

	return out, nil
}

func periodic(sets ...*dataset.Set) bool {
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, m := range s.Molecules {
			if !m.Periodic() {
				return false
			}
		}
	}

	return true
}

// generator returns the per-molecule descriptor function of family. Shared
// layouts (bag sizes, SLATM catalog, element lists) are resolved over every
// set so that descriptors of different sets are comparable.
func (d describer) generator(family string, sets ...*dataset.Set) (func(*geometry.Molecule) ([][]float64, error), bool, error) {
	switch family {
	case familyCM, familyCMAtomic:
		sorting, err := representation.ParseSorting(d.cfg.Sorting)
		if err != nil {
			return nil, false, err
		}
		if family == familyCM {
			return func(m *geometry.Molecule) ([][]float64, error) {
				return wrap(representation.CoulombMatrix(m, d.cfg.Size, sorting))
			}, false, nil
		}
		acfg := representation.DefaultAtomicCMConfig(d.cfg.Size)
		acfg.Sorting = sorting

		return func(m *geometry.Molecule) ([][]float64, error) {
			return representation.AtomicCoulombMatrix(m, acfg)
		}, true, nil

	case familyCMEigen:
		return func(m *geometry.Molecule) ([][]float64, error) {
			return wrap(representation.EigenvalueCoulombMatrix(m, d.cfg.Size))
		}, false, nil

	case familyBoB:
		asize, err := d.asize(sets...)
		if err != nil {
			return nil, false, err
		}
		return func(m *geometry.Molecule) ([][]float64, error) {
			return wrap(representation.BagOfBonds(m, asize, d.tbl))
		}, false, nil

	case familySLATM, familySLATMLocal:
		var opts []slatm.Option
		if periodic(sets...) {
			opts = append(opts, slatm.WithPeriodic())
		}
		var charges [][]int
		for _, s := range sets {
			if s != nil {
				charges = append(charges, s.Charges()...)
			}
		}
		cat, err := slatm.BuildCatalog(charges, opts...)
		if err != nil {
			return nil, false, err
		}
		if family == familySLATM {
			return func(m *geometry.Molecule) ([][]float64, error) {
				return wrap(slatm.Generate(m, cat, opts...))
			}, false, nil
		}
		return func(m *geometry.Molecule) ([][]float64, error) {
			return slatm.GenerateLocal(m, cat, opts...)
		}, true, nil

	case familyACSF:
		acfg := representation.DefaultACSFConfig()
		acfg.Elements = elementsOf(sets...)
		acfg.Rcut, acfg.Acut = d.cfg.Cut, d.cfg.Cut
		return func(m *geometry.Molecule) ([][]float64, error) {
			rows, _, err := representation.ACSF(m, acfg)
			return rows, err
		}, true, nil

	case familyFCHL19:
		fcfg := representation.DefaultFCHL19Config()
		fcfg.Elements = elementsOf(sets...)
		return func(m *geometry.Molecule) ([][]float64, error) {
			rows, _, err := representation.FCHL19(m, fcfg)
			return rows, err
		}, true, nil

	case familyARAD:
		return func(m *geometry.Molecule) ([][]float64, error) {
			rep, err := arad.Generate(m, d.cfg.Size, d.cfg.Cut, d.tbl)
			if err != nil {
				return nil, err
			}
			var rows [][]float64
			for _, a := range rep.Atoms() {
				rows = append(rows, a.Values())
			}
			return rows, nil
		}, true, nil

	case familyFCHL:
		return func(m *geometry.Molecule) ([][]float64, error) {
			rep, err := fchl.Generate(m, d.cfg.Size, d.cfg.Size, d.cfg.Cut)
			if err != nil {
				return nil, err
			}
			var rows [][]float64
			for _, a := range rep.Atoms() {
				rows = append(rows, a.Values())
			}
			return rows, nil
		}, true, nil
	}

	return nil, false, fmt.Errorf("unknown representation family %q (want %s)", family, strings.Join(descriptorFamilies, "|"))
}

// describe builds the descriptors of s; layouts are shared with others.
func (d describer) describe(family string, s *dataset.Set, others ...*dataset.Set) (*descriptors, error) {
	gen, perAtom, err := d.generator(family, append([]*dataset.Set{s}, others...)...)
	if err != nil {
		return nil, err
	}
	x, err := representation.GenerateAll(s.Molecules, d.workers, gen)
	if err != nil {
		return nil, err
	}

	return &descriptors{family: family, perAtom: perAtom, x: x}, nil
}
