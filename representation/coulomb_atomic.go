package representation

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/geometry"
)

// Cutoff defaults of the atomic Coulomb matrix: an effectively infinite
// window with no taper.
const (
	DefaultAtomicCutoff = 1e6
	DefaultAtomicDecay  = -1.0
)

// AtomicCMConfig configures AtomicCoulombMatrix.
type AtomicCMConfig struct {
	// Size is the atom capacity of every environment.
	Size int
	// Sorting is SortDistance or SortRowNorm.
	Sorting Sorting
	// CentralCutoff and CentralDecay window the distance to the central atom.
	CentralCutoff, CentralDecay float64
	// InteractionCutoff and InteractionDecay window atom-atom distances.
	InteractionCutoff, InteractionDecay float64
	// Indices selects the central atoms; nil means every atom.
	Indices []int
}

// DefaultAtomicCMConfig returns distance sorting and open cutoff windows.
func DefaultAtomicCMConfig(size int) AtomicCMConfig {
	return AtomicCMConfig{
		Size:              size,
		Sorting:           SortDistance,
		CentralCutoff:     DefaultAtomicCutoff,
		CentralDecay:      DefaultAtomicDecay,
		InteractionCutoff: DefaultAtomicCutoff,
		InteractionDecay:  DefaultAtomicDecay,
	}
}

// ElementIndices returns the indices of every atom of the given element
// symbol. A known symbol that is absent yields an empty, non-nil slice.
func ElementIndices(mol *geometry.Molecule, symbol string, tbl *elements.Table) ([]int, error) {
	if tbl == nil {
		tbl = elements.Default()
	}
	z, err := tbl.Charge(symbol)
	if err != nil {
		return nil, representationErrorf("ElementIndices", fmt.Errorf("%w: %w", ErrConfiguration, err))
	}
	out := []int{}
	for i, c := range mol.Charges {
		if c == z {
			out = append(out, i)
		}
	}

	return out, nil
}

// cutoffWindow is 1 up to cut−decay, a half-cosine taper up to cut and 0
// beyond. A negative decay is treated as 0.
func cutoffWindow(r, cut, decay float64) float64 {
	if decay < 0 {
		decay = 0
	}
	switch {
	case r > cut:
		return 0
	case r <= cut-decay:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(r-cut+decay)/decay))
	}
}

// AtomicCoulombMatrix returns one packed Coulomb matrix per central atom.
//
// Stage 1: keep atoms with r_ik < CentralCutoff; more than Size fails.
// Stage 2: order them (distance: ascending r_ik; row-norm: central first,
// then descending windowed row norm).
// Stage 3: pack M_ij·f_c(r_ik)·f_c(r_jk)·f_i(r_ij), diagonal M_ii·f_c(r_ik)².
// Complexity: O(k·n²) for k central atoms.
func AtomicCoulombMatrix(mol *geometry.Molecule, cfg AtomicCMConfig) ([][]float64, error) {
	const tag = "AtomicCoulombMatrix"
	if err := checkMolecule(tag, mol); err != nil {
		return nil, err
	}
	if cfg.Size <= 0 || cfg.CentralCutoff <= 0 || cfg.InteractionCutoff <= 0 {
		return nil, representationErrorf(tag, ErrConfiguration)
	}
	if cfg.Sorting != SortDistance && cfg.Sorting != SortRowNorm {
		return nil, representationErrorf(tag, fmt.Errorf("sorting %v: %w", cfg.Sorting, ErrConfiguration))
	}
	indices := cfg.Indices
	if indices == nil {
		indices = make([]int, mol.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	for _, k := range indices {
		if k < 0 || k >= mol.Len() {
			return nil, representationErrorf(tag, fmt.Errorf("index %d: %w", k, ErrConfiguration))
		}
	}

	m := coulomb(mol)
	d := mol.Distances()
	out := make([][]float64, len(indices))
	for q, k := range indices {
		dk := d.RowView(k)
		var kept []int
		for i := 0; i < mol.Len(); i++ {
			if dk[i] < cfg.CentralCutoff {
				kept = append(kept, i)
			}
		}
		if len(kept) > cfg.Size {
			return nil, representationErrorf(tag, fmt.Errorf("atom %d has %d neighbors, size %d: %w", k, len(kept), cfg.Size, ErrShape))
		}

		fc := make(map[int]float64, len(kept))
		for _, i := range kept {
			fc[i] = cutoffWindow(dk[i], cfg.CentralCutoff, cfg.CentralDecay)
		}
		w := func(i, j int) float64 {
			if i == j {
				return m[i][i] * fc[i] * fc[i]
			}
			fi := cutoffWindow(d.RowView(i)[j], cfg.InteractionCutoff, cfg.InteractionDecay)

			return m[i][j] * fc[i] * fc[j] * fi
		}

		order := append([]int(nil), kept...)
		switch cfg.Sorting {
		case SortDistance:
			sort.SliceStable(order, func(a, b int) bool { return dk[order[a]] < dk[order[b]] })
		case SortRowNorm:
			norms := make(map[int]float64, len(kept))
			for _, i := range kept {
				var s float64
				for _, j := range kept {
					v := w(i, j)
					s += v * v
				}
				norms[i] = s
			}
			sort.SliceStable(order, func(a, b int) bool {
				ia, ib := order[a], order[b]
				if ia == k || ib == k {
					return ia == k && ib != k
				}

				return norms[ia] > norms[ib]
			})
		}

		row := make([]float64, PackedLen(cfg.Size))
		for a, i := range order {
			for b := 0; b <= a; b++ {
				row[packedIndex(a, b)] = w(i, order[b])
			}
		}
		out[q] = row
	}

	return out, nil
}
