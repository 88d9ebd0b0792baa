// SPDX-License-Identifier: MIT
// Package: representation
//
// coulomb.go: Coulomb matrix, eigenvalue Coulomb matrix and the packed
// triangle layout shared by the atomic variant.

package representation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/matrix"
)

// Sorting selects the atom order of a Coulomb matrix.
type Sorting int

const (
	// SortUnsorted keeps the input atom order.
	SortUnsorted Sorting = iota
	// SortRowNorm orders atoms by descending row L2 norm (stable).
	SortRowNorm
	// SortDistance orders atoms by ascending distance to the central atom.
	// Only the atomic variant accepts it.
	SortDistance
)

// String implements fmt.Stringer.
func (s Sorting) String() string {
	switch s {
	case SortUnsorted:
		return "unsorted"
	case SortRowNorm:
		return "row-norm"
	case SortDistance:
		return "distance"
	default:
		return fmt.Sprintf("Sorting(%d)", int(s))
	}
}

// ParseSorting maps "unsorted", "row-norm" (or "row_norm") and "distance" to
// a Sorting.
func ParseSorting(name string) (Sorting, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-") {
	case "unsorted", "":
		return SortUnsorted, nil
	case "row-norm":
		return SortRowNorm, nil
	case "distance":
		return SortDistance, nil
	}

	return 0, representationErrorf("ParseSorting", fmt.Errorf("%q: %w", name, ErrConfiguration))
}

// selfInteraction is the diagonal Coulomb term 0.5·Z^2.4.
func selfInteraction(z int) float64 {
	return 0.5 * math.Pow(float64(z), 2.4)
}

// PackedLen returns size(size+1)/2, the length of a packed triangle.
func PackedLen(size int) int { return size * (size + 1) / 2 }

func packedIndex(m, n int) int { return m*(m+1)/2 + n }

// coulomb builds the full symmetric Coulomb matrix as row slices.
// Complexity: O(n²).
func coulomb(mol *geometry.Molecule) [][]float64 {
	n := mol.Len()
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = selfInteraction(mol.Charges[i])
		for j := 0; j < i; j++ {
			v := float64(mol.Charges[i]*mol.Charges[j]) / mol.Distance(i, j)
			m[i][j] = v
			m[j][i] = v
		}
	}

	return m
}

// rowNormOrder returns atom indices by descending Σ_j M_ij², ties by index.
func rowNormOrder(m [][]float64, idx []int) []int {
	norms := make(map[int]float64, len(idx))
	for _, i := range idx {
		var s float64
		for _, j := range idx {
			s += m[i][j] * m[i][j]
		}
		norms[i] = s
	}
	order := append([]int(nil), idx...)
	sort.SliceStable(order, func(a, b int) bool { return norms[order[a]] > norms[order[b]] })

	return order
}

func checkMolecule(tag string, mol *geometry.Molecule) error {
	if mol == nil {
		return representationErrorf(tag, geometry.ErrEmptyMolecule)
	}
	if err := mol.Validate(); err != nil {
		return representationErrorf(tag, err)
	}

	return nil
}

func checkSize(tag string, size, atoms int) error {
	if size <= 0 {
		return representationErrorf(tag, fmt.Errorf("size %d: %w", size, ErrConfiguration))
	}
	if atoms > size {
		return representationErrorf(tag, fmt.Errorf("%d atoms, size %d: %w", atoms, size, ErrShape))
	}

	return nil
}

// CoulombMatrix returns the packed Coulomb matrix of mol, zero-padded to size
// atoms. sorting must be SortUnsorted or SortRowNorm.
//
//	M_ii = 0.5·Z_i^2.4,  M_ij = Z_i·Z_j / |R_i − R_j|
//
// Complexity: O(n²).
func CoulombMatrix(mol *geometry.Molecule, size int, sorting Sorting) ([]float64, error) {
	const tag = "CoulombMatrix"
	if err := checkMolecule(tag, mol); err != nil {
		return nil, err
	}
	if err := checkSize(tag, size, mol.Len()); err != nil {
		return nil, err
	}
	m := coulomb(mol)
	order := make([]int, mol.Len())
	for i := range order {
		order[i] = i
	}
	switch sorting {
	case SortUnsorted:
	case SortRowNorm:
		order = rowNormOrder(m, order)
	default:
		return nil, representationErrorf(tag, fmt.Errorf("sorting %v: %w", sorting, ErrConfiguration))
	}

	out := make([]float64, PackedLen(size))
	for a, i := range order {
		for b := 0; b <= a; b++ {
			out[packedIndex(a, b)] = m[i][order[b]]
		}
	}

	return out, nil
}

// EigenvalueCoulombMatrix returns the eigenvalues of the Coulomb matrix
// zero-padded to size×size, in ascending order.
func EigenvalueCoulombMatrix(mol *geometry.Molecule, size int) ([]float64, error) {
	const tag = "EigenvalueCoulombMatrix"
	if err := checkMolecule(tag, mol); err != nil {
		return nil, err
	}
	if err := checkSize(tag, size, mol.Len()); err != nil {
		return nil, err
	}
	d, err := matrix.NewDenseFromRows(coulomb(mol))
	if err != nil {
		return nil, representationErrorf(tag, err)
	}
	vals, err := matrix.SymmetricEigenvalues(d)
	if err != nil {
		return nil, representationErrorf(tag, err)
	}
	// padding adds zero eigenvalues, which sort among the real ones
	out := make([]float64, size)
	copy(out, vals)
	sort.Float64s(out)

	return out, nil
}
