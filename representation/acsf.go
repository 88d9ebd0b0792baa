package representation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// sinEpsilon guards angular derivatives of (near-)collinear triplets.
const sinEpsilon = 1e-10

// ACSFConfig holds the basis of the atom-centred symmetry functions.
type ACSFConfig struct {
	// Elements lists every nuclear charge that may occur as a neighbor.
	Elements []int
	// NRs2, NRs3 and NTs count the radial 2-body, radial 3-body and angular
	// basis centres.
	NRs2, NRs3, NTs int
	// Eta2 and Eta3 are the radial Gaussian exponents, Zeta the angular one.
	Eta2, Eta3, Zeta float64
	// Rcut and Acut are the 2-body and 3-body cutoffs; BinMin the first
	// radial centre.
	Rcut, Acut, BinMin float64
}

// DefaultACSFConfig returns the H, C, N, O, S basis with three centres per
// axis and 5 Å cutoffs.
func DefaultACSFConfig() ACSFConfig {
	return ACSFConfig{
		Elements: []int{1, 6, 7, 8, 16},
		NRs2:     3, NRs3: 3, NTs: 3,
		Eta2: 1, Eta3: 1, Zeta: 1,
		Rcut: 5, Acut: 5, BinMin: 0.8,
	}
}

// Size returns nel·NRs2 + nel(nel+1)/2·NRs3·NTs.
func (c ACSFConfig) Size() int {
	nel := len(c.Elements)

	return nel*c.NRs2 + nel*(nel+1)/2*c.NRs3*c.NTs
}

func (c ACSFConfig) validate() error {
	if c.NRs2 <= 0 || c.NRs3 <= 0 || c.NTs <= 0 {
		return fmt.Errorf("basis counts (%d, %d, %d): %w", c.NRs2, c.NRs3, c.NTs, ErrConfiguration)
	}
	if !(c.Rcut > 0) || !(c.Acut > 0) || c.BinMin < 0 || c.BinMin >= math.Min(c.Rcut, c.Acut) {
		return fmt.Errorf("cutoffs (%g, %g, %g): %w", c.Rcut, c.Acut, c.BinMin, ErrConfiguration)
	}
	if !(c.Eta2 > 0) || !(c.Eta3 > 0) || !(c.Zeta > 0) {
		return fmt.Errorf("exponents: %w", ErrConfiguration)
	}

	return nil
}

// ACSF returns one row of symmetry functions per atom and, with
// WithGradients, the analytic gradient. Rows beyond the atom count (WithPad)
// are zero.
//
// Two-body block of neighbor element e, centre Rs:
//
//	Σ_j exp(−η2 (r_ij − Rs)²) · fc(r_ij)
//
// Three-body block of the unordered element pair, centres (Rs, T):
//
//	Σ_{j<k} exp(−η3 (½(r_ij + r_ik) − Rs)²) · fc(r_ij) fc(r_ik) · 2((1 + cos(θ_jik − T))/2)^ζ
//
// Complexity: O(n³·NRs3·NTs).
func ACSF(mol *geometry.Molecule, cfg ACSFConfig, opts ...Option) ([][]float64, *Gradient, error) {
	const tag = "ACSF"
	o := gatherOptions(opts)
	if err := checkMolecule(tag, mol); err != nil {
		return nil, nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, nil, representationErrorf(tag, err)
	}
	eidx, err := elementIndex(tag, cfg.Elements)
	if err != nil {
		return nil, nil, err
	}
	for _, z := range mol.Charges {
		if _, ok := eidx[z]; !ok {
			return nil, nil, representationErrorf(tag, fmt.Errorf("Z=%d not in elements: %w", z, ErrConfiguration))
		}
	}
	n := mol.Len()
	rows, err := resolveRows(tag, n, o.pad)
	if err != nil {
		return nil, nil, err
	}

	nel, size := len(cfg.Elements), cfg.Size()
	rs2 := linspace(cfg.BinMin, cfg.Rcut, cfg.NRs2)
	rs3 := linspace(cfg.BinMin, cfg.Acut, cfg.NRs3)
	ts := linspace(0, math.Pi, cfg.NTs)
	off3 := nel * cfg.NRs2

	rep := make([][]float64, rows)
	for i := range rep {
		rep[i] = make([]float64, size)
	}
	var g *Gradient
	if o.gradients {
		g = newGradient(rows, size)
	}

	for i := 0; i < n; i++ {
		xi := mol.Coords[i]
		for j := 0; j < n; j++ {
			r := mol.Distance(i, j)
			if j == i || r == 0 || r >= cfg.Rcut {
				continue
			}
			fc, dfc := cosineCutoff(r, cfg.Rcut), dcosineCutoff(r, cfg.Rcut)
			base := eidx[mol.Charges[j]] * cfg.NRs2
			u := r3.Scale(1/r, r3.Sub(xi, mol.Coords[j]))
			for l, rs := range rs2 {
				e := math.Exp(-cfg.Eta2 * (r - rs) * (r - rs))
				rep[i][base+l] += e * fc
				if g != nil {
					dv := e*(-2*cfg.Eta2*(r-rs))*fc + e*dfc
					g.add(i, base+l, i, r3.Scale(dv, u))
					g.add(i, base+l, j, r3.Scale(-dv, u))
				}
			}
		}

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := j + 1; k < n; k++ {
				if k == i {
					continue
				}
				tri := newTriangle(xi, mol.Coords[j], mol.Coords[k])
				if tri.rij == 0 || tri.rik == 0 || tri.rij >= cfg.Acut || tri.rik >= cfg.Acut {
					continue
				}
				acsfTriplet(cfg, rep[i], g, tri, i, j, k,
					off3+pairBlock(eidx[mol.Charges[j]], eidx[mol.Charges[k]], nel)*cfg.NRs3*cfg.NTs,
					rs3, ts)
			}
		}
	}

	return rep, g, nil
}

func acsfTriplet(cfg ACSFConfig, row []float64, g *Gradient, tri triangle, i, j, k, base int, rs3, ts []float64) {
	ci, dciRij, dciRik, dciRjk := cosineRule(tri.rij, tri.rik, tri.rjk)
	theta := math.Acos(ci)
	sinTheta := math.Sqrt(1 - ci*ci)
	fcj, fck := cosineCutoff(tri.rij, cfg.Acut), cosineCutoff(tri.rik, cfg.Acut)
	dfcj, dfck := dcosineCutoff(tri.rij, cfg.Acut), dcosineCutoff(tri.rik, cfg.Acut)
	mean := 0.5 * (tri.rij + tri.rik)

	for l, rs := range rs3 {
		e := math.Exp(-cfg.Eta3 * (mean - rs) * (mean - rs))
		rad := e * fcj * fck
		for t, shift := range ts {
			h := 0.5 * (1 + math.Cos(theta-shift))
			a := 2 * math.Pow(h, cfg.Zeta)
			f := base + l*len(ts) + t
			row[f] += rad * a
			if g == nil {
				continue
			}
			de := e * (-2 * cfg.Eta3 * (mean - rs)) * 0.5
			dradRij := de*fcj*fck + e*dfcj*fck
			dradRik := de*fcj*fck + e*fcj*dfck
			var dadc float64
			if sinTheta > sinEpsilon && h > 0 {
				dadTheta := 2 * cfg.Zeta * math.Pow(h, cfg.Zeta-1) * (-0.5 * math.Sin(theta-shift))
				dadc = dadTheta * (-1 / sinTheta)
			}
			tri.scatter(g, i, f, i, j, k,
				dradRij*a+rad*dadc*dciRij,
				dradRik*a+rad*dadc*dciRik,
				rad*dadc*dciRjk)
		}
	}
}
