package representation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// FCHL19Config holds the FCHL-ACSF basis.
type FCHL19Config struct {
	Elements []int
	// NRs2 and NRs3 count radial centres; NFourier the angular harmonics.
	NRs2, NRs3, NFourier int
	Eta2, Eta3, Zeta     float64
	Rcut, Acut           float64
	// TwoBodyDecay and ThreeBodyDecay are the inverse-distance powers.
	TwoBodyDecay, ThreeBodyDecay float64
	ThreeBodyWeight              float64
}

// DefaultFCHL19Config returns the published FCHL19 hyperparameters.
func DefaultFCHL19Config() FCHL19Config {
	return FCHL19Config{
		Elements: []int{1, 6, 7, 8, 16},
		NRs2:     24, NRs3: 20, NFourier: 1,
		Eta2: 0.32, Eta3: 2.7, Zeta: math.Pi,
		Rcut: 8, Acut: 8,
		TwoBodyDecay: 1.8, ThreeBodyDecay: 0.57, ThreeBodyWeight: 13.4,
	}
}

// Size returns nel·NRs2 + nel(nel+1)·NRs3·NFourier.
func (c FCHL19Config) Size() int {
	nel := len(c.Elements)

	return nel*c.NRs2 + nel*(nel+1)*c.NRs3*c.NFourier
}

func (c FCHL19Config) validate() error {
	if c.NRs2 <= 0 || c.NRs3 <= 0 || c.NFourier <= 0 {
		return fmt.Errorf("basis counts (%d, %d, %d): %w", c.NRs2, c.NRs3, c.NFourier, ErrConfiguration)
	}
	if !(c.Rcut > 0) || !(c.Acut > 0) || math.IsInf(c.Rcut, 0) || math.IsInf(c.Acut, 0) {
		return fmt.Errorf("cutoffs (%g, %g): %w", c.Rcut, c.Acut, ErrConfiguration)
	}
	if !(c.Eta2 > 0) || !(c.Eta3 > 0) || c.Zeta < 0 {
		return fmt.Errorf("exponents: %w", ErrConfiguration)
	}

	return nil
}

// FCHL19 returns the FCHL-ACSF rows of the original atoms of mol. With a
// cell, neighbors include periodic images out to max(Rcut, Acut) and image
// gradients are folded back onto their origin atom.
//
// Two-body (log-normal in r, decayed):
//
//	μ = ln(r/√(1+η2/r²)), σ² = ln(1+η2/r²)
//	fc(r) / (σ√(2π)·Rs) · exp(−(ln Rs − μ)²/(2σ²)) / r^TwoBodyDecay
//
// Three-body, per neighbor pair j < k within Acut and harmonic o = 2m+1:
//
//	exp(−η3(½(r_ij+r_ik) − Rs)²) fc(r_ij) fc(r_ik)
//	· √(η3/π)·w · (1 + 3cos_i cos_j cos_k)/(r_ij r_ik r_jk)^ThreeBodyDecay
//	· 2e^{−(ζo)²/2} · {cos(oθ), sin(oθ)}
//
// Gradients are only available for NFourier == 1.
func FCHL19(mol *geometry.Molecule, cfg FCHL19Config, opts ...Option) ([][]float64, *Gradient, error) {
	const tag = "FCHL19"
	o := gatherOptions(opts)
	if err := checkMolecule(tag, mol); err != nil {
		return nil, nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, nil, representationErrorf(tag, err)
	}
	if o.gradients && cfg.NFourier > 1 {
		return nil, nil, representationErrorf(tag, fmt.Errorf("gradients with %d harmonics: %w", cfg.NFourier, ErrUnsupportedConfiguration))
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
	im, err := mol.Replicate(math.Max(cfg.Rcut, cfg.Acut))
	if err != nil {
		return nil, nil, representationErrorf(tag, err)
	}

	nel, size := len(cfg.Elements), cfg.Size()
	nab := 2 * cfg.NFourier
	rs2 := linspace(0, cfg.Rcut, cfg.NRs2+1)[1:]
	rs3 := linspace(0, cfg.Acut, cfg.NRs3+1)[1:]
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
		xi := im.Coords[i]
		neigh := im.Neighbors(i, math.Max(cfg.Rcut, cfg.Acut))
		for _, j := range neigh {
			r := im.Distance(i, j)
			if r == 0 || r >= cfg.Rcut {
				continue
			}
			base := eidx[im.Charges[j]] * cfg.NRs2
			u := r3.Scale(1/r, r3.Sub(xi, im.Coords[j]))
			oj := im.Origin[j]
			for l, rs := range rs2 {
				v, dv := logNormalTerm(cfg, r, rs)
				rep[i][base+l] += v
				if g != nil {
					g.add(i, base+l, i, r3.Scale(dv, u))
					g.add(i, base+l, oj, r3.Scale(-dv, u))
				}
			}
		}

		for a, j := range neigh {
			for _, k := range neigh[a+1:] {
				tri := newTriangle(xi, im.Coords[j], im.Coords[k])
				if tri.rij == 0 || tri.rik == 0 || tri.rjk == 0 || tri.rij >= cfg.Acut || tri.rik >= cfg.Acut {
					continue
				}
				base := off3 + pairBlock(eidx[im.Charges[j]], eidx[im.Charges[k]], nel)*cfg.NRs3*nab
				fchlTriplet(cfg, rep[i], g, tri, i, im.Origin[j], im.Origin[k], base, rs3)
			}
		}
	}

	return rep, g, nil
}

// logNormalTerm returns the decayed two-body basis value at centre rs and
// its derivative w.r.t. r.
func logNormalTerm(cfg FCHL19Config, r, rs float64) (v, dv float64) {
	q := cfg.Eta2 / (r * r)
	s2 := math.Log1p(q)
	sigma := math.Sqrt(s2)
	mu := math.Log(r) - 0.5*s2
	lr := math.Log(rs)

	pref := 1 / (sigma * math.Sqrt(2*math.Pi) * rs)
	e := math.Exp(-(lr - mu) * (lr - mu) / (2 * s2))
	decay := math.Pow(r, -cfg.TwoBodyDecay)
	fc := cosineCutoff(r, cfg.Rcut)
	h := pref * e * decay
	v = h * fc

	ds2 := -2 * q / (r * (1 + q))
	dmu := 1/r + q/(r*(1+q))
	dlnE := (lr-mu)/s2*dmu + (lr-mu)*(lr-mu)/(2*s2*s2)*ds2
	dlnPref := -ds2 / (2 * s2)
	dv = h * (fc*(dlnPref+dlnE-cfg.TwoBodyDecay/r) + dcosineCutoff(r, cfg.Rcut))

	return v, dv
}

func fchlTriplet(cfg FCHL19Config, row []float64, g *Gradient, tri triangle, i, j, k, base int, rs3 []float64) {
	ci, dciRij, dciRik, dciRjk := cosineRule(tri.rij, tri.rik, tri.rjk)
	cj, dcjRij, dcjRjk, dcjRik := cosineRule(tri.rij, tri.rjk, tri.rik)
	ck, dckRik, dckRjk, dckRij := cosineRule(tri.rik, tri.rjk, tri.rij)

	w := math.Sqrt(cfg.Eta3/math.Pi) * cfg.ThreeBodyWeight
	p := math.Pow(tri.rij*tri.rik*tri.rjk, cfg.ThreeBodyDecay)
	atm := 1 + 3*ci*cj*ck
	ksi := w * atm / p
	dksi := func(dci, dcj, dck, r float64) float64 {
		return w*3*(dci*cj*ck+ci*dcj*ck+ci*cj*dck)/p - cfg.ThreeBodyDecay*ksi/r
	}
	dksiRij := dksi(dciRij, dcjRij, dckRij, tri.rij)
	dksiRik := dksi(dciRik, dcjRik, dckRik, tri.rik)
	dksiRjk := dksi(dciRjk, dcjRjk, dckRjk, tri.rjk)

	theta := math.Acos(ci)
	sinTheta := math.Sqrt(1 - ci*ci)
	nab := 2 * cfg.NFourier
	ang := make([]float64, nab)
	dang := make([]float64, nab) // w.r.t. cos θ
	for m := 0; m < cfg.NFourier; m++ {
		ord := float64(2*m + 1)
		damp := 2 * math.Exp(-0.5*(cfg.Zeta*ord)*(cfg.Zeta*ord))
		ang[2*m] = damp * math.Cos(ord*theta)
		ang[2*m+1] = damp * math.Sin(ord*theta)
		if sinTheta > sinEpsilon {
			dang[2*m] = damp * ord * math.Sin(ord*theta) / sinTheta
			dang[2*m+1] = -damp * ord * math.Cos(ord*theta) / sinTheta
		} else {
			// sin(oθ)/sin θ → o for odd o at θ ∈ {0, π}.
			dang[2*m] = damp * ord * ord
		}
	}

	fcj, fck := cosineCutoff(tri.rij, cfg.Acut), cosineCutoff(tri.rik, cfg.Acut)
	dfcj, dfck := dcosineCutoff(tri.rij, cfg.Acut), dcosineCutoff(tri.rik, cfg.Acut)
	mean := 0.5 * (tri.rij + tri.rik)
	for l, rs := range rs3 {
		e := math.Exp(-cfg.Eta3 * (mean - rs) * (mean - rs))
		rad := e * fcj * fck
		de := e * (-2 * cfg.Eta3 * (mean - rs)) * 0.5
		dradRij := de*fcj*fck + e*dfcj*fck
		dradRik := de*fcj*fck + e*fcj*dfck
		for a := 0; a < nab; a++ {
			f := base + l*nab + a
			row[f] += rad * ksi * ang[a]
			if g == nil {
				continue
			}
			tri.scatter(g, i, f, i, j, k,
				dradRij*ksi*ang[a]+rad*dksiRij*ang[a]+rad*ksi*dang[a]*dciRij,
				dradRik*ksi*ang[a]+rad*dksiRik*ang[a]+rad*ksi*dang[a]*dciRik,
				rad*dksiRjk*ang[a]+rad*ksi*dang[a]*dciRjk)
		}
	}
}
