package representation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gradient holds ∂rep[i][f]/∂R[a][d] for an atomic representation, stored
// densely with shape (Rows, Size, Rows, 3). Rows beyond the true atom count
// are zero.
type Gradient struct {
	Rows int
	Size int
	data []float64
}

func newGradient(rows, size int) *Gradient {
	return &Gradient{Rows: rows, Size: size, data: make([]float64, rows*size*rows*3)}
}

func (g *Gradient) offset(i, f, a int) int {
	return ((i*g.Size+f)*g.Rows + a) * 3
}

// At returns ∂rep[i][f]/∂R[a][d].
func (g *Gradient) At(i, f, a, d int) float64 {
	return g.data[g.offset(i, f, a)+d]
}

// Vec returns ∂rep[i][f]/∂R[a] as a vector.
func (g *Gradient) Vec(i, f, a int) r3.Vec {
	o := g.offset(i, f, a)

	return r3.Vec{X: g.data[o], Y: g.data[o+1], Z: g.data[o+2]}
}

func (g *Gradient) add(i, f, a int, v r3.Vec) {
	o := g.offset(i, f, a)
	g.data[o] += v.X
	g.data[o+1] += v.Y
	g.data[o+2] += v.Z
}

// Option tunes the atomic generators ACSF and FCHL19.
type Option func(*genOptions)

type genOptions struct {
	pad       int
	gradients bool
}

// WithPad zero-fills output rows up to n atoms. It panics if n < 0.
func WithPad(n int) Option {
	if n < 0 {
		panic("representation: WithPad requires n >= 0")
	}

	return func(o *genOptions) { o.pad = n }
}

// WithGradients requests the analytic gradient alongside the representation.
func WithGradients() Option {
	return func(o *genOptions) { o.gradients = true }
}

func gatherOptions(opts []Option) genOptions {
	var o genOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// linspace returns n points from lo to hi inclusive (n == 1 yields lo).
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	return floats.Span(out, lo, hi)
}

// cosineCutoff is 0.5(cos(πr/cut) + 1) inside cut, else 0; dcosineCutoff is
// its derivative.
func cosineCutoff(r, cut float64) float64 {
	if r >= cut {
		return 0
	}

	return 0.5 * (math.Cos(math.Pi*r/cut) + 1)
}

func dcosineCutoff(r, cut float64) float64 {
	if r >= cut {
		return 0
	}

	return -0.5 * math.Pi / cut * math.Sin(math.Pi*r/cut)
}

// cosineRule returns the cosine of the angle between sides p and q of a
// triangle whose third side is opp, plus its partials w.r.t. (p, q, opp).
func cosineRule(p, q, opp float64) (c, dp, dq, dopp float64) {
	c = (p*p + q*q - opp*opp) / (2 * p * q)
	dp = (p*p - q*q + opp*opp) / (2 * p * p * q)
	dq = (q*q - p*p + opp*opp) / (2 * q * q * p)
	dopp = -opp / (p * q)
	c = math.Max(-1, math.Min(1, c))

	return c, dp, dq, dopp
}

// pairBlock indexes the unordered element pair (p, q) among nel elements.
func pairBlock(p, q, nel int) int {
	if p > q {
		p, q = q, p
	}

	return p*nel - p*(p-1)/2 + (q - p)
}

// triangle collects the side lengths and unit vectors of an (i, j, k)
// triplet centred on i.
type triangle struct {
	rij, rik, rjk float64
	uij, uik, ujk r3.Vec // (x_i − x_j)/rij, (x_i − x_k)/rik, (x_j − x_k)/rjk
}

func newTriangle(xi, xj, xk r3.Vec) triangle {
	dij, dik, djk := r3.Sub(xi, xj), r3.Sub(xi, xk), r3.Sub(xj, xk)
	t := triangle{rij: r3.Norm(dij), rik: r3.Norm(dik), rjk: r3.Norm(djk)}
	t.uij = r3.Scale(1/t.rij, dij)
	t.uik = r3.Scale(1/t.rik, dik)
	if t.rjk > 0 {
		t.ujk = r3.Scale(1/t.rjk, djk)
	}

	return t
}

// scatter chains partials w.r.t. (rij, rik, rjk) onto the atoms i, j, k.
func (t triangle) scatter(g *Gradient, row, f, i, j, k int, drij, drik, drjk float64) {
	g.add(row, f, i, r3.Scale(drij, t.uij))
	g.add(row, f, j, r3.Scale(-drij, t.uij))
	g.add(row, f, i, r3.Scale(drik, t.uik))
	g.add(row, f, k, r3.Scale(-drik, t.uik))
	g.add(row, f, j, r3.Scale(drjk, t.ujk))
	g.add(row, f, k, r3.Scale(-drjk, t.ujk))
}

// resolveRows checks the pad against the atom count.
func resolveRows(tag string, atoms, pad int) (int, error) {
	if pad == 0 {
		return atoms, nil
	}
	if pad < atoms {
		return 0, representationErrorf(tag, ErrShape)
	}

	return pad, nil
}

func elementIndex(tag string, zs []int) (map[int]int, error) {
	if len(zs) == 0 {
		return nil, representationErrorf(tag, ErrConfiguration)
	}
	idx := make(map[int]int, len(zs))
	for i, z := range zs {
		if z <= 0 {
			return nil, representationErrorf(tag, ErrConfiguration)
		}
		if _, dup := idx[z]; dup {
			return nil, representationErrorf(tag, ErrConfiguration)
		}
		idx[z] = i
	}

	return idx, nil
}
