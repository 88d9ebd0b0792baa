package fchl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// fourier holds the three-body Fourier coefficients a neighbor collects
// from third atoms of charge z.
type fourier struct {
	z        int
	cos, sin []float64
}

// env is one atom environment reduced to what the overlap reads: neighbors
// within the cutoff, their two-body weights and three-body coefficients.
type env struct {
	z   int
	d   []float64
	zn  []int
	ksi []float64
	ang [][]fourier
}

// cutFunction is 1 below start·distance, 0 from distance on, and a quintic
// switch 10x³ − 15x⁴ + 6x⁵ with x = (distance − r)/(distance − start·distance)
// in between.
func (c config) cutFunction(r float64) float64 {
	ru := c.cutDistance
	rl := c.cutStart * c.cutDistance
	switch {
	case r >= ru:
		return 0
	case r <= rl:
		return 1
	}
	x := (ru - r) / (ru - rl)

	return x * x * x * (10 - 15*x + 6*x*x)
}

// env prepares atom a.
//
// Stage 1: keep neighbors (slot ≥ 1) with 0 < d < cut distance.
// Stage 2: ksi_m = cut(d_m)/d_m^p2.
// Stage 3: for every ordered neighbor pair (j, k), with θ the angle j–a–k,
// add damp_o·(cos(oθ) − cos(o(θ+π)))·ksi3 to j's cosine coefficient of
// charge z_k (and likewise for sin), where
// ksi3 = cut(r_j)cut(r_k)cut(r_jk)·(1 + 3 cos_a cos_j cos_k)/(r_j r_k r_jk)^p3
// and damp_o = exp(−(o·w3)²/2).
// Complexity: O(k²·order).
func (c config) env(a Atom) env {
	e := env{z: a.Charge()}
	var vs []r3.Vec
	for m := 1; m < a.r.neighbors; m++ {
		d := a.At(0, m)
		if d >= c.cutDistance {
			break
		}
		if d <= 0 {
			continue
		}
		e.d = append(e.d, d)
		e.zn = append(e.zn, int(math.Round(a.At(1, m))))
		e.ksi = append(e.ksi, c.cutFunction(d)/math.Pow(d, c.twoPower))
		vs = append(vs, r3.Vec{X: a.At(2, m), Y: a.At(3, m), Z: a.At(4, m)})
	}

	damp := make([]float64, c.order)
	for o := range damp {
		w := float64(o+1) * c.threeWidth
		damp[o] = math.Exp(-w * w / 2)
	}
	e.ang = make([][]fourier, len(e.d))
	for j := range e.d {
		for k := range e.d {
			if j == k {
				continue
			}
			rjk := r3.Norm(r3.Sub(vs[k], vs[j]))
			if rjk <= 0 {
				continue
			}
			ca := cosine(vs[j], vs[k], e.d[j], e.d[k])
			cj := cosine(r3.Scale(-1, vs[j]), r3.Sub(vs[k], vs[j]), e.d[j], rjk)
			ck := cosine(r3.Scale(-1, vs[k]), r3.Sub(vs[j], vs[k]), e.d[k], rjk)
			ksi3 := c.cutFunction(e.d[j]) * c.cutFunction(e.d[k]) * c.cutFunction(rjk) *
				(1 + 3*ca*cj*ck) / math.Pow(e.d[j]*e.d[k]*rjk, c.threePower)
			if ksi3 == 0 {
				continue
			}
			theta := math.Acos(ca)
			f := e.term(j, e.zn[k], c.order)
			for o := range damp {
				n := float64(o + 1)
				f.cos[o] += damp[o] * (math.Cos(n*theta) - math.Cos(n*(theta+math.Pi))) * ksi3
				f.sin[o] += damp[o] * (math.Sin(n*theta) - math.Sin(n*(theta+math.Pi))) * ksi3
			}
		}
	}

	return e
}

// term returns neighbor j's coefficient block for charge z, creating it.
func (e *env) term(j, z, order int) *fourier {
	for i := range e.ang[j] {
		if e.ang[j][i].z == z {
			return &e.ang[j][i]
		}
	}
	e.ang[j] = append(e.ang[j], fourier{z: z, cos: make([]float64, order), sin: make([]float64, order)})

	return &e.ang[j][len(e.ang[j])-1]
}

func cosine(u, v r3.Vec, nu, nv float64) float64 {
	return math.Max(-1, math.Min(1, r3.Dot(u, v)/(nu*nv)))
}

// overlap is the scalar product of two environments:
//
//	w(z_a, z_b)·[1 + Σ_{m,n} exp(−Δd²/(4w2²))·w(z_m, z_n)·(s2·ksi_m·ksi_n + s3·A_mn)]
//
// with A_mn = Σ_{p,q} w(p, q)·Σ_o (cos_mp·cos_nq + sin_mp·sin_nq), over
// neighbor pairs with Δd² < (8·w2)². The two-body scaling enters as s2 =
// scaling/16 and the three-body one as s3 = scaling/√8.
func (c config) overlap(a, b env) float64 {
	w := c.coupling.Weight
	wc := w(a.z, b.z)
	if wc == 0 {
		return 0
	}
	inv := -1 / (4 * c.twoWidth * c.twoWidth)
	maxd2 := 64 * c.twoWidth * c.twoWidth
	s2 := c.twoScale / 16
	s3 := c.threeScale / math.Sqrt(8)

	sum := 1.0
	for m := range a.d {
		for n := range b.d {
			r2 := (a.d[m] - b.d[n]) * (a.d[m] - b.d[n])
			if r2 >= maxd2 {
				continue
			}
			g := math.Exp(r2*inv) * w(a.zn[m], b.zn[n])
			if g == 0 {
				continue
			}
			var ang float64
			for _, p := range a.ang[m] {
				for _, q := range b.ang[n] {
					wpq := w(p.z, q.z)
					if wpq == 0 {
						continue
					}
					var t float64
					for o := range p.cos {
						t += p.cos[o]*q.cos[o] + p.sin[o]*q.sin[o]
					}
					ang += wpq * t
				}
			}
			sum += g * (s2*a.ksi[m]*b.ksi[n] + s3*ang)
		}
	}

	return sum * wc
}
