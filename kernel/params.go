package kernel

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// Params maps hyperparameter names to lists of values. Entry k of every list
// forms hyperparameter set k; all lists must have the same length.
type Params map[string][]float64

// Sigmas is shorthand for Params{"sigma": sigmas}.
func Sigmas(sigmas ...float64) Params {
	return Params{"sigma": append([]float64(nil), sigmas...)}
}

// Measure holds the base comparison values of one pair.
//   - S:  linear overlap
//   - D2: squared distance
//   - D1: L1 distance (sqrt(D2) for metrics without an L1 form)
type Measure struct {
	S, D2, D1 float64
}

type paramSpec struct {
	key      string
	def      float64
	required bool
}

var familyParams = map[Family][]paramSpec{
	Gaussian:              {{key: "sigma", def: 2.5}},
	Laplacian:             {{key: "sigma", required: true}},
	Linear:                {{key: "c"}},
	Polynomial:            {{key: "alpha", def: 1}, {key: "c"}, {key: "d", def: 1}},
	Polynomial2:           {{key: "c0"}, {key: "c1"}, {key: "c2"}},
	Sigmoid:               {{key: "alpha", def: 1}, {key: "c"}},
	Multiquadratic:        {{key: "c"}},
	InverseMultiquadratic: {{key: "c", def: 1}},
	Bessel:                {{key: "sigma", required: true}, {key: "v", required: true}, {key: "n", required: true}},
	Matern:                {{key: "sigma", required: true}, {key: "n", required: true}},
	Cauchy:                {{key: "sigma", required: true}},
	L2:                    {{key: "alpha", def: 1}, {key: "c"}},
}

// Transform is a family resolved against its hyperparameter lists: one
// evaluation closure per hyperparameter set.
type Transform struct {
	family Family
	needs  needs
	sets   []map[string]float64
	fns    []func(Measure) float64
}

// NewTransform validates params for family and resolves the transforms.
//
// Stage 1: reject unknown keys and check that all lists share one length n
// (defaults are broadcast; a family with only defaults gets n = 1).
// Stage 2: validate values per family (σ > 0, integer orders, c ≠ 0 for the
// inverse multiquadratic).
// Stage 3: build one closure per set.
func NewTransform(family Family, params Params) (*Transform, error) {
	specs, ok := familyParams[family]
	if !ok {
		return nil, kernelErrorf("NewTransform", fmt.Errorf("%w: unknown family %d", ErrConfiguration, int(family)))
	}
	allowed := make(map[string]paramSpec, len(specs))
	for _, s := range specs {
		allowed[s.key] = s
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := -1
	for _, k := range keys {
		if _, ok := allowed[k]; !ok {
			return nil, kernelErrorf("NewTransform", fmt.Errorf("%w: %s does not accept %q", ErrConfiguration, family, k))
		}
		l := len(params[k])
		if l == 0 || (n >= 0 && l != n) {
			return nil, kernelErrorf("NewTransform", fmt.Errorf("%w: %s: parameter lists must be non-empty and of equal length", ErrConfiguration, family))
		}
		n = l
	}
	if n < 0 {
		n = 1
	}

	t := &Transform{family: family, needs: family.needs(), sets: make([]map[string]float64, n), fns: make([]func(Measure) float64, n)}
	for i := 0; i < n; i++ {
		set := make(map[string]float64, len(specs))
		for _, s := range specs {
			vals, given := params[s.key]
			switch {
			case given:
				set[s.key] = vals[i]
			case s.required:
				return nil, kernelErrorf("NewTransform", fmt.Errorf("%w: %s requires %q", ErrConfiguration, family, s.key))
			default:
				set[s.key] = s.def
			}
		}
		fn, err := resolve(family, set)
		if err != nil {
			return nil, kernelErrorf(fmt.Sprintf("NewTransform: set %d", i), err)
		}
		t.sets[i] = set
		t.fns[i] = fn
	}

	return t, nil
}

// Family returns the resolved family.
func (t *Transform) Family() Family { return t.family }

// Len returns the number of hyperparameter sets.
func (t *Transform) Len() int { return len(t.fns) }

// Set returns a copy of hyperparameter set k.
func (t *Transform) Set(k int) map[string]float64 {
	out := make(map[string]float64, len(t.sets[k]))
	for key, v := range t.sets[k] {
		out[key] = v
	}

	return out
}

// Eval writes transform k of m into out[k] for every set.
func (t *Transform) Eval(m Measure, out []float64) {
	for k, fn := range t.fns {
		out[k] = fn(m)
	}
}

// Apply evaluates a single set.
func (t *Transform) Apply(k int, m Measure) float64 { return t.fns[k](m) }

func isInteger(v float64) bool { return v == math.Trunc(v) && !math.IsInf(v, 0) }

func resolve(f Family, p map[string]float64) (func(Measure) float64, error) {
	for k, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s=%v is not finite", ErrConfiguration, k, v)
		}
	}
	positiveSigma := func() error {
		if !(p["sigma"] > 0) {
			return fmt.Errorf("%w: %s requires sigma > 0", ErrConfiguration, f)
		}
		return nil
	}

	switch f {
	case Gaussian:
		if err := positiveSigma(); err != nil {
			return nil, err
		}
		inv := -0.5 / (p["sigma"] * p["sigma"])
		return func(m Measure) float64 { return math.Exp(m.D2 * inv) }, nil

	case Laplacian:
		if err := positiveSigma(); err != nil {
			return nil, err
		}
		inv := -1 / p["sigma"]
		return func(m Measure) float64 { return math.Exp(m.D1 * inv) }, nil

	case Linear:
		c := p["c"]
		return func(m Measure) float64 { return m.S + c }, nil

	case Polynomial:
		a, c, d := p["alpha"], p["c"], p["d"]
		return func(m Measure) float64 { return math.Pow(a*m.S+c, d) }, nil

	case Polynomial2:
		c0, c1, c2 := p["c0"], p["c1"], p["c2"]
		return func(m Measure) float64 { return c0 + c1*m.S + c2*m.S*m.S }, nil

	case Sigmoid:
		a, c := p["alpha"], p["c"]
		return func(m Measure) float64 { return math.Tanh(a*m.S + c) }, nil

	case Multiquadratic:
		c2 := p["c"] * p["c"]
		return func(m Measure) float64 { return math.Sqrt(m.D2 + c2) }, nil

	case InverseMultiquadratic:
		if p["c"] == 0 {
			return nil, fmt.Errorf("%w: inverse-multiquadratic requires c != 0", ErrConfiguration)
		}
		c2 := p["c"] * p["c"]
		return func(m Measure) float64 { return 1 / math.Sqrt(m.D2+c2) }, nil

	case Bessel:
		if !isInteger(p["v"]) {
			return nil, fmt.Errorf("%w: bessel requires an integer order v", ErrConfiguration)
		}
		sigma, v := p["sigma"], int(p["v"])
		pow := p["n"] * (p["v"] + 1)
		return func(m Measure) float64 { return math.Jn(v, sigma*m.S) * math.Pow(m.S, pow) }, nil

	case Matern:
		if err := positiveSigma(); err != nil {
			return nil, err
		}
		if !isInteger(p["n"]) || p["n"] < 0 {
			return nil, fmt.Errorf("%w: matern requires a non-negative integer n", ErrConfiguration)
		}
		n := int(p["n"])
		coef := maternCoefficients(n)
		scale := 2 * math.Sqrt(2*(float64(n)+0.5)) / p["sigma"]
		return func(m Measure) float64 {
			rho := scale * math.Sqrt(m.D2)
			e := math.Exp(-0.5 * rho)
			var sum float64
			for k := 0; k <= n; k++ {
				sum += e * coef[k] * math.Pow(rho, float64(n-k))
			}
			return sum
		}, nil

	case Cauchy:
		if err := positiveSigma(); err != nil {
			return nil, err
		}
		inv := 1 / (p["sigma"] * p["sigma"])
		return func(m Measure) float64 { return 1 / (1 + m.D2*inv) }, nil

	case L2:
		a, c := p["alpha"], p["c"]
		return func(m Measure) float64 { return a*m.D2 + c }, nil
	}

	return nil, fmt.Errorf("%w: unknown family %d", ErrConfiguration, int(f))
}

// maternCoefficients returns (n+k)!/(2n)!·C(n,k) for k = 0..n.
func maternCoefficients(n int) []float64 {
	fact := func(k int) float64 {
		out := 1.0
		for i := 2; i <= k; i++ {
			out *= float64(i)
		}
		return out
	}
	coef := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		coef[k] = fact(n+k) / fact(2*n) * float64(combin.Binomial(n, k))
	}

	return coef
}
