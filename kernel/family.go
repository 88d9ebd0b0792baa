package kernel

import (
	"fmt"
	"strings"
)

// Family selects the closed-form transform applied to base measures.
type Family int

const (
	Gaussian Family = iota
	Laplacian
	Linear
	Polynomial
	Polynomial2
	Sigmoid
	Multiquadratic
	InverseMultiquadratic
	Bessel
	Matern
	Cauchy
	L2
)

var familyNames = [...]string{
	Gaussian:              "gaussian",
	Laplacian:             "laplacian",
	Linear:                "linear",
	Polynomial:            "polynomial",
	Polynomial2:           "polynomial2",
	Sigmoid:               "sigmoid",
	Multiquadratic:        "multiquadratic",
	InverseMultiquadratic: "inverse-multiquadratic",
	Bessel:                "bessel",
	Matern:                "matern",
	Cauchy:                "cauchy",
	L2:                    "l2",
}

// Families lists every supported family in declaration order.
func Families() []Family {
	out := make([]Family, len(familyNames))
	for i := range familyNames {
		out[i] = Family(i)
	}

	return out
}

// String implements fmt.Stringer.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}

	return familyNames[f]
}

// ParseFamily resolves a family name (case-insensitive; "_" and "-" are
// interchangeable).
func ParseFamily(name string) (Family, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, s := range familyNames {
		if s == n {
			return Family(i), nil
		}
	}

	return 0, kernelErrorf("ParseFamily", fmt.Errorf("%w: unknown family %q", ErrConfiguration, name))
}

// needs describes which base measures a family consumes.
type needs struct {
	dot, sqDist, l1 bool
}

func (f Family) needs() needs {
	switch f {
	case Gaussian, Multiquadratic, InverseMultiquadratic, Matern, Cauchy, L2:
		return needs{sqDist: true}
	case Laplacian:
		return needs{l1: true}
	default:
		return needs{dot: true}
	}
}
