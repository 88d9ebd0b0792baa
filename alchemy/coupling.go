package alchemy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmlkit/elements"
	"github.com/katalvlaran/qmlkit/matrix"
)

// Defaults used by the FCHL kernels.
const (
	DefaultEmax        = 100
	DefaultGroupWidth  = 1.6
	DefaultPeriodWidth = 1.6
)

// Mode tags how a Coupling was built.
type Mode int

const (
	ModeOff Mode = iota
	ModePeriodicTable
	ModeCustom
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModePeriodicTable:
		return "periodic-table"
	case ModeCustom:
		return "custom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Coupling is a read-only element similarity matrix indexed by nuclear charge.
type Coupling struct {
	mode Mode
	size int       // emax + 1
	w    []float64 // size*size, row-major
}

// Off returns the identity coupling for charges 1..emax.
func Off(emax int) (*Coupling, error) {
	if emax <= 0 {
		return nil, alchemyErrorf("Off", ErrConfiguration)
	}
	c := newCoupling(ModeOff, emax)
	for z := 1; z <= emax; z++ {
		c.w[z*c.size+z] = 1
	}

	return c, nil
}

// PeriodicTable returns exp(-Δrow²/(4·periodWidth²) - Δcol²/(4·groupWidth²))
// for every pair of charges in 1..emax, using positions from tbl.
// Stage 1: validate widths and that tbl covers 1..emax.
// Stage 2: fill the lower triangle and mirror.
// Complexity: O(emax²).
func PeriodicTable(tbl *elements.Table, emax int, groupWidth, periodWidth float64) (*Coupling, error) {
	if tbl == nil || emax <= 0 || !(groupWidth > 0) || !(periodWidth > 0) {
		return nil, alchemyErrorf("PeriodicTable", ErrConfiguration)
	}
	rows := make([]int, emax+1)
	cols := make([]int, emax+1)
	for z := 1; z <= emax; z++ {
		r, c, err := tbl.Position(z)
		if err != nil {
			return nil, alchemyErrorf("PeriodicTable", fmt.Errorf("%w: %v", ErrConfiguration, err))
		}
		rows[z], cols[z] = r, c
	}
	c := newCoupling(ModePeriodicTable, emax)
	for i := 1; i <= emax; i++ {
		for j := 1; j <= i; j++ {
			dr := float64(rows[i] - rows[j])
			dc := float64(cols[i] - cols[j])
			v := math.Exp(-dr*dr/(4*periodWidth*periodWidth) - dc*dc/(4*groupWidth*groupWidth))
			c.w[i*c.size+j] = v
			c.w[j*c.size+i] = v
		}
	}

	return c, nil
}

// DefaultPeriodicTable is PeriodicTable over the default table with the
// default widths and emax.
func DefaultPeriodicTable() (*Coupling, error) {
	return PeriodicTable(elements.Default(), DefaultEmax, DefaultGroupWidth, DefaultPeriodWidth)
}

// Custom wraps a caller-supplied matrix. Entry (i, j) is the coupling between
// charges i and j; the matrix must be square, symmetric and finite.
func Custom(m *matrix.Dense) (*Coupling, error) {
	if err := matrix.ValidateSymmetric(m, matrix.DefaultEpsilon); err != nil {
		return nil, alchemyErrorf("Custom", fmt.Errorf("%w: %v", ErrConfiguration, err))
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, alchemyErrorf("Custom", fmt.Errorf("%w: %v", ErrConfiguration, err))
	}
	c := &Coupling{mode: ModeCustom, size: m.Rows(), w: make([]float64, m.Rows()*m.Rows())}
	for i := 0; i < c.size; i++ {
		copy(c.w[i*c.size:(i+1)*c.size], m.RowView(i))
	}

	return c, nil
}

// FromVectors builds a custom coupling from per-element feature vectors:
// exp(-|v_a - v_b|²/(4·width²)). Charges without a vector couple only to
// themselves. All vectors must share one length.
func FromVectors(vectors map[int][]float64, emax int, width float64) (*Coupling, error) {
	if emax <= 0 || !(width > 0) {
		return nil, alchemyErrorf("FromVectors", ErrConfiguration)
	}
	dim := -1
	for z, v := range vectors {
		if z <= 0 || z > emax {
			return nil, alchemyErrorf(fmt.Sprintf("FromVectors: Z=%d", z), ErrConfiguration)
		}
		if dim >= 0 && len(v) != dim {
			return nil, alchemyErrorf(fmt.Sprintf("FromVectors: Z=%d", z), ErrConfiguration)
		}
		dim = len(v)
	}
	c := newCoupling(ModeCustom, emax)
	for i := 1; i <= emax; i++ {
		c.w[i*c.size+i] = 1
		vi, ok := vectors[i]
		if !ok {
			continue
		}
		for j := 1; j < i; j++ {
			vj, ok := vectors[j]
			if !ok {
				continue
			}
			var d2 float64
			for k := range vi {
				d := vi[k] - vj[k]
				d2 += d * d
			}
			v := math.Exp(-d2 / (4 * width * width))
			c.w[i*c.size+j] = v
			c.w[j*c.size+i] = v
		}
	}

	return c, nil
}

func newCoupling(mode Mode, emax int) *Coupling {
	size := emax + 1
	return &Coupling{mode: mode, size: size, w: make([]float64, size*size)}
}

// Mode reports how the coupling was built.
func (c *Coupling) Mode() Mode { return c.mode }

// MaxZ returns the largest nuclear charge the coupling covers.
func (c *Coupling) MaxZ() int { return c.size - 1 }

// Weight returns the coupling between charges z1 and z2. Charges outside
// [0, MaxZ] are a programmer error (callers validate with Covers) and panic.
func (c *Coupling) Weight(z1, z2 int) float64 {
	return c.w[z1*c.size+z2]
}

// Covers returns ErrConfiguration if any charge is outside 1..MaxZ.
func (c *Coupling) Covers(zs ...int) error {
	for _, z := range zs {
		if z < 1 || z >= c.size {
			return alchemyErrorf(fmt.Sprintf("Covers: Z=%d", z), ErrConfiguration)
		}
	}

	return nil
}

// Dense returns a copy of the coupling as a matrix.
func (c *Coupling) Dense() *matrix.Dense {
	d, _ := matrix.NewDense(c.size, c.size)
	for i := 0; i < c.size; i++ {
		copy(d.RowView(i), c.w[i*c.size:(i+1)*c.size])
	}

	return d
}
