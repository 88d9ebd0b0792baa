package fchl

import (
	"fmt"

	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/katalvlaran/qmlkit/matrix"
)

// shape is the (size, neighbors) pair every representation of a call shares.
type shape struct{ size, neighbors int }

func (c config) engine() (*kernel.Engine[env], error) {
	e, err := kernel.NewEngine(kernel.Metric[env]{Dot: c.overlap}, c.family, c.params, c.kopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return e, nil
}

// covered checks that the coupling knows the atom and all its neighbors.
func (c config) covered(a Atom) error {
	zs := []int{a.Charge()}
	for m := 1; m < a.r.neighbors && a.At(0, m) < c.cutDistance; m++ {
		zs = append(zs, int(a.At(1, m)+0.5))
	}
	if err := c.coupling.Covers(zs...); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

func (c config) atoms(tag string, sh shape, atoms []Atom) ([]env, error) {
	if len(atoms) == 0 {
		return nil, fchlErrorf(tag, kernel.ErrEmptyInput)
	}
	out := make([]env, len(atoms))
	for i, a := range atoms {
		if a.r == nil || a.r.size != sh.size || a.r.neighbors != sh.neighbors {
			return nil, fchlErrorf(tag, fmt.Errorf("atom %d: %w", i, ErrShapeMismatch))
		}
		if err := c.covered(a); err != nil {
			return nil, fchlErrorf(tag, fmt.Errorf("atom %d: %w", i, err))
		}
		out[i] = c.env(a)
	}

	return out, nil
}

func (c config) molecules(tag string, sh shape, reps []*Representation) ([][]env, error) {
	if len(reps) == 0 {
		return nil, fchlErrorf(tag, kernel.ErrEmptyInput)
	}
	out := make([][]env, len(reps))
	for i, r := range reps {
		if r == nil || r.size != sh.size || r.neighbors != sh.neighbors {
			return nil, fchlErrorf(tag, fmt.Errorf("molecule %d: %w", i, ErrShapeMismatch))
		}
		envs, err := c.atoms(fmt.Sprintf("%s: molecule %d", tag, i), sh, r.Atoms())
		if err != nil {
			return nil, err
		}
		out[i] = envs
	}

	return out, nil
}

func shapeOf(reps []*Representation) shape {
	if len(reps) == 0 || reps[0] == nil {
		return shape{}
	}

	return shape{reps[0].size, reps[0].neighbors}
}

func shapeOfAtoms(atoms []Atom) shape {
	if len(atoms) == 0 || atoms[0].r == nil {
		return shape{}
	}

	return shape{atoms[0].r.size, atoms[0].r.neighbors}
}

// molecular resolves options, prepares both sets and dispatches on level;
// x2 == nil selects the symmetric path.
func molecular(tag string, lvl kernel.Level, x1, x2 []*Representation, opts []Option) ([]*matrix.Dense, error) {
	c, err := gather(opts)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	e, err := c.engine()
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	sh := shapeOf(x1)
	a, err := c.molecules(tag, sh, x1)
	if err != nil {
		return nil, err
	}
	var b [][]env
	if x2 != nil {
		if b, err = c.molecules(tag, sh, x2); err != nil {
			return nil, err
		}
	}

	var out []*matrix.Dense
	switch {
	case lvl == kernel.LevelGlobal && b == nil:
		out, err = e.GlobalSymmetric(a)
	case lvl == kernel.LevelGlobal:
		out, err = e.Global(a, b)
	case b == nil:
		out, err = e.LocalSymmetric(a)
	default:
		out, err = e.Local(a, b)
	}
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}

	return out, nil
}

// LocalKernels returns K[I][J] = Σ_{a∈I} Σ_{b∈J} f(a, b), one matrix per
// hyperparameter set.
func LocalKernels(x1, x2 []*Representation, opts ...Option) ([]*matrix.Dense, error) {
	if x2 == nil {
		return nil, fchlErrorf("LocalKernels", kernel.ErrEmptyInput)
	}
	return molecular("LocalKernels", kernel.LevelLocal, x1, x2, opts)
}

// LocalSymmetricKernels is LocalKernels(x, x) evaluating one triangle.
func LocalSymmetricKernels(x []*Representation, opts ...Option) ([]*matrix.Dense, error) {
	return molecular("LocalSymmetricKernels", kernel.LevelLocal, x, nil, opts)
}

// GlobalKernels compares molecules through their summed atom overlaps.
func GlobalKernels(x1, x2 []*Representation, opts ...Option) ([]*matrix.Dense, error) {
	if x2 == nil {
		return nil, fchlErrorf("GlobalKernels", kernel.ErrEmptyInput)
	}
	return molecular("GlobalKernels", kernel.LevelGlobal, x1, x2, opts)
}

// GlobalSymmetricKernels is GlobalKernels(x, x) evaluating one triangle.
func GlobalSymmetricKernels(x []*Representation, opts ...Option) ([]*matrix.Dense, error) {
	return molecular("GlobalSymmetricKernels", kernel.LevelGlobal, x, nil, opts)
}

// AtomicKernels returns atom-by-atom kernels.
func AtomicKernels(a1, a2 []Atom, opts ...Option) ([]*matrix.Dense, error) {
	const tag = "AtomicKernels"
	c, err := gather(opts)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	e, err := c.engine()
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	sh := shapeOfAtoms(a1)
	x, err := c.atoms(tag, sh, a1)
	if err != nil {
		return nil, err
	}
	y, err := c.atoms(tag, sh, a2)
	if err != nil {
		return nil, err
	}
	out, err := e.Atomic(x, y)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}

	return out, nil
}

// AtomicSymmetricKernels is AtomicKernels(a, a) evaluating one triangle.
func AtomicSymmetricKernels(a []Atom, opts ...Option) ([]*matrix.Dense, error) {
	const tag = "AtomicSymmetricKernels"
	c, err := gather(opts)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	e, err := c.engine()
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}
	x, err := c.atoms(tag, shapeOfAtoms(a), a)
	if err != nil {
		return nil, err
	}
	out, err := e.AtomicSymmetric(x)
	if err != nil {
		return nil, fchlErrorf(tag, err)
	}

	return out, nil
}
