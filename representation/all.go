package representation

import (
	"runtime"

	"github.com/katalvlaran/qmlkit/geometry"
	"golang.org/x/sync/errgroup"
)

// GenerateAll applies gen to every molecule on up to workers goroutines
// (GOMAXPROCS when workers <= 0) and returns the results in input order. The
// first error wins and is returned with no partial output.
func GenerateAll[T any](mols []*geometry.Molecule, workers int, gen func(*geometry.Molecule) (T, error)) ([]T, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]T, len(mols))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, m := range mols {
		g.Go(func() error {
			v, err := gen(m)
			if err != nil {
				return err
			}
			out[i] = v

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
