package fchl_test

import (
	"fmt"

	"github.com/katalvlaran/qmlkit/fchl"
	"github.com/katalvlaran/qmlkit/geometry"
	"github.com/katalvlaran/qmlkit/kernel"
)

// ExampleLocalSymmetricKernels builds FCHL18 representations for two small
// molecules and compares them with two Gaussian widths.
func ExampleLocalSymmetricKernels() {
	h2, _ := geometry.New([]int{1, 1}, [][3]float64{{0, 0, 0}, {0.74, 0, 0}})
	hf, _ := geometry.New([]int{1, 9}, [][3]float64{{0, 0, 0}, {0.92, 0, 0}})
	var reps []*fchl.Representation
	for _, m := range []*geometry.Molecule{h2, hf} {
		rep, err := fchl.Generate(m, 2, 2, fchl.DefaultCut)
		if err != nil {
			fmt.Println(err)
			return
		}
		reps = append(reps, rep)
	}

	k, err := fchl.LocalSymmetricKernels(reps, fchl.WithFamily(kernel.Gaussian, kernel.Sigmas(1, 10)))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, m := range k {
		v, _ := m.At(0, 0)
		fmt.Printf("%.1f\n", v)
	}
	// Output:
	// 4.0
	// 4.0
}
