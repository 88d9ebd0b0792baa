package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/qmlkit/matrix"
)

// ExampleSymmetricEigenvalues shows the ascending spectrum of a small
// symmetric matrix.
func ExampleSymmetricEigenvalues() {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{2, 0, 0},
		{0, 3, 4},
		{0, 4, 9},
	})
	eigs, err := matrix.SymmetricEigenvalues(m)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.3f %.3f %.3f\n", eigs[0], eigs[1], eigs[2])
	// Output:
	// 1.000 2.000 11.000
}
