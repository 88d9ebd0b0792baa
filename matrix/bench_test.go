// Package matrix_test provides benchmarks for the Jacobi solver,
// using deterministic random fill for symmetric matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/qmlkit/matrix"
)

var sinkV []float64

func BenchmarkSymmetricEigenvalues(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{8, 23, 50} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := randomSymmetric(b, n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v, err := matrix.SymmetricEigenvalues(m)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = v
			}
		})
	}
}
