package fchl_test

import (
	"testing"

	"github.com/katalvlaran/qmlkit/fchl"
)

func BenchmarkLocalSymmetricKernels(b *testing.B) {
	x := dataset(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fchl.LocalSymmetricKernels(x); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	m := water(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fchl.Generate(m, fchl.DefaultSize, fchl.DefaultNeighbors, fchl.DefaultCut); err != nil {
			b.Fatal(err)
		}
	}
}
