package representation_test

import (
	"testing"

	"github.com/katalvlaran/qmlkit/representation"
)

var sinkRows [][]float64

func BenchmarkFCHL19(b *testing.B) {
	m := randomMolecule(b, 7, 20, []int{1, 6, 7, 8})
	cfg := representation.DefaultFCHL19Config()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rep, _, err := representation.FCHL19(m, cfg)
		if err != nil {
			b.Fatal(err)
		}
		sinkRows = rep
	}
}

func BenchmarkACSFWithGradients(b *testing.B) {
	m := randomMolecule(b, 8, 12, []int{1, 6, 8})
	cfg := representation.DefaultACSFConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rep, _, err := representation.ACSF(m, cfg, representation.WithGradients())
		if err != nil {
			b.Fatal(err)
		}
		sinkRows = rep
	}
}
