package kernel_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qmlkit/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	for _, f := range kernel.Families() {
		got, err := kernel.ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	f, err := kernel.ParseFamily(" Inverse_Multiquadratic ")
	require.NoError(t, err)
	assert.Equal(t, kernel.InverseMultiquadratic, f)

	_, err = kernel.ParseFamily("rbf")
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
}

func TestNewTransform_Validation(t *testing.T) {
	cases := []struct {
		name   string
		family kernel.Family
		params kernel.Params
	}{
		{"unequal lists", kernel.Polynomial, kernel.Params{"alpha": {1, 2}, "c": {1}}},
		{"unknown key", kernel.Gaussian, kernel.Params{"gamma": {1}}},
		{"empty list", kernel.Gaussian, kernel.Params{"sigma": {}}},
		{"missing sigma", kernel.Laplacian, nil},
		{"non-positive sigma", kernel.Gaussian, kernel.Sigmas(0)},
		{"fractional bessel order", kernel.Bessel, kernel.Params{"sigma": {1}, "v": {1.5}, "n": {1}}},
		{"negative matern order", kernel.Matern, kernel.Params{"sigma": {1}, "n": {-1}}},
		{"zero imq offset", kernel.InverseMultiquadratic, kernel.Params{"c": {0}}},
		{"nan value", kernel.Linear, kernel.Params{"c": {math.NaN()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewTransform(tc.family, tc.params)
			assert.ErrorIs(t, err, kernel.ErrConfiguration)
		})
	}
}

func TestNewTransform_Defaults(t *testing.T) {
	tr, err := kernel.NewTransform(kernel.Polynomial, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, map[string]float64{"alpha": 1, "c": 0, "d": 1}, tr.Set(0))

	tr, err = kernel.NewTransform(kernel.Gaussian, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.5, tr.Set(0)["sigma"])
}

// TestTransforms_ClosedForms checks every family against its formula on a
// fixed measure.
func TestTransforms_ClosedForms(t *testing.T) {
	m := kernel.Measure{S: 0.7, D2: 1.3, D1: 2.1}
	cases := []struct {
		family kernel.Family
		params kernel.Params
		want   float64
	}{
		{kernel.Gaussian, kernel.Sigmas(2), math.Exp(-0.5 * 1.3 / 4)},
		{kernel.Laplacian, kernel.Sigmas(2), math.Exp(-2.1 / 2)},
		{kernel.Linear, kernel.Params{"c": {1}}, 1.7},
		{kernel.Polynomial, kernel.Params{"alpha": {2}, "c": {1}, "d": {3}}, math.Pow(2.4, 3)},
		{kernel.Polynomial2, kernel.Params{"c0": {1}, "c1": {2}, "c2": {3}}, 1 + 1.4 + 3*0.49},
		{kernel.Sigmoid, kernel.Params{"alpha": {2}, "c": {3}}, math.Tanh(4.4)},
		{kernel.Multiquadratic, kernel.Params{"c": {2}}, math.Sqrt(5.3)},
		{kernel.InverseMultiquadratic, kernel.Params{"c": {2}}, 1 / math.Sqrt(5.3)},
		{kernel.Bessel, kernel.Params{"sigma": {2}, "v": {3}, "n": {2}}, math.Jn(3, 1.4) * math.Pow(0.7, 8)},
		{kernel.Cauchy, kernel.Sigmas(2), 1 / (1 + 1.3/4)},
		{kernel.L2, kernel.Params{"alpha": {2}, "c": {1}}, 3.6},
	}
	for _, tc := range cases {
		t.Run(tc.family.String(), func(t *testing.T) {
			tr, err := kernel.NewTransform(tc.family, tc.params)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, tr.Apply(0, m), 1e-12)
		})
	}
}

// TestMatern_MatchesHalfIntegerForms compares the series with the textbook
// Matérn 1/2 and 3/2 kernels.
func TestMatern_MatchesHalfIntegerForms(t *testing.T) {
	const sigma = 5.0
	m := kernel.Measure{D2: 2.25}
	r := 1.5

	tr, err := kernel.NewTransform(kernel.Matern, kernel.Params{"sigma": {sigma, sigma}, "n": {0, 1}})
	require.NoError(t, err)
	out := make([]float64, 2)
	tr.Eval(m, out)

	rho0 := 2 * math.Sqrt(1) * r / sigma
	assert.InDelta(t, math.Exp(-0.5*rho0), out[0], 1e-12)

	rho1 := 2 * math.Sqrt(3) * r / sigma
	want1 := math.Exp(-0.5*rho1) * (1 + rho1*0.5)
	assert.InDelta(t, want1, out[1], 1e-12)
}
