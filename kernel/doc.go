// Package kernel implements the pairwise kernel engine shared by every
// representation family.
//
// An Engine is generic over the atom-environment type E. It needs only a
// Metric[E] (an overlap Dot and, optionally, SqDist and L1) and a kernel
// Family resolved once per call into one closed-form transform per
// hyperparameter set:
//
//	gaussian                exp(-0.5·d2/σ²)
//	laplacian               exp(-d1/σ)
//	linear                  s + c
//	polynomial              (α·s + c)^d
//	polynomial2             c0 + c1·s + c2·s²
//	sigmoid                 tanh(α·s + c)
//	multiquadratic          sqrt(d2 + c²)
//	inverse-multiquadratic  1/sqrt(d2 + c²)
//	bessel                  J_v(σ·s)·s^(n(v+1))
//	matern                  order-n Matérn of sqrt(d2) with length-scale σ
//	cauchy                  1/(1 + d2/σ²)
//	l2                      α·d2 + c
//
// Locality levels:
//
//	Atomic  one value per (environment of A, environment of B)
//	Local   per molecule pair, the sum of atomic values over all atom pairs
//	Global  per molecule pair, the family applied to the summed overlap
//	        S_AB = Σ_a Σ_b Dot(a, b) with d2 = S_AA + S_BB - 2·S_AB
//
// Base measures (s, d2, d1) are computed once per pair and fed to every
// hyperparameter set, so a batched call returns exactly the matrices that
// separate single-parameter calls would. Symmetric entry points evaluate
// only j ≤ i and mirror. Rows run in parallel (errgroup); each cell is
// accumulated in a fixed order, so results do not depend on the worker count.
package kernel
