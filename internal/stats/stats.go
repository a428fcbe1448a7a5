// Package stats implements the two classical tests the seasonal analyzer
// needs. Nothing in the dependency set covers these, so the formulas are
// written out directly.
package stats

import "math"

// ChiSquareResult is the outcome of a 2x2 chi-square independence test.
// Significant is forced false whenever any expected cell count is below 5;
// with cells that small the approximation is unreliable no matter what the
// p-value says.
type ChiSquareResult struct {
	ChiSquare   float64 `json:"chiSquare"`
	PValue      float64 `json:"pValue"`
	CramersV    float64 `json:"cramersV"`
	MinExpected float64 `json:"minExpected"`
	Significant bool    `json:"isSignificant"`
}

// ChiSquare2x2 compares the negative/positive counts of one group against
// the pooled counts of everything else.
func ChiSquare2x2(negA, posA, negRest, posRest int) ChiSquareResult {
	n := float64(negA + posA + negRest + posRest)
	if n == 0 {
		return ChiSquareResult{PValue: 1}
	}

	obs := [4]float64{float64(negA), float64(posA), float64(negRest), float64(posRest)}
	rowA := obs[0] + obs[1]
	rowB := obs[2] + obs[3]
	colNeg := obs[0] + obs[2]
	colPos := obs[1] + obs[3]
	exp := [4]float64{
		rowA * colNeg / n,
		rowA * colPos / n,
		rowB * colNeg / n,
		rowB * colPos / n,
	}

	chi := 0.0
	minExp := math.Inf(1)
	for i := range obs {
		if exp[i] < minExp {
			minExp = exp[i]
		}
		if exp[i] > 0 {
			d := obs[i] - exp[i]
			chi += d * d / exp[i]
		}
	}

	p := clampP(2 * (1 - NormCDF(math.Sqrt(chi))))
	return ChiSquareResult{
		ChiSquare:   chi,
		PValue:      p,
		CramersV:    math.Sqrt(chi / n),
		MinExpected: minExp,
		Significant: p < 0.05 && minExp >= 5,
	}
}

// ZTestResult is the outcome of a two-proportion z-test. ReferenceOnly marks
// results where either sample is under 30 observations.
type ZTestResult struct {
	Z             float64 `json:"z"`
	PValue        float64 `json:"pValue"`
	CohensH       float64 `json:"cohensH"`
	ReferenceOnly bool    `json:"referenceOnly"`
	Significant   bool    `json:"isSignificant"`
}

// ProportionZTest compares x1/n1 against x2/n2 with a pooled-proportion
// standard error.
func ProportionZTest(x1, n1, x2, n2 int) ZTestResult {
	if n1 == 0 || n2 == 0 {
		return ZTestResult{PValue: 1, ReferenceOnly: true}
	}

	p1 := float64(x1) / float64(n1)
	p2 := float64(x2) / float64(n2)
	pooled := float64(x1+x2) / float64(n1+n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(n1) + 1/float64(n2)))

	z := 0.0
	if se > 0 {
		z = (p1 - p2) / se
	}
	p := clampP(2 * (1 - NormCDF(math.Abs(z))))
	ref := n1 < 30 || n2 < 30

	return ZTestResult{
		Z:             z,
		PValue:        p,
		CohensH:       2*math.Asin(math.Sqrt(p1)) - 2*math.Asin(math.Sqrt(p2)),
		ReferenceOnly: ref,
		Significant:   p < 0.05 && !ref,
	}
}

// NormCDF approximates the standard normal CDF with the Abramowitz & Stegun
// 26.2.17 polynomial, accurate to roughly seven digits.
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	t := 1 / (1 + 0.2316419*x)
	poly := t * (0.319381530 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	return 1 - math.Exp(-x*x/2)/math.Sqrt(2*math.Pi)*poly
}

func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
