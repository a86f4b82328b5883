package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the distributions the test
// engines draw from, so CDF and quantile calls are not fragmented across
// the engine files.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TCDF evaluates the Student's t cumulative distribution function.
func (d *Distributions) TCDF(t, df float64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tDist.CDF(t)
}

// TTestPValue computes the two-tailed p-value for a t statistic.
func (d *Distributions) TTestPValue(t, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	return 2 * (1 - d.TCDF(math.Abs(t), df))
}

// TQuantile computes the quantile of the Student's t distribution,
// used for confidence-interval critical values.
func (d *Distributions) TQuantile(p, df float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tDist.Quantile(p)
}

// NormalCDF computes the cumulative distribution function of the standard normal.
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalSurvival computes the upper tail probability of the standard normal.
func (d *Distributions) NormalSurvival(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// NormalQuantile computes the quantile of the standard normal (inverse CDF).
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// FSurvival computes the upper tail probability of the F distribution,
// used by the equal-variance diagnostics.
func (d *Distributions) FSurvival(f float64, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return 1 - fDist.CDF(f)
}

// adjustPValue converts a t or z statistic into the p-value for the selected
// alternative hypothesis: two-sided doubles the upper tail of the absolute
// statistic, "greater" takes the upper tail, "less" the lower.
func adjustPValue(cdf func(float64) float64, statistic float64, alt Alternative) float64 {
	switch alt {
	case Greater:
		return 1 - cdf(statistic)
	case Less:
		return cdf(statistic)
	default:
		return 2 * (1 - cdf(math.Abs(statistic)))
	}
}
