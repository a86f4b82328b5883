package stats

import (
	"math"

	"hypotest/internal/errors"
)

// Post-hoc power uses the standard normal approximation to the noncentral
// t distribution. An effect size of zero legitimately yields power equal to
// alpha for the two-sided framing; that is the correct limit, not an error.

// OneSampleTTestPower computes post-hoc power for a one-sample or paired
// t-test with standardized effect size d and n observations.
func OneSampleTTestPower(d float64, n int, alpha float64) (PowerResult, error) {
	if err := validatePowerInput(d, n, alpha); err != nil {
		return PowerResult{}, err
	}
	delta := math.Abs(d) * math.Sqrt(float64(n))
	return normalPower(d, delta, alpha), nil
}

// TwoSampleTTestPower computes post-hoc power for a two-independent-sample
// t-test with standardized effect size d and per-group sizes n1, n2.
func TwoSampleTTestPower(d float64, n1, n2 int, alpha float64) (PowerResult, error) {
	if err := validatePowerInput(d, n1, alpha); err != nil {
		return PowerResult{}, err
	}
	if n2 < 1 {
		return PowerResult{}, errors.ValidationError("Power analysis requires group sizes of at least one.")
	}
	fn1, fn2 := float64(n1), float64(n2)
	delta := math.Abs(d) * math.Sqrt(fn1*fn2/(fn1+fn2))
	return normalPower(d, delta, alpha), nil
}

// ProportionTestPower reproduces the two-proportion endpoint's power
// formula: the probability that the observed |z| clears the critical value.
func ProportionTestPower(zScore, zCritical float64) float64 {
	return 1 - NewDistributions().NormalCDF(zCritical-math.Abs(zScore))
}

func normalPower(effect, delta, alpha float64) PowerResult {
	dist := NewDistributions()

	zTwoSided := dist.NormalQuantile(1 - alpha/2)
	twoTailed := 1 - dist.NormalCDF(zTwoSided-delta) + dist.NormalCDF(-zTwoSided-delta)

	zOneSided := dist.NormalQuantile(1 - alpha)
	oneTailed := 1 - dist.NormalCDF(zOneSided-delta)

	return PowerResult{
		EffectSize: round3(effect),
		OneTailed:  round3(clamp01(oneTailed)),
		TwoTailed:  round3(clamp01(twoTailed)),
	}
}

func validatePowerInput(d float64, n int, alpha float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return errors.ValidationError("Effect size must be a finite number.")
	}
	if n < 1 {
		return errors.ValidationError("Power analysis requires group sizes of at least one.")
	}
	if !(alpha > 0 && alpha < 1) {
		return errors.ValidationError("Alpha_value must be between 0 and 1.")
	}
	return nil
}
