package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"hypotest/internal/errors"
)

// Levene tests two independent samples for equal variance, centering each
// group's absolute deviations on its mean.
func Levene(g1, g2 Sample, alpha float64) (VarianceResult, error) {
	return varianceTest(LeveneMethod, g1, g2, alpha)
}

// BrownForsythe is the robust variant of Levene's test, centering on the
// group medians instead of the means.
func BrownForsythe(g1, g2 Sample, alpha float64) (VarianceResult, error) {
	return varianceTest(BrownForsytheMethod, g1, g2, alpha)
}

// RunVarianceTest dispatches to the selected method.
func RunVarianceTest(method VarianceMethod, g1, g2 Sample, alpha float64) (VarianceResult, error) {
	switch method {
	case LeveneMethod, BrownForsytheMethod:
		return varianceTest(method, g1, g2, alpha)
	default:
		return VarianceResult{}, errors.ValidationErrorf("unknown variance test: %s", method)
	}
}

func varianceTest(method VarianceMethod, g1, g2 Sample, alpha float64) (VarianceResult, error) {
	if len(g1) < 2 || len(g2) < 2 {
		return VarianceResult{}, errors.InsufficientData("Variance tests require at least two observations per group.")
	}

	groups := []Sample{g1, g2}
	k := float64(len(groups))
	total := float64(len(g1) + len(g2))

	// One-way ANOVA on the absolute deviations from each group's center.
	devs := make([][]float64, len(groups))
	groupMeans := make([]float64, len(groups))
	grand := 0.0
	for i, g := range groups {
		center, err := groupCenter(method, g)
		if err != nil {
			return VarianceResult{}, err
		}
		devs[i] = make([]float64, len(g))
		sum := 0.0
		for j, v := range g {
			devs[i][j] = math.Abs(v - center)
			sum += devs[i][j]
		}
		groupMeans[i] = sum / float64(len(g))
		grand += sum
	}
	grand /= total

	between := 0.0
	within := 0.0
	for i, g := range groups {
		between += float64(len(g)) * (groupMeans[i] - grand) * (groupMeans[i] - grand)
		for _, z := range devs[i] {
			within += (z - groupMeans[i]) * (z - groupMeans[i])
		}
	}
	if within == 0 {
		return VarianceResult{}, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	w := ((total - k) / (k - 1)) * (between / within)
	p := NewDistributions().FSurvival(w, k-1, total-k)

	return VarianceResult{
		Method:        method,
		Statistic:     w,
		PValue:        p,
		EqualVariance: p > alpha,
	}, nil
}

func groupCenter(method VarianceMethod, g Sample) (float64, error) {
	if method == BrownForsytheMethod {
		median, err := mstats.Median(mstats.Float64Data(g))
		if err != nil {
			return 0, errors.Wrap(err, "failed to compute median")
		}
		return median, nil
	}
	mean, err := mstats.Mean(mstats.Float64Data(g))
	if err != nil {
		return 0, errors.Wrap(err, "failed to compute mean")
	}
	return mean, nil
}
