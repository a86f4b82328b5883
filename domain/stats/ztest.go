package stats

import (
	"fmt"
	"math"

	"hypotest/internal/errors"
)

// GroupMeanSummary is the per-group block of the two-sample Z report.
type GroupMeanSummary struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
}

// MeanDifferenceInterval extends the confidence interval with the point
// estimate it is centered on.
type MeanDifferenceInterval struct {
	Level          float64 `json:"confidence_level"`
	MeanDifference float64 `json:"mean_difference"`
	Lower          float64 `json:"lower_bound"`
	Upper          float64 `json:"upper_bound"`
}

// TwoSampleZResult is the assembled two-sample Z-test report. Means and
// interval bounds are rounded to 3 decimals, the p-value to 5.
type TwoSampleZResult struct {
	Hypothesis         string                      `json:"hypothesis"`
	GroupingVariable   string                      `json:"grouping_variable"`
	Summary            map[string]GroupMeanSummary `json:"summary"`
	ConfidenceInterval MeanDifferenceInterval      `json:"confidence_interval"`
	ZStat              float64                     `json:"z_stat"`
	PValue             float64                     `json:"p_value"`
	Conclusion         string                      `json:"conclusion"`
}

const (
	twoSampleZRejected    = "Significant difference between the means."
	twoSampleZNotRejected = "No significant difference between the means."
)

// TwoSampleZTest compares the means of two independent samples. The z
// statistic uses the pooled sample variance; the confidence interval uses
// the unpooled standard error of the mean difference. The significance
// threshold for the conclusion is 1 - confidence.
func TwoSampleZTest(groupingVariable string, g1, g2 Group, alt Alternative, confidence float64) (*TwoSampleZResult, error) {
	if !(confidence > 0 && confidence < 1) {
		return nil, errors.ValidationError("Confidence level must be between 0 and 1.")
	}

	d1, err := g1.Describe()
	if err != nil {
		return nil, err
	}
	d2, err := g2.Describe()
	if err != nil {
		return nil, err
	}

	n1, n2 := float64(d1.Size), float64(d2.Size)
	pooledVar := ((n1-1)*d1.StdDev*d1.StdDev + (n2-1)*d2.StdDev*d2.StdDev) / (n1 + n2 - 2)
	pooledSE := math.Sqrt(pooledVar * (1/n1 + 1/n2))
	if pooledSE == 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	dist := NewDistributions()
	meanDiff := d1.Mean - d2.Mean
	z := meanDiff / pooledSE
	p := adjustPValue(dist.NormalCDF, z, alt)

	unpooledSE := math.Sqrt(d1.StdDev*d1.StdDev/n1 + d2.StdDev*d2.StdDev/n2)
	zCritical := dist.NormalQuantile(1 - (1-confidence)/2)
	margin := zCritical * unpooledSE

	conclusion := twoSampleZNotRejected
	if p < 1-confidence {
		conclusion = twoSampleZRejected
	}

	return &TwoSampleZResult{
		Hypothesis:       hypothesisStatement(alt),
		GroupingVariable: groupingVariable,
		Summary: map[string]GroupMeanSummary{
			g1.Name: {N: d1.Size, Mean: round3(d1.Mean)},
			g2.Name: {N: d2.Size, Mean: round3(d2.Mean)},
		},
		ConfidenceInterval: MeanDifferenceInterval{
			Level:          confidence,
			MeanDifference: round3(meanDiff),
			Lower:          round3(meanDiff - margin),
			Upper:          round3(meanDiff + margin),
		},
		ZStat:      round3(z),
		PValue:     round5(p),
		Conclusion: conclusion,
	}, nil
}

func hypothesisStatement(alt Alternative) string {
	op := "!="
	switch alt {
	case Greater:
		op = ">"
	case Less:
		op = "<"
	}
	return fmt.Sprintf("Ho: Mean1 = Mean2 vs H1: Mean1 %s Mean2", op)
}
