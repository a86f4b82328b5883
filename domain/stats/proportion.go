package stats

import (
	"math"

	"hypotest/internal/errors"
)

// ProportionTestResult is the assembled two-proportion Z-test report.
// Statistics are rounded to 3 decimals; the p-value keeps 8.
type ProportionTestResult struct {
	Difference         float64            `json:"difference_of_sample_proportions"`
	PooledEstimate     float64            `json:"pooled_estimate_for_p"`
	StandardError      float64            `json:"standard_error_of_difference"`
	ZScore             float64            `json:"z_score"`
	PValue             float64            `json:"p_value"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PowerOfTest        float64            `json:"power_of_test"`
	Conclusion         string             `json:"conclusion"`
}

const (
	proportionRejected    = "There is a significant difference in the proportions."
	proportionNotRejected = "No significant difference in the proportions."
)

// TwoProportionZTest compares two sample proportions. confidencePct is a
// percentage in [1, 99]; alpha is the significance threshold for the
// conclusion.
func TwoProportionZTest(g1, g2 ProportionGroup, alpha, confidencePct float64) (*ProportionTestResult, error) {
	if alpha < 0 || alpha > 1 {
		return nil, errors.ValidationError("Alpha_value must be between 0 and 1.")
	}
	if confidencePct < 1 || confidencePct > 99 {
		return nil, errors.ValidationError("Confidence_interval must be between 1 and 99.")
	}
	if g1.Proportion < 0 || g1.Proportion > 1 || g2.Proportion < 0 || g2.Proportion > 1 {
		return nil, errors.ValidationError("Proportions must be between 0 and 1.")
	}
	if g1.Size <= 0 || g2.Size <= 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	n1, n2 := float64(g1.Size), float64(g2.Size)
	pooled := (n1*g1.Proportion + n2*g2.Proportion) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	if se == 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	dist := NewDistributions()
	diff := g1.Proportion - g2.Proportion
	z := diff / se
	p := 2 * dist.NormalSurvival(math.Abs(z))

	confidence := confidencePct / 100
	zCritical := dist.NormalQuantile(1 - (1-confidence)/2)
	margin := zCritical * se

	conclusion := proportionNotRejected
	if p < alpha {
		conclusion = proportionRejected
	}

	return &ProportionTestResult{
		Difference:     round3(diff),
		PooledEstimate: round3(pooled),
		StandardError:  round3(se),
		ZScore:         round3(z),
		PValue:         round8(p),
		ConfidenceInterval: ConfidenceInterval{
			Level: confidence,
			Lower: round3(diff - margin),
			Upper: round3(diff + margin),
		},
		PowerOfTest: round3(ProportionTestPower(z, zCritical)),
		Conclusion:  conclusion,
	}, nil
}
