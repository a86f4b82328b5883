package stats

import (
	"strings"

	"hypotest/internal/errors"
)

// Sample is an ordered sequence of observed values.
type Sample []float64

// SummaryStatistic describes a group by its size, mean and sample standard
// deviation. It stands in for raw observations when only aggregates are known.
type SummaryStatistic struct {
	Size int     `json:"size"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"std_dev"`
}

// ProportionGroup describes one arm of a two-proportion comparison.
type ProportionGroup struct {
	Size       int     `json:"size"`
	Proportion float64 `json:"proportion"`
}

// Group is the normalized input shape every engine accepts: exactly one of
// a raw sample or a summary statistic. The transport layer resolves the
// heterogeneous JSON shapes into this before any computation runs.
type Group struct {
	Name    string
	Sample  Sample
	Summary *SummaryStatistic
}

// HasRaw reports whether raw observations are available. Diagnostics that
// operate on individual values require them.
func (g Group) HasRaw() bool {
	return len(g.Sample) > 0
}

// Alternative selects the alternative hypothesis.
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Greater  Alternative = "greater"
	Less     Alternative = "less"
)

// ParseAlternative normalizes the accepted alternative-hypothesis tokens.
// The statsmodels spellings "larger" and "smaller" are accepted as aliases.
func ParseAlternative(s string) (Alternative, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "two-sided":
		return TwoSided, nil
	case "greater", "larger":
		return Greater, nil
	case "less", "smaller":
		return Less, nil
	default:
		return "", errors.ValidationErrorf(
			"invalid alternative hypothesis: %s. Expected 'greater', 'less', or 'two-sided'", s)
	}
}

// NormalityMethod identifies a goodness-of-fit test for normality.
type NormalityMethod string

const (
	ShapiroWilkMethod NormalityMethod = "shapiro-wilk"
	LillieforsMethod  NormalityMethod = "lilliefors"
)

// VarianceMethod identifies an equal-variance test variant.
type VarianceMethod string

const (
	LeveneMethod        VarianceMethod = "levene"
	BrownForsytheMethod VarianceMethod = "brown-forsythe"
)

// TestConfiguration carries the knobs shared across test families.
type TestConfiguration struct {
	Alternative     Alternative
	ConfidenceLevel float64
	Alpha           float64
	NormalityTests  []NormalityMethod
	VarianceTests   []VarianceMethod
	Pooled          bool
	Welch           bool
	IncludePower    bool
}

// DefaultConfiguration returns the documented defaults: two-sided, 95%
// confidence, alpha 0.05, Shapiro-Wilk enabled, both t-test variants.
func DefaultConfiguration() TestConfiguration {
	return TestConfiguration{
		Alternative:     TwoSided,
		ConfidenceLevel: 0.95,
		Alpha:           0.05,
		NormalityTests:  []NormalityMethod{ShapiroWilkMethod},
		VarianceTests:   []VarianceMethod{LeveneMethod},
		Pooled:          true,
		Welch:           true,
	}
}

// Validate checks the ranges shared by every family.
func (c TestConfiguration) Validate() error {
	if !(c.ConfidenceLevel > 0 && c.ConfidenceLevel < 1) {
		return errors.ValidationError("Confidence level must be between 0 and 1.")
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return errors.ValidationError("Alpha_value must be between 0 and 1.")
	}
	switch c.Alternative {
	case TwoSided, Greater, Less:
	default:
		return errors.ValidationErrorf(
			"invalid alternative hypothesis: %s. Expected 'greater', 'less', or 'two-sided'", c.Alternative)
	}
	return nil
}

// DescriptiveStats summarizes a single group.
type DescriptiveStats struct {
	Size   int     `json:"size"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	StdErr float64 `json:"std_err"`
}

// ConfidenceInterval is a two-sided interval at the given level.
type ConfidenceInterval struct {
	Level float64 `json:"confidence_level"`
	Lower float64 `json:"lower_bound"`
	Upper float64 `json:"upper_bound"`
}

// NormalityResult is the outcome of one normality diagnostic. For two-group
// tests the p-value is the minimum across groups: the diagnostic fails if
// either group fails.
type NormalityResult struct {
	Method    NormalityMethod `json:"method"`
	Statistic float64         `json:"statistic"`
	PValue    float64         `json:"p_value"`
	Passed    bool            `json:"passed"`
}

// VarianceResult is the outcome of one equal-variance diagnostic.
type VarianceResult struct {
	Method        VarianceMethod `json:"method"`
	Statistic     float64        `json:"statistic"`
	PValue        float64        `json:"p_value"`
	EqualVariance bool           `json:"equal_variance"`
}

// PowerResult reports post-hoc power under both tail framings.
type PowerResult struct {
	EffectSize float64 `json:"effect_size"`
	OneTailed  float64 `json:"one_tailed"`
	TwoTailed  float64 `json:"two_tailed"`
}
