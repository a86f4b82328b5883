package stats

import (
	"fmt"

	"hypotest/internal/errors"
)

// PairedGroupStats is one side of the before/after statistics table.
type PairedGroupStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// DifferenceStats summarizes the per-pair differences.
type DifferenceStats struct {
	MeanDifference float64 `json:"mean_difference"`
	StdDev         float64 `json:"std_dev"`
	SEM            float64 `json:"sem"`
}

// PairedStatistics is the statistics block of the paired t report.
type PairedStatistics struct {
	Before     PairedGroupStats `json:"before_treatment"`
	After      PairedGroupStats `json:"after_treatment"`
	Difference DifferenceStats  `json:"difference"`
}

// PairedTestValues carries the core test output. p-values keep 5 decimals.
type PairedTestValues struct {
	TStatistic         float64            `json:"t_statistic"`
	DegreesOfFreedom   int                `json:"degrees_of_freedom"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	TwoTailedPValue    float64            `json:"two_tailed_p_value"`
	OneTailedPValue    float64            `json:"one_tailed_p_value"`
}

// PairedTTestResult is the assembled paired t-test report.
type PairedTTestResult struct {
	TestType         string            `json:"test_type"`
	NormalityTests   []NormalityResult `json:"normality_tests,omitempty"`
	SampleStatistics PairedStatistics  `json:"sample_statistics"`
	TestResults      PairedTestValues  `json:"t_test_results"`
	Power            *PowerResult      `json:"power,omitempty"`
	Conclusion       string            `json:"conclusion"`
}

// PairedTTest compares paired before/after measurements. Differences are
// after - before throughout: a positive t statistic means values rose after
// treatment. Normality diagnostics run on the differences. The two-tailed
// p-value drives the conclusion; the one-tailed value is the two-tailed
// value halved.
func PairedTTest(before, after Sample, cfg TestConfiguration) (*PairedTTestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(before) != len(after) {
		return nil, errors.ValidationError("The two lists must have the same length.")
	}
	if len(before) < 2 {
		return nil, errors.InsufficientData("Sample data must contain at least two data points.")
	}

	diffs := make(Sample, len(before))
	for i := range before {
		diffs[i] = after[i] - before[i]
	}

	descBefore, err := Describe(before)
	if err != nil {
		return nil, err
	}
	descAfter, err := Describe(after)
	if err != nil {
		return nil, err
	}
	descDiff, err := Describe(diffs)
	if err != nil {
		return nil, err
	}
	if descDiff.StdErr == 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	normality, err := runGroupNormality(cfg.NormalityTests, Group{Sample: diffs})
	if err != nil {
		return nil, err
	}

	dist := NewDistributions()
	df := float64(len(before) - 1)
	t := descDiff.Mean / descDiff.StdErr
	p := dist.TTestPValue(t, df)

	tCritical := dist.TQuantile(1-(1-cfg.ConfidenceLevel)/2, df)
	margin := tCritical * descDiff.StdErr

	var power *PowerResult
	if cfg.IncludePower {
		pw, err := OneSampleTTestPower(descDiff.Mean/descDiff.StdDev, len(before), cfg.Alpha)
		if err != nil {
			return nil, err
		}
		power = &pw
	}

	conclusion := fmt.Sprintf("The null hypothesis is not rejected (p-value: %.3f).", p)
	if p < cfg.Alpha {
		conclusion = nullRejected
	}

	return &PairedTTestResult{
		TestType:       "Paired t-test",
		NormalityTests: normality,
		SampleStatistics: PairedStatistics{
			Before: PairedGroupStats{N: descBefore.Size, Mean: round3(descBefore.Mean), StdDev: round3(descBefore.StdDev)},
			After:  PairedGroupStats{N: descAfter.Size, Mean: round3(descAfter.Mean), StdDev: round3(descAfter.StdDev)},
			Difference: DifferenceStats{
				MeanDifference: round3(descDiff.Mean),
				StdDev:         round3(descDiff.StdDev),
				SEM:            round3(descDiff.StdErr),
			},
		},
		TestResults: PairedTestValues{
			TStatistic:       round3(t),
			DegreesOfFreedom: len(before) - 1,
			ConfidenceInterval: ConfidenceInterval{
				Level: cfg.ConfidenceLevel,
				Lower: round3(descDiff.Mean - margin),
				Upper: round3(descDiff.Mean + margin),
			},
			TwoTailedPValue: round5(p),
			OneTailedPValue: round5(p / 2),
		},
		Power:      power,
		Conclusion: conclusion,
	}, nil
}

