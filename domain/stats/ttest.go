package stats

import (
	"fmt"
	"math"

	"hypotest/internal/errors"
)

// OneSampleStatistics is the statistics block of the one-sample t report.
// Every float in this family is rounded to 3 decimals, p-values included.
type OneSampleStatistics struct {
	SampleSize         int                `json:"sample_size"`
	SampleMean         float64            `json:"sample_mean"`
	SampleStdDev       float64            `json:"sample_std_dev"`
	StandardError      float64            `json:"standard_error_of_mean"`
	DegreesOfFreedom   int                `json:"degrees_of_freedom"`
	PopulationMean     float64            `json:"hypothesized_population_mean"`
	TStatistic         float64            `json:"t_statistic"`
	TwoTailedPValue    float64            `json:"two_tailed_p_value"`
	OneTailedPValue    float64            `json:"one_tailed_p_value"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// OneSampleTTestResult is the assembled one-sample t-test report.
type OneSampleTTestResult struct {
	TestType         string              `json:"test_type"`
	NormalityTests   []NormalityResult   `json:"normality_tests,omitempty"`
	SampleStatistics OneSampleStatistics `json:"sample_statistics"`
	Power            *PowerResult        `json:"power,omitempty"`
	Conclusion       string              `json:"conclusion"`
}

const nullRejected = "The null hypothesis is rejected, indicating a significant difference."

// OneSampleTTest compares a sample mean against a hypothesized population
// mean. The primary p-value follows the configured alternative hypothesis;
// ties against alpha resolve to not rejected.
func OneSampleTTest(g Group, populationMean float64, cfg TestConfiguration) (*OneSampleTTestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	desc, err := g.Describe()
	if err != nil {
		return nil, err
	}
	if desc.StdErr == 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	dist := NewDistributions()
	df := float64(desc.Size - 1)
	t := (desc.Mean - populationMean) / desc.StdErr
	p := adjustPValue(func(x float64) float64 { return dist.TCDF(x, df) }, t, cfg.Alternative)

	normality, err := runGroupNormality(cfg.NormalityTests, g)
	if err != nil {
		return nil, err
	}

	tCritical := dist.TQuantile(1-(1-cfg.ConfidenceLevel)/2, df)
	margin := tCritical * desc.StdErr

	var power *PowerResult
	if cfg.IncludePower {
		pw, err := OneSampleTTestPower((desc.Mean-populationMean)/desc.StdDev, desc.Size, cfg.Alpha)
		if err != nil {
			return nil, err
		}
		power = &pw
	}

	conclusion := fmt.Sprintf("The null hypothesis is not rejected (p-value: %.3f).", p)
	if p < cfg.Alpha {
		conclusion = nullRejected
	}

	return &OneSampleTTestResult{
		TestType:       "One-Sample t-test",
		NormalityTests: normality,
		SampleStatistics: OneSampleStatistics{
			SampleSize:       desc.Size,
			SampleMean:       round3(desc.Mean),
			SampleStdDev:     round3(desc.StdDev),
			StandardError:    round3(desc.StdErr),
			DegreesOfFreedom: desc.Size - 1,
			PopulationMean:   populationMean,
			TStatistic:       round3(t),
			TwoTailedPValue:  round3(p),
			OneTailedPValue:  round3(p / 2),
			ConfidenceInterval: ConfidenceInterval{
				Level: cfg.ConfidenceLevel,
				Lower: round3(desc.Mean - margin),
				Upper: round3(desc.Mean + margin),
			},
		},
		Power:      power,
		Conclusion: conclusion,
	}, nil
}

// VariantResult is one of the two-sample t-test's variants. The p-values in
// this family keep 5 decimals.
type VariantResult struct {
	T                  float64            `json:"t"`
	DF                 float64            `json:"df"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	TwoTailedPValue    float64            `json:"two_tailed_p_value"`
	OneTailedPValue    float64            `json:"one_tailed_p_value"`
}

// GroupStatistics is one row of the per-group statistics table.
type GroupStatistics struct {
	Group  string  `json:"group"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	SEM    float64 `json:"sem"`
}

// TwoSampleTTestResult is the assembled two-sample t-test report, carrying
// the pooled (Student's) and unpooled (Welch's) variants side by side.
type TwoSampleTTestResult struct {
	TestType          string            `json:"test_type"`
	NormalityTests    []NormalityResult `json:"normality_tests,omitempty"`
	VarianceTests     []VarianceResult  `json:"equal_variance_tests,omitempty"`
	SampleStatistics  []GroupStatistics `json:"sample_statistics"`
	DifferenceOfMeans float64           `json:"difference_of_means"`
	Pooled            *VariantResult    `json:"equal_variances_assumed,omitempty"`
	Welch             *VariantResult    `json:"equal_variances_not_assumed,omitempty"`
	Power             *PowerResult      `json:"power,omitempty"`
	Conclusion        string            `json:"conclusion"`
}

// TwoSampleTTest compares the means of two independent groups, computing
// whichever of the pooled and Welch variants the configuration requests.
// Both variants are two-tailed by construction; the one-tailed values are
// the two-tailed values halved. The single confidence interval always uses
// the Welch degrees of freedom, matching the long-standing behavior of the
// report this reproduces.
func TwoSampleTTest(g1, g2 Group, cfg TestConfiguration) (*TwoSampleTTestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Pooled && !cfg.Welch {
		return nil, errors.ValidationError("At least one of the pooled and Welch variants must be enabled.")
	}

	d1, err := g1.Describe()
	if err != nil {
		return nil, err
	}
	d2, err := g2.Describe()
	if err != nil {
		return nil, err
	}

	diagnostics, err := RunDiagnostics(g1, g2, cfg)
	if err != nil {
		return nil, err
	}

	dist := NewDistributions()
	n1, n2 := float64(d1.Size), float64(d2.Size)
	v1, v2 := d1.StdDev*d1.StdDev, d2.StdDev*d2.StdDev
	meanDiff := d1.Mean - d2.Mean

	unpooledSE := math.Sqrt(v1/n1 + v2/n2)
	if unpooledSE == 0 {
		return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
	}
	welchDF := (v1/n1 + v2/n2) * (v1/n1 + v2/n2) /
		((v1/n1)*(v1/n1)/(n1-1) + (v2/n2)*(v2/n2)/(n2-1))

	// The interval is computed once from the Welch df, even when only the
	// pooled variant is displayed.
	tCritical := dist.TQuantile(1-(1-cfg.ConfidenceLevel)/2, welchDF)
	interval := ConfidenceInterval{
		Level: cfg.ConfidenceLevel,
		Lower: round3(meanDiff - tCritical*unpooledSE),
		Upper: round3(meanDiff + tCritical*unpooledSE),
	}

	var pooled, welch *VariantResult
	var primaryP float64

	if cfg.Welch {
		tWelch := meanDiff / unpooledSE
		pWelch := dist.TTestPValue(tWelch, welchDF)
		welch = &VariantResult{
			T:                  round3(tWelch),
			DF:                 round3(welchDF),
			ConfidenceInterval: interval,
			TwoTailedPValue:    round5(pWelch),
			OneTailedPValue:    round5(pWelch / 2),
		}
		primaryP = pWelch
	}
	if cfg.Pooled {
		pooledVar := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
		pooledSE := math.Sqrt(pooledVar * (1/n1 + 1/n2))
		if pooledSE == 0 {
			return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
		}
		tPooled := meanDiff / pooledSE
		pPooled := dist.TTestPValue(tPooled, n1+n2-2)
		pooled = &VariantResult{
			T:                  round3(tPooled),
			DF:                 n1 + n2 - 2,
			ConfidenceInterval: interval,
			TwoTailedPValue:    round5(pPooled),
			OneTailedPValue:    round5(pPooled / 2),
		}
		if !cfg.Welch {
			primaryP = pPooled
		}
	}

	var power *PowerResult
	if cfg.IncludePower {
		pooledSD := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
		if pooledSD == 0 {
			return nil, errors.DivisionByZero("Division by zero encountered during calculation.")
		}
		pw, err := TwoSampleTTestPower(meanDiff/pooledSD, d1.Size, d2.Size, cfg.Alpha)
		if err != nil {
			return nil, err
		}
		power = &pw
	}

	conclusion := fmt.Sprintf("The null hypothesis is not rejected (p-value: %.3f).", primaryP)
	if primaryP < cfg.Alpha {
		conclusion = nullRejected
	}

	return &TwoSampleTTestResult{
		TestType:       "Two-Sample t-test",
		NormalityTests: diagnostics.Normality,
		VarianceTests:  diagnostics.Variance,
		SampleStatistics: []GroupStatistics{
			{Group: g1.Name, N: d1.Size, Mean: round3(d1.Mean), StdDev: round3(d1.StdDev), SEM: round3(d1.StdErr)},
			{Group: g2.Name, N: d2.Size, Mean: round3(d2.Mean), StdDev: round3(d2.StdDev), SEM: round3(d2.StdErr)},
		},
		DifferenceOfMeans: round3(meanDiff),
		Pooled:            pooled,
		Welch:             welch,
		Power:             power,
		Conclusion:        conclusion,
	}, nil
}

func runGroupNormality(methods []NormalityMethod, g Group) ([]NormalityResult, error) {
	if len(methods) == 0 {
		return nil, nil
	}
	if !g.HasRaw() {
		return nil, errors.ValidationError("Normality tests require raw sample data.")
	}
	results := make([]NormalityResult, 0, len(methods))
	for _, method := range methods {
		res, err := RunNormalityTest(method, g.Sample)
		if err != nil {
			return nil, err
		}
		res.Statistic = round3(res.Statistic)
		res.PValue = round3(res.PValue)
		results = append(results, res)
	}
	return results, nil
}
