package stats

import (
	"golang.org/x/sync/errgroup"

	"hypotest/internal/errors"
)

// Diagnostics bundles the optional pre-test checks for a two-group
// comparison.
type Diagnostics struct {
	Normality []NormalityResult
	Variance  []VarianceResult
}

// RunDiagnostics evaluates the configured normality and equal-variance
// checks for two groups. Each selected check runs concurrently; results
// land in stable, configuration order. A normality method reports the
// minimum p across the two groups, so the diagnostic fails if either group
// fails.
func RunDiagnostics(g1, g2 Group, cfg TestConfiguration) (*Diagnostics, error) {
	diag := &Diagnostics{}
	if len(cfg.NormalityTests) == 0 && len(cfg.VarianceTests) == 0 {
		return diag, nil
	}
	if !g1.HasRaw() || !g2.HasRaw() {
		return nil, errors.ValidationError("Normality and variance tests require raw sample data.")
	}

	diag.Normality = make([]NormalityResult, len(cfg.NormalityTests))
	diag.Variance = make([]VarianceResult, len(cfg.VarianceTests))

	var eg errgroup.Group
	for i, method := range cfg.NormalityTests {
		eg.Go(func() error {
			res, err := combinedNormality(method, g1.Sample, g2.Sample)
			if err != nil {
				return err
			}
			diag.Normality[i] = res
			return nil
		})
	}
	for i, method := range cfg.VarianceTests {
		eg.Go(func() error {
			res, err := RunVarianceTest(method, g1.Sample, g2.Sample, cfg.Alpha)
			if err != nil {
				return err
			}
			res.Statistic = round3(res.Statistic)
			res.PValue = round3(res.PValue)
			diag.Variance[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return diag, nil
}

func combinedNormality(method NormalityMethod, g1, g2 Sample) (NormalityResult, error) {
	r1, err := RunNormalityTest(method, g1)
	if err != nil {
		return NormalityResult{}, err
	}
	r2, err := RunNormalityTest(method, g2)
	if err != nil {
		return NormalityResult{}, err
	}

	// Conservative combination: keep the weaker group's result.
	combined := r1
	if r2.PValue < r1.PValue {
		combined = r2
	}
	combined.Statistic = round3(combined.Statistic)
	combined.PValue = round3(combined.PValue)
	return combined, nil
}
