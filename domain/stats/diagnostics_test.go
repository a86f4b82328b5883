package stats

import (
	"testing"

	apperrors "hypotest/internal/errors"
)

func TestRunDiagnostics_AllMethods(t *testing.T) {
	g1 := Group{Name: "a", Sample: nearNormalSample}
	g2 := Group{Name: "b", Sample: skewedSample}

	cfg := DefaultConfiguration()
	cfg.NormalityTests = []NormalityMethod{ShapiroWilkMethod, LillieforsMethod}
	cfg.VarianceTests = []VarianceMethod{LeveneMethod, BrownForsytheMethod}

	diag, err := RunDiagnostics(g1, g2, cfg)
	if err != nil {
		t.Fatalf("RunDiagnostics failed: %v", err)
	}

	if len(diag.Normality) != 2 {
		t.Fatalf("Expected 2 normality results, got %d", len(diag.Normality))
	}
	// Results land in configuration order regardless of scheduling.
	if diag.Normality[0].Method != ShapiroWilkMethod || diag.Normality[1].Method != LillieforsMethod {
		t.Errorf("Results out of order: %+v", diag.Normality)
	}
	if len(diag.Variance) != 2 {
		t.Fatalf("Expected 2 variance results, got %d", len(diag.Variance))
	}
	if diag.Variance[0].Method != LeveneMethod || diag.Variance[1].Method != BrownForsytheMethod {
		t.Errorf("Results out of order: %+v", diag.Variance)
	}
}

func TestRunDiagnostics_MinimumPAcrossGroups(t *testing.T) {
	normal := Group{Name: "a", Sample: nearNormalSample}
	skewed := Group{Name: "b", Sample: skewedSample}

	cfg := DefaultConfiguration()
	cfg.VarianceTests = nil

	diag, err := RunDiagnostics(normal, skewed, cfg)
	if err != nil {
		t.Fatalf("RunDiagnostics failed: %v", err)
	}

	skewedAlone, err := ShapiroWilk(skewedSample)
	if err != nil {
		t.Fatalf("ShapiroWilk failed: %v", err)
	}

	// The weaker group drives the combined result.
	if diag.Normality[0].PValue != Round(skewedAlone.PValue, 3) {
		t.Errorf("Combined p should be the weaker group's: %f vs %f",
			diag.Normality[0].PValue, skewedAlone.PValue)
	}
	if diag.Normality[0].Passed {
		t.Error("One failing group should fail the combined diagnostic")
	}
}

func TestRunDiagnostics_NoChecksConfigured(t *testing.T) {
	// Summary-only groups are fine when nothing needs raw data.
	g1 := Group{Name: "a", Summary: &SummaryStatistic{Size: 10, Mean: 1, SD: 1}}
	g2 := Group{Name: "b", Summary: &SummaryStatistic{Size: 10, Mean: 2, SD: 1}}

	diag, err := RunDiagnostics(g1, g2, bareConfig())
	if err != nil {
		t.Fatalf("RunDiagnostics failed: %v", err)
	}
	if len(diag.Normality) != 0 || len(diag.Variance) != 0 {
		t.Errorf("Expected empty diagnostics, got %+v", diag)
	}
}

func TestRunDiagnostics_RequiresRawData(t *testing.T) {
	g1 := Group{Name: "a", Summary: &SummaryStatistic{Size: 10, Mean: 1, SD: 1}}
	g2 := Group{Name: "b", Sample: nearNormalSample}

	_, err := RunDiagnostics(g1, g2, DefaultConfiguration())
	if apperrors.GetCode(err) != apperrors.CodeValidationError {
		t.Errorf("Expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRunDiagnostics_PropagatesFailures(t *testing.T) {
	g1 := Group{Name: "a", Sample: Sample{5, 5, 5, 5, 5}}
	g2 := Group{Name: "b", Sample: nearNormalSample}

	cfg := DefaultConfiguration()
	cfg.VarianceTests = nil

	_, err := RunDiagnostics(g1, g2, cfg)
	if apperrors.GetCode(err) != apperrors.CodeDivisionByZero {
		t.Errorf("Expected DIVISION_BY_ZERO from the constant group, got %v", err)
	}
}
