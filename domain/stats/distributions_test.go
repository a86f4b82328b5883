package stats

import (
	"math"
	"testing"
)

func TestDistributions_StudentT(t *testing.T) {
	dist := NewDistributions()

	if got := dist.TCDF(0, 10); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("TCDF(0, 10) = %f, want 0.5", got)
	}

	// Symmetry: CDF(-t) + CDF(t) = 1.
	left, right := dist.TCDF(-1.5, 7), dist.TCDF(1.5, 7)
	if math.Abs(left+right-1) > 1e-9 {
		t.Errorf("t CDF not symmetric: %f + %f != 1", left, right)
	}

	// Two-tailed p at t=0 is 1, and it shrinks as |t| grows.
	if got := dist.TTestPValue(0, 10); math.Abs(got-1) > 1e-12 {
		t.Errorf("TTestPValue(0, 10) = %f, want 1", got)
	}
	p1, p2 := dist.TTestPValue(1, 10), dist.TTestPValue(3, 10)
	if p2 >= p1 {
		t.Errorf("p-value should shrink with |t|: p(1)=%f p(3)=%f", p1, p2)
	}

	// Quantile inverts the CDF.
	q := dist.TQuantile(0.975, 20)
	if math.Abs(dist.TCDF(q, 20)-0.975) > 1e-9 {
		t.Errorf("TQuantile/TCDF round trip failed at df=20: q=%f", q)
	}
	if math.IsNaN(dist.TCDF(1, 0)) == false {
		t.Error("TCDF with df=0 should be NaN")
	}
}

func TestDistributions_Normal(t *testing.T) {
	dist := NewDistributions()

	if got := dist.NormalCDF(0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("NormalCDF(0) = %f, want 0.5", got)
	}
	if got := dist.NormalQuantile(0.975); math.Abs(got-1.959963984540054) > 1e-9 {
		t.Errorf("NormalQuantile(0.975) = %f, want 1.96", got)
	}
	for _, x := range []float64{-2.5, -0.3, 0, 1.1, 4} {
		if got := dist.NormalCDF(x) + dist.NormalSurvival(x); math.Abs(got-1) > 1e-12 {
			t.Errorf("CDF + survival != 1 at x=%f: %f", x, got)
		}
	}
}

func TestDistributions_FSurvival(t *testing.T) {
	dist := NewDistributions()

	if got := dist.FSurvival(0, 1, 18); math.Abs(got-1) > 1e-12 {
		t.Errorf("FSurvival(0) = %f, want 1", got)
	}
	// F(1, 18) upper tail at 4.414 is close to 0.05 (the 95th percentile).
	p := dist.FSurvival(4.414, 1, 18)
	if math.Abs(p-0.05) > 0.002 {
		t.Errorf("FSurvival(4.414, 1, 18) = %f, want ~0.05", p)
	}
	if got := dist.FSurvival(3, 0, 18); got != 1 {
		t.Errorf("FSurvival with zero df should be 1, got %f", got)
	}
}

func TestAdjustPValue_Tails(t *testing.T) {
	dist := NewDistributions()
	cdf := dist.NormalCDF

	z := 1.7
	twoSided := adjustPValue(cdf, z, TwoSided)
	greater := adjustPValue(cdf, z, Greater)
	less := adjustPValue(cdf, z, Less)

	if math.Abs(greater+less-1) > 1e-12 {
		t.Errorf("Opposite tails should sum to 1: %f + %f", greater, less)
	}
	if math.Abs(twoSided-2*greater) > 1e-12 {
		t.Errorf("Two-sided should double the matching tail for z>0: %f vs %f", twoSided, 2*greater)
	}

	// For a negative statistic the "less" tail is the small one.
	if adjustPValue(cdf, -z, Less) >= adjustPValue(cdf, -z, Greater) {
		t.Error("Less tail should be small for a negative statistic")
	}
	if got := adjustPValue(cdf, -z, TwoSided); math.Abs(got-twoSided) > 1e-12 {
		t.Errorf("Two-sided p should be symmetric in the statistic: %f vs %f", got, twoSided)
	}
}
