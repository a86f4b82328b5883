package stats

import (
	"math"
	"testing"
)

func TestOneSampleTTestPower_ZeroEffect(t *testing.T) {
	// With no effect, two-sided power degenerates to the false-positive
	// rate alpha.
	res, err := OneSampleTTestPower(0, 30, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	if math.Abs(res.TwoTailed-0.05) > 0.001 {
		t.Errorf("Zero-effect two-tailed power should equal alpha, got %f", res.TwoTailed)
	}
	if math.Abs(res.OneTailed-0.05) > 0.001 {
		t.Errorf("Zero-effect one-tailed power should equal alpha, got %f", res.OneTailed)
	}
	if res.EffectSize != 0 {
		t.Errorf("Expected effect size 0, got %f", res.EffectSize)
	}
}

func TestOneSampleTTestPower_GrowsWithSampleSize(t *testing.T) {
	small, err := OneSampleTTestPower(0.5, 10, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	large, err := OneSampleTTestPower(0.5, 100, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	if large.TwoTailed <= small.TwoTailed {
		t.Errorf("Power should grow with n: %f vs %f", small.TwoTailed, large.TwoTailed)
	}
	if large.TwoTailed < 0.99 {
		t.Errorf("d=0.5 at n=100 should have near-certain power, got %f", large.TwoTailed)
	}
}

func TestOneSampleTTestPower_SignInvariant(t *testing.T) {
	pos, err := OneSampleTTestPower(0.8, 20, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	neg, err := OneSampleTTestPower(-0.8, 20, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	if pos.TwoTailed != neg.TwoTailed || pos.OneTailed != neg.OneTailed {
		t.Error("Power should depend on |d| only")
	}
	if neg.EffectSize != -0.8 {
		t.Errorf("Reported effect size should keep its sign, got %f", neg.EffectSize)
	}
}

func TestTwoSampleTTestPower_BalancedVsUnbalanced(t *testing.T) {
	balanced, err := TwoSampleTTestPower(0.6, 30, 30, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	unbalanced, err := TwoSampleTTestPower(0.6, 10, 50, 0.05)
	if err != nil {
		t.Fatalf("Power failed: %v", err)
	}
	// Same total n, but the balanced design has the larger effective size.
	if balanced.TwoTailed <= unbalanced.TwoTailed {
		t.Errorf("Balanced design should win: %f vs %f", balanced.TwoTailed, unbalanced.TwoTailed)
	}
}

func TestProportionTestPower(t *testing.T) {
	// At the critical value exactly, power is one half.
	if got := ProportionTestPower(1.96, 1.96); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Power at z=z_crit should be 0.5, got %f", got)
	}
	if got := ProportionTestPower(5, 1.96); got < 0.99 {
		t.Errorf("Power for |z|=5 should be near 1, got %f", got)
	}
	// Sign of z does not matter.
	if ProportionTestPower(-3, 1.96) != ProportionTestPower(3, 1.96) {
		t.Error("Power should depend on |z| only")
	}
}

func TestPower_InvalidInput(t *testing.T) {
	if _, err := OneSampleTTestPower(math.NaN(), 10, 0.05); err == nil {
		t.Error("Expected error for NaN effect size")
	}
	if _, err := OneSampleTTestPower(0.5, 0, 0.05); err == nil {
		t.Error("Expected error for zero sample size")
	}
	if _, err := OneSampleTTestPower(0.5, 10, 0); err == nil {
		t.Error("Expected error for alpha outside (0, 1)")
	}
	if _, err := TwoSampleTTestPower(0.5, 10, 0, 0.05); err == nil {
		t.Error("Expected error for zero second group size")
	}
}
