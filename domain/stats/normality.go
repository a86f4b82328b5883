package stats

import (
	"math"
	"sort"

	"hypotest/internal/errors"
)

// Polynomial coefficients from Royston's AS R94 algorithm (1995), the same
// approximation scipy's shapiro uses. Indexed lowest order first.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

func polyEval(c []float64, x float64) float64 {
	sum := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		sum = sum*x + c[i]
	}
	return sum
}

// ShapiroWilk tests a sample for departure from normality. Requires at
// least three observations and non-zero spread.
func ShapiroWilk(sample Sample) (NormalityResult, error) {
	n := len(sample)
	if n < 3 {
		return NormalityResult{}, errors.InsufficientData("Shapiro-Wilk test requires at least three observations.")
	}

	dist := NewDistributions()
	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	ssq := 0.0
	for _, v := range x {
		ssq += (v - mean) * (v - mean)
	}
	if ssq == 0 {
		return NormalityResult{}, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	// Expected values of normal order statistics (Blom approximation).
	m := make([]float64, n)
	msum := 0.0
	for i := 0; i < n; i++ {
		m[i] = dist.NormalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		msum += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		rsn := 1.0 / math.Sqrt(float64(n))
		an := m[n-1]/math.Sqrt(msum) + polyEval(swC1, rsn)
		if n > 5 {
			an1 := m[n-2]/math.Sqrt(msum) + polyEval(swC2, rsn)
			phi := (msum - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
				(1 - 2*an*an - 2*an1*an1)
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
			a[n-1], a[n-2] = an, an1
			a[0], a[1] = -an, -an1
		} else {
			phi := (msum - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
			a[n-1] = an
			a[0] = -an
		}
	}

	num := 0.0
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
	}
	w := num * num / ssq
	if w > 1 {
		w = 1
	}

	p := shapiroPValue(w, n, dist)
	return NormalityResult{
		Method:    ShapiroWilkMethod,
		Statistic: w,
		PValue:    p,
		Passed:    p > normalityThreshold,
	}, nil
}

// shapiroPValue maps the W statistic to a significance level via Royston's
// normalizing transformations.
func shapiroPValue(w float64, n int, dist *Distributions) float64 {
	if w >= 1 {
		return 1
	}
	switch {
	case n == 3:
		p := (6 / math.Pi) * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	case n <= 11:
		fn := float64(n)
		gamma := polyEval(swG, fn)
		inner := gamma - math.Log(1-w)
		if inner <= 0 {
			return 0
		}
		w1 := -math.Log(inner)
		mu := polyEval(swC3, fn)
		sigma := math.Exp(polyEval(swC4, fn))
		return clamp01(dist.NormalSurvival((w1 - mu) / sigma))
	default:
		ln := math.Log(float64(n))
		w1 := math.Log(1 - w)
		mu := polyEval(swC5, ln)
		sigma := math.Exp(polyEval(swC6, ln))
		return clamp01(dist.NormalSurvival((w1 - mu) / sigma))
	}
}

// Lilliefors runs the Kolmogorov-Smirnov goodness-of-fit test against a
// normal distribution with estimated mean and standard deviation. The
// significance level uses the Dallal-Wilkinson (1986) approximation.
func Lilliefors(sample Sample) (NormalityResult, error) {
	n := len(sample)
	if n < 5 {
		return NormalityResult{}, errors.InsufficientData("Lilliefors test requires at least five observations.")
	}

	desc, err := Describe(sample)
	if err != nil {
		return NormalityResult{}, err
	}
	if desc.StdDev == 0 {
		return NormalityResult{}, errors.DivisionByZero("Division by zero encountered during calculation.")
	}

	dist := NewDistributions()
	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)

	d := 0.0
	for i, v := range x {
		cdf := dist.NormalCDF((v - desc.Mean) / desc.StdDev)
		upper := float64(i+1)/float64(n) - cdf
		lower := cdf - float64(i)/float64(n)
		if upper > d {
			d = upper
		}
		if lower > d {
			d = lower
		}
	}

	p := lillieforsPValue(d, n)
	return NormalityResult{
		Method:    LillieforsMethod,
		Statistic: d,
		PValue:    p,
		Passed:    p > normalityThreshold,
	}, nil
}

func lillieforsPValue(d float64, n int) float64 {
	fn := float64(n)
	dStat, nEff := d, fn
	if n > 100 {
		dStat = d * math.Pow(fn/100, 0.49)
		nEff = 100
	}

	p := math.Exp(-7.01256*dStat*dStat*(nEff+2.78019) +
		2.99587*dStat*math.Sqrt(nEff+2.78019) -
		0.122119 + 0.974598/math.Sqrt(nEff) + 1.67997/nEff)
	if p <= 0.1 {
		return clamp01(p)
	}

	// Dallal-Wilkinson is only accurate in the far tail; elsewhere use the
	// Stephens modified-statistic polynomial (as R's nortest does).
	kk := (math.Sqrt(fn) - 0.01 + 0.85/math.Sqrt(fn)) * d
	switch {
	case kk <= 0.302:
		return 1
	case kk <= 0.5:
		return clamp01(2.76773 - 19.828315*kk + 80.709644*kk*kk -
			138.55152*kk*kk*kk + 81.218052*kk*kk*kk*kk)
	case kk <= 0.9:
		return clamp01(-4.901232 + 40.662806*kk - 97.490286*kk*kk +
			94.029866*kk*kk*kk - 32.355711*kk*kk*kk*kk)
	case kk <= 1.31:
		return clamp01(6.198765 - 19.558097*kk + 23.186922*kk*kk -
			12.234627*kk*kk*kk + 2.423045*kk*kk*kk*kk)
	default:
		return 0
	}
}

// normalityThreshold is the fixed pass/fail cut for the normality
// diagnostics, independent of the caller's alpha.
const normalityThreshold = 0.05

// RunNormalityTest dispatches to the selected method.
func RunNormalityTest(method NormalityMethod, sample Sample) (NormalityResult, error) {
	switch method {
	case ShapiroWilkMethod:
		return ShapiroWilk(sample)
	case LillieforsMethod:
		return Lilliefors(sample)
	default:
		return NormalityResult{}, errors.ValidationErrorf("unknown normality test: %s", method)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
