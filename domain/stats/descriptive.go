package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"hypotest/internal/errors"
)

// Describe computes size, mean, Bessel-corrected standard deviation and
// standard error for a raw sample. At least two points are required because
// the sample standard deviation divides by n-1.
func Describe(sample Sample) (DescriptiveStats, error) {
	if len(sample) < 2 {
		return DescriptiveStats{}, errors.InsufficientData("Sample data must contain at least two data points.")
	}

	mean, err := mstats.Mean(mstats.Float64Data(sample))
	if err != nil {
		return DescriptiveStats{}, errors.Wrap(err, "failed to compute mean")
	}
	sd, err := mstats.StandardDeviationSample(mstats.Float64Data(sample))
	if err != nil {
		return DescriptiveStats{}, errors.Wrap(err, "failed to compute standard deviation")
	}

	return DescriptiveStats{
		Size:   len(sample),
		Mean:   mean,
		StdDev: sd,
		StdErr: sd / math.Sqrt(float64(len(sample))),
	}, nil
}

// DescribeSummary derives the descriptive record from pre-computed summary
// input. Exactly one of sd and se must be positive; they are mutually
// derivable through sd = se * sqrt(n).
func DescribeSummary(size int, mean, sd, se float64) (DescriptiveStats, error) {
	if size < 2 {
		return DescriptiveStats{}, errors.InsufficientData("Summary size must be at least two.")
	}
	switch {
	case sd > 0 && se > 0:
		return DescriptiveStats{}, errors.ValidationError("Provide either std_dev or std_err, not both.")
	case sd > 0:
		se = sd / math.Sqrt(float64(size))
	case se > 0:
		sd = se * math.Sqrt(float64(size))
	default:
		return DescriptiveStats{}, errors.ValidationError("Summary input requires a positive std_dev or std_err.")
	}
	return DescriptiveStats{Size: size, Mean: mean, StdDev: sd, StdErr: se}, nil
}

// Describe resolves a normalized group to its descriptive statistics. A
// summary always wins over a raw sample: when diagnostics attach a
// synthetic sample to a summary-only group, the exact summarized moments
// still drive the test itself.
func (g Group) Describe() (DescriptiveStats, error) {
	if g.Summary != nil {
		return DescribeSummary(g.Summary.Size, g.Summary.Mean, g.Summary.SD, 0)
	}
	if g.HasRaw() {
		return Describe(g.Sample)
	}
	return DescriptiveStats{}, errors.ValidationError("Group carries neither raw sample nor summary statistics.")
}
