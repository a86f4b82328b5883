package api

import (
	"strings"

	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// ConfigPayload holds the JSON configuration fields shared by the test
// families. Absent fields fall back to the documented defaults: two-sided,
// confidence 0.95, alpha 0.05, Shapiro-Wilk enabled.
type ConfigPayload struct {
	Alternative     string    `json:"alternative"`
	ConfidenceLevel *float64  `json:"confidence_level"`
	AlphaValue      *float64  `json:"alpha_value"`
	NormalityTests  *[]string `json:"normality_tests"`
	VarianceTests   *[]string `json:"variance_tests"`
	Pooled          *bool     `json:"pooled"`
	Welch           *bool     `json:"welch"`
	IncludePower    bool      `json:"include_power"`
}

// Build merges the payload over the family defaults.
func (p ConfigPayload) Build(defaults stats.TestConfiguration) (stats.TestConfiguration, error) {
	cfg := defaults

	alt, err := stats.ParseAlternative(p.Alternative)
	if err != nil {
		return cfg, err
	}
	cfg.Alternative = alt

	if p.ConfidenceLevel != nil {
		cfg.ConfidenceLevel = *p.ConfidenceLevel
	}
	if p.AlphaValue != nil {
		cfg.Alpha = *p.AlphaValue
	}
	if p.NormalityTests != nil {
		methods, err := parseNormalityMethods(*p.NormalityTests)
		if err != nil {
			return cfg, err
		}
		cfg.NormalityTests = methods
	}
	if p.VarianceTests != nil {
		methods, err := parseVarianceMethods(*p.VarianceTests)
		if err != nil {
			return cfg, err
		}
		cfg.VarianceTests = methods
	}
	if p.Pooled != nil {
		cfg.Pooled = *p.Pooled
	}
	if p.Welch != nil {
		cfg.Welch = *p.Welch
	}
	cfg.IncludePower = p.IncludePower

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseNormalityMethods(names []string) ([]stats.NormalityMethod, error) {
	methods := make([]stats.NormalityMethod, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "shapiro", "shapiro-wilk":
			methods = append(methods, stats.ShapiroWilkMethod)
		case "lilliefors":
			methods = append(methods, stats.LillieforsMethod)
		default:
			return nil, errors.ValidationErrorf("unknown normality test: %s", name)
		}
	}
	return methods, nil
}

func parseVarianceMethods(names []string) ([]stats.VarianceMethod, error) {
	methods := make([]stats.VarianceMethod, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "levene":
			methods = append(methods, stats.LeveneMethod)
		case "brown-forsythe":
			methods = append(methods, stats.BrownForsytheMethod)
		default:
			return nil, errors.ValidationErrorf("unknown variance test: %s", name)
		}
	}
	return methods, nil
}

// GroupPayload is the tagged-union input for one group: either a raw
// sample or summary statistics (std_dev and std_err mutually exclusive).
type GroupPayload struct {
	Name   string    `json:"name"`
	Sample []float64 `json:"sample"`
	Size   int       `json:"size"`
	Mean   *float64  `json:"mean"`
	StdDev float64   `json:"std_dev"`
	StdErr float64   `json:"std_err"`
}

// Resolve normalizes the payload to the shape the engines accept. The
// fallback name is used when the payload carries none.
func (p GroupPayload) Resolve(fallbackName string) (stats.Group, error) {
	name := p.Name
	if name == "" {
		name = fallbackName
	}

	hasRaw := len(p.Sample) > 0
	hasSummary := p.Mean != nil || p.Size != 0 || p.StdDev != 0 || p.StdErr != 0

	switch {
	case hasRaw && hasSummary:
		return stats.Group{}, errors.ValidationError("Provide either a raw sample or summary statistics, not both.")
	case hasRaw:
		return stats.Group{Name: name, Sample: stats.Sample(p.Sample)}, nil
	case hasSummary:
		if p.Mean == nil {
			return stats.Group{}, errors.ValidationError("Summary input requires a mean.")
		}
		desc, err := stats.DescribeSummary(p.Size, *p.Mean, p.StdDev, p.StdErr)
		if err != nil {
			return stats.Group{}, err
		}
		return stats.Group{
			Name:    name,
			Summary: &stats.SummaryStatistic{Size: desc.Size, Mean: desc.Mean, SD: desc.StdDev},
		}, nil
	default:
		return stats.Group{}, errors.ValidationError("Group carries neither raw sample nor summary statistics.")
	}
}
