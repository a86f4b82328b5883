package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/stats"
)

func TestSynthesizer_Deterministic(t *testing.T) {
	summary := stats.SummaryStatistic{Size: 50, Mean: 10, SD: 2}

	a := NewSynthesizer(7).Reconstruct(summary)
	b := NewSynthesizer(7).Reconstruct(summary)

	require.Len(t, a, 50)
	assert.Equal(t, a, b, "same seed should reproduce the same draw")

	c := NewSynthesizer(8).Reconstruct(summary)
	assert.NotEqual(t, a, c, "different seeds should diverge")
}

func TestSynthesizer_TracksSummaryMoments(t *testing.T) {
	summary := stats.SummaryStatistic{Size: 2000, Mean: 10, SD: 2}
	sample := NewSynthesizer(42).Reconstruct(summary)

	desc, err := stats.Describe(sample)
	require.NoError(t, err)
	assert.InDelta(t, 10, desc.Mean, 0.25)
	assert.InDelta(t, 2, desc.StdDev, 0.25)
}

func TestSynthesizer_Materialize(t *testing.T) {
	synth := NewSynthesizer(42)

	raw := stats.Group{Name: "raw", Sample: stats.Sample{1, 2, 3}}
	assert.Equal(t, raw, synth.Materialize(raw), "raw groups pass through")

	summarized := stats.Group{Name: "sum", Summary: &stats.SummaryStatistic{Size: 20, Mean: 5, SD: 1}}
	filled := synth.Materialize(summarized)
	assert.Len(t, filled.Sample, 20)
	require.NotNil(t, filled.Summary, "summary stays attached")

	empty := stats.Group{Name: "none"}
	assert.Equal(t, empty, synth.Materialize(empty))
}
