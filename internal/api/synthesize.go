package api

import (
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/domain/stats"
)

// Synthesizer reconstructs raw samples from summary statistics by drawing
// from a normal distribution with the summarized mean and spread. It exists
// so diagnostics that need individual observations can still run on
// summary-only input. The draws are the one non-deterministic path in the
// service; a fixed seed makes them reproducible.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer seeds the reconstruction source. A zero seed derives one
// from the clock.
func NewSynthesizer(seed uint64) *Synthesizer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Synthesizer{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Reconstruct draws a sample of the summarized size. The result carries the
// target distribution, not the exact summarized moments.
func (s *Synthesizer) Reconstruct(summary stats.SummaryStatistic) stats.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	normal := distuv.Normal{Mu: summary.Mean, Sigma: summary.SD, Src: s.rng}
	sample := make(stats.Sample, summary.Size)
	for i := range sample {
		sample[i] = normal.Rand()
	}
	return sample
}

// Materialize fills in a synthetic raw sample for summary-only groups when
// diagnostics demand one; groups with raw data pass through untouched.
func (s *Synthesizer) Materialize(g stats.Group) stats.Group {
	if g.HasRaw() || g.Summary == nil {
		return g
	}
	g.Sample = s.Reconstruct(*g.Summary)
	return g
}
