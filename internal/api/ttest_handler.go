package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// oneSampleTTestRequest accepts either a raw sample or a summary block.
type oneSampleTTestRequest struct {
	Sample         []float64     `json:"sample"`
	Summary        *GroupPayload `json:"summary"`
	PopulationMean *float64      `json:"population_mean"`
	ConfigPayload
}

func (s *Server) handleOneSampleTTest(c *gin.Context) {
	var req oneSampleTTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	cfg, err := req.ConfigPayload.Build(stats.DefaultConfiguration())
	if err != nil {
		respondError(c, err)
		return
	}

	group, err := resolveSingleGroup(req.Sample, req.Summary)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(cfg.NormalityTests) > 0 {
		group = s.synth.Materialize(group)
	}

	populationMean := 0.0
	if req.PopulationMean != nil {
		populationMean = *req.PopulationMean
	}

	result, err := stats.OneSampleTTest(group, populationMean, cfg)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := requestLogger(c)
	logger.Info().
		Float64("t_statistic", result.SampleStatistics.TStatistic).
		Float64("p_value", result.SampleStatistics.TwoTailedPValue).
		Msg("one-sample t-test completed")

	c.JSON(http.StatusOK, result)
}

// twoSampleTTestRequest is the structured form of the two-sample payload.
// Bodies without group_1/group_2 fall back to the legacy shape where the
// first two array-valued keys are the groups.
type twoSampleTTestRequest struct {
	Group1 *GroupPayload `json:"group_1"`
	Group2 *GroupPayload `json:"group_2"`
	ConfigPayload
}

func (s *Server) handleTwoSampleTTest(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	var req twoSampleTTestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	cfg, err := req.ConfigPayload.Build(stats.DefaultConfiguration())
	if err != nil {
		respondError(c, err)
		return
	}

	var g1, g2 stats.Group
	if req.Group1 != nil || req.Group2 != nil {
		if req.Group1 == nil || req.Group2 == nil {
			respondError(c, errors.ValidationError("JSON input must contain at least two groups."))
			return
		}
		g1, err = req.Group1.Resolve("group_1")
		if err != nil {
			respondError(c, err)
			return
		}
		g2, err = req.Group2.Resolve("group_2")
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		groups, err := orderedSamples(body)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(groups) < 2 {
			respondError(c, errors.ValidationError("JSON input must contain at least two groups."))
			return
		}
		g1 = stats.Group{Name: groups[0].Name, Sample: groups[0].Values}
		g2 = stats.Group{Name: groups[1].Name, Sample: groups[1].Values}
	}

	s.runTwoSampleTTest(c, g1, g2, cfg)
}

// handleTwoSampleTTestUpload runs the two-sample t-test on an uploaded
// long-format .xlsx file.
func (s *Server) handleTwoSampleTTestUpload(c *gin.Context) {
	g1, g2, err := s.readUploadedGroups(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cfg := stats.DefaultConfiguration()
	if v, ok := parseFormFloat(c, "confidence_level"); ok {
		cfg.ConfidenceLevel = v
	}
	if v, ok := parseFormFloat(c, "alpha_value"); ok {
		cfg.Alpha = v
	}
	if err := cfg.Validate(); err != nil {
		respondError(c, err)
		return
	}

	s.runTwoSampleTTest(c, g1, g2, cfg)
}

func (s *Server) runTwoSampleTTest(c *gin.Context, g1, g2 stats.Group, cfg stats.TestConfiguration) {
	if len(cfg.NormalityTests) > 0 || len(cfg.VarianceTests) > 0 {
		g1 = s.synth.Materialize(g1)
		g2 = s.synth.Materialize(g2)
	}

	result, err := stats.TwoSampleTTest(g1, g2, cfg)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := requestLogger(c)
	logEvent := logger.Info().Float64("difference_of_means", result.DifferenceOfMeans)
	if result.Welch != nil {
		logEvent = logEvent.Float64("welch_p_value", result.Welch.TwoTailedPValue)
	}
	logEvent.Msg("two-sample t-test completed")

	c.JSON(http.StatusOK, result)
}

func resolveSingleGroup(sample []float64, summary *GroupPayload) (stats.Group, error) {
	switch {
	case len(sample) > 0 && summary != nil:
		return stats.Group{}, errors.ValidationError("Provide either a raw sample or summary statistics, not both.")
	case len(sample) > 0:
		return stats.Group{Name: "sample", Sample: stats.Sample(sample)}, nil
	case summary != nil:
		return summary.Resolve("sample")
	default:
		return stats.Group{}, errors.ValidationError("Sample data must contain at least two data points.")
	}
}
