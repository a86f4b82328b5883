package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// pairedTTestRequest is the structured long-format shape. Bodies without a
// "data" table fall back to the legacy two-variable shape, where the first
// list is the before measurements and the second the after measurements
// (keys literally named "before"/"after" are honored in either order).
type pairedTTestRequest struct {
	Data            []longFormatRow `json:"data"`
	SubjectColumn   string          `json:"subject_column"`
	TreatmentColumn string          `json:"treatment_column"`
	ValueColumn     string          `json:"value_column"`
	ConfigPayload
}

func (s *Server) handlePairedTTest(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	var req pairedTTestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	cfg, err := req.ConfigPayload.Build(stats.DefaultConfiguration())
	if err != nil {
		respondError(c, err)
		return
	}

	var before, after stats.Sample
	if len(req.Data) > 0 {
		subjectCol := defaultColumn(req.SubjectColumn, "subject")
		treatmentCol := defaultColumn(req.TreatmentColumn, "treatment")
		valueCol := defaultColumn(req.ValueColumn, "value")
		before, after, err = pivotPaired(req.Data, subjectCol, treatmentCol, valueCol)
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
		if len(groups) != 2 {
			respondError(c, errors.ValidationError("Invalid JSON format. Please provide exactly two variables."))
			return
		}
		before, after = orientPair(groups[0], groups[1])
	}

	result, err := stats.PairedTTest(before, after, cfg)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := requestLogger(c)
	logger.Info().
		Float64("t_statistic", result.TestResults.TStatistic).
		Float64("p_value", result.TestResults.TwoTailedPValue).
		Msg("paired t-test completed")

	c.JSON(http.StatusOK, result)
}

// orientPair keeps positional order unless the keys name the roles
// explicitly.
func orientPair(first, second namedSample) (before, after stats.Sample) {
	if first.Name == "after" && second.Name == "before" {
		return second.Values, first.Values
	}
	return first.Values, second.Values
}

func defaultColumn(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
