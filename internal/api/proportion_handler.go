package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// zTestRequest carries the two-proportion Z-test payload. Field names and
// defaults (alpha 0.05, no Yates correction, 95% confidence) follow the
// documented wire format; Confidence_interval is a percentage in [1, 99].
type zTestRequest struct {
	AlphaValue         *float64    `json:"Alpha_value"`
	YatesCorrection    *float64    `json:"Yates_correction"`
	ConfidenceInterval *float64    `json:"Confidence_interval"`
	Data               [][]float64 `json:"Data"`
}

func (s *Server) handleZTest(c *gin.Context) {
	var req zTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	alpha := 0.05
	if req.AlphaValue != nil {
		alpha = *req.AlphaValue
	}
	yates := 0.0
	if req.YatesCorrection != nil {
		yates = *req.YatesCorrection
	}
	confidence := 95.0
	if req.ConfidenceInterval != nil {
		confidence = *req.ConfidenceInterval
	}

	if yates < 0 || yates > 1 {
		respondError(c, errors.ValidationError("Yates_correction must be either 0 or 1."))
		return
	}
	if len(req.Data) != 2 || len(req.Data[0]) != 2 || len(req.Data[1]) != 2 {
		respondError(c, errors.ValidationError("Data must contain two rows and two columns."))
		return
	}

	g1, err := proportionGroup(req.Data[0])
	if err != nil {
		respondError(c, err)
		return
	}
	g2, err := proportionGroup(req.Data[1])
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := stats.TwoProportionZTest(g1, g2, alpha, confidence)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := requestLogger(c)
	logger.Info().
		Float64("z_score", result.ZScore).
		Float64("p_value", result.PValue).
		Msg("two-proportion Z-test completed")

	c.JSON(http.StatusOK, gin.H{
		"message":             "Z-test calculation successful",
		"alpha_value":         alpha,
		"yates_correction":    yates,
		"confidence_interval": confidence,
		"group_1":             g1,
		"group_2":             g2,
		"results":             result,
	})
}

func proportionGroup(row []float64) (stats.ProportionGroup, error) {
	size := int(row[0])
	if float64(size) != row[0] {
		return stats.ProportionGroup{}, errors.TypeMismatch("Group sizes must be whole numbers.")
	}
	return stats.ProportionGroup{Size: size, Proportion: row[1]}, nil
}
