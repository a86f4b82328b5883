package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hypotest/adapters/excel"
	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// twoSampleZRequest carries the long-format two-sample Z-test payload.
type twoSampleZRequest struct {
	Column      string          `json:"column"`
	GroupColumn string          `json:"group_column"`
	Confidence  *float64        `json:"confidence"`
	Alternative string          `json:"alternative"`
	Data        []longFormatRow `json:"data"`
}

func (s *Server) handleTwoSampleZTest(c *gin.Context) {
	var req twoSampleZRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ValidationError("Invalid input. Please provide JSON data."))
		return
	}

	if req.Column == "" || req.GroupColumn == "" {
		respondError(c, errors.ValidationError("Invalid input value: Both 'column' and 'group_column' are required."))
		return
	}

	g1, g2, err := pivotLongFormat(req.Data, req.GroupColumn, req.Column)
	if err != nil {
		respondError(c, err)
		return
	}

	s.runTwoSampleZTest(c, req.GroupColumn, g1, g2, req.Alternative, req.Confidence)
}

// handleTwoSampleZTestUpload runs the same test on a long-format .xlsx
// upload: a "file" form part plus optional column/group_column fields
// naming the value and grouping headers.
func (s *Server) handleTwoSampleZTestUpload(c *gin.Context) {
	g1, g2, err := s.readUploadedGroups(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var confidence *float64
	if v, ok := parseFormFloat(c, "confidence"); ok {
		confidence = &v
	}
	s.runTwoSampleZTest(c, c.PostForm("group_column"), g1, g2, c.PostForm("alternative"), confidence)
}

func (s *Server) runTwoSampleZTest(c *gin.Context, groupingVariable string, g1, g2 stats.Group, alternative string, confidence *float64) {
	alt, err := stats.ParseAlternative(alternative)
	if err != nil {
		respondError(c, err)
		return
	}
	level := 0.95
	if confidence != nil {
		level = *confidence
	}

	result, err := stats.TwoSampleZTest(groupingVariable, g1, g2, alt, level)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := requestLogger(c)
	logger.Info().
		Float64("z_stat", result.ZStat).
		Float64("p_value", result.PValue).
		Msg("two-sample Z-test completed")

	c.JSON(http.StatusOK, result)
}

func parseFormFloat(c *gin.Context, key string) (float64, bool) {
	v := c.PostForm(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// readUploadedGroups pulls the spreadsheet out of the multipart form and
// pivots its rows into two groups.
func (s *Server) readUploadedGroups(c *gin.Context) (stats.Group, stats.Group, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return stats.Group{}, stats.Group{}, errors.ValidationError("Upload requires a 'file' form part.")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return stats.Group{}, stats.Group{}, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	observations, err := excel.ReadLongFormat(file, c.PostForm("group_column"), c.PostForm("column"))
	if err != nil {
		return stats.Group{}, stats.Group{}, err
	}
	return groupObservations(observations)
}

// groupObservations splits observations by label, preserving first-seen
// order and requiring exactly two labels.
func groupObservations(observations []excel.Observation) (stats.Group, stats.Group, error) {
	var order []string
	samples := map[string]stats.Sample{}
	for _, obs := range observations {
		if _, seen := samples[obs.Group]; !seen {
			order = append(order, obs.Group)
		}
		samples[obs.Group] = append(samples[obs.Group], obs.Value)
	}
	if len(order) != 2 {
		return stats.Group{}, stats.Group{}, errors.ValidationError("Ensure exactly two groups.")
	}
	g1 := stats.Group{Name: order[0], Sample: samples[order[0]]}
	g2 := stats.Group{Name: order[1], Sample: samples[order[1]]}
	return g1, g2, nil
}
