package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hypotest/domain/stats"
)

func TestHandleTwoSampleZTest_Success(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/hypothesis/api/two-sample-ztest", `{
		"column": "score",
		"group_column": "arm",
		"data": [
			{"arm": "control", "score": 1}, {"arm": "control", "score": 2},
			{"arm": "control", "score": 3}, {"arm": "control", "score": 4},
			{"arm": "control", "score": 5},
			{"arm": "treated", "score": 6}, {"arm": "treated", "score": 7},
			{"arm": "treated", "score": 8}, {"arm": "treated", "score": 9},
			{"arm": "treated", "score": 10}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result stats.TwoSampleZResult
	decodeBody(t, rec, &result)

	assert.Equal(t, "arm", result.GroupingVariable)
	assert.Equal(t, "Ho: Mean1 = Mean2 vs H1: Mean1 != Mean2", result.Hypothesis)
	require.Contains(t, result.Summary, "control")
	require.Contains(t, result.Summary, "treated")
	assert.Equal(t, 5, result.Summary["control"].N)
	assert.Equal(t, 3.0, result.Summary["control"].Mean)
	assert.Equal(t, 8.0, result.Summary["treated"].Mean)
	assert.Equal(t, -5.0, result.ConfidenceInterval.MeanDifference)
	assert.Less(t, result.ZStat, 0.0)
}

func TestHandleTwoSampleZTest_BadInput(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/hypothesis/api/two-sample-ztest",
		`{"column": "score", "data": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input value: Both 'column' and 'group_column' are required.",
		errorMessage(t, rec))

	rec = postJSON(t, s, "/hypothesis/api/two-sample-ztest", `{
		"column": "score",
		"group_column": "arm",
		"data": [
			{"arm": "a", "score": 1}, {"arm": "a", "score": 2},
			{"arm": "b", "score": 3}, {"arm": "b", "score": 4},
			{"arm": "c", "score": 5}, {"arm": "c", "score": 6}
		]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ensure exactly two groups.", errorMessage(t, rec))

	rec = postJSON(t, s, "/hypothesis/api/two-sample-ztest", `{
		"column": "score",
		"group_column": "arm",
		"alternative": "sideways",
		"data": [
			{"arm": "a", "score": 1}, {"arm": "a", "score": 2},
			{"arm": "b", "score": 3}, {"arm": "b", "score": 4}
		]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "invalid alternative hypothesis")
}

// buildWorkbook renders a long-format sheet into xlsx bytes.
func buildWorkbook(t *testing.T, header []string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, name))
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func postUpload(t *testing.T, s *Server, path string, file []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "data.xlsx")
	require.NoError(t, err)
	_, err = part.Write(file)
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleTwoSampleZTestUpload(t *testing.T) {
	s := newTestServer(t)
	workbook := buildWorkbook(t,
		[]string{"arm", "score"},
		[][]any{
			{"control", 1}, {"control", 2}, {"control", 3}, {"control", 4}, {"control", 5},
			{"treated", 6}, {"treated", 7}, {"treated", 8}, {"treated", 9}, {"treated", 10},
		})

	rec := postUpload(t, s, "/hypothesis/api/two-sample-ztest/upload", workbook,
		map[string]string{"group_column": "arm", "column": "score"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result stats.TwoSampleZResult
	decodeBody(t, rec, &result)
	assert.Equal(t, 3.0, result.Summary["control"].Mean)
	assert.Equal(t, 8.0, result.Summary["treated"].Mean)
}

func TestHandleTwoSampleZTestUpload_MissingFile(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/hypothesis/api/two-sample-ztest/upload", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Upload requires a 'file' form part.", errorMessage(t, rec))
}
