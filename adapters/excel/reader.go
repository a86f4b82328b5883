package excel

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hypotest/internal/errors"
)

// Observation is one row of a long-format table: a group label and a value.
type Observation struct {
	Group string
	Value float64
}

// ReadLongFormat reads a long-format spreadsheet from the first sheet:
// a header row followed by (group, value) records. groupColumn and
// valueColumn select headers by name; when empty, the first column is the
// group and the second the value. Blank rows are skipped.
func ReadLongFormat(r io.Reader, groupColumn, valueColumn string) ([]Observation, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.ValidationError("Failed to open spreadsheet. Ensure the file is a valid .xlsx.")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sheet")
	}
	if len(rows) < 2 {
		return nil, errors.ValidationError("Spreadsheet must have a header row and at least one data row.")
	}

	groupIdx, valueIdx, err := resolveColumns(rows[0], groupColumn, valueColumn)
	if err != nil {
		return nil, err
	}

	observations := make([]Observation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) <= groupIdx || len(row) <= valueIdx {
			return nil, errors.ValidationError("Error while processing data. Ensure proper data structure.")
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil {
			return nil, errors.TypeMismatch("Value column must contain numerical values.")
		}
		observations = append(observations, Observation{
			Group: strings.TrimSpace(row[groupIdx]),
			Value: value,
		})
	}

	if len(observations) == 0 {
		return nil, errors.ValidationError("Spreadsheet contains no data rows.")
	}
	return observations, nil
}

func resolveColumns(header []string, groupColumn, valueColumn string) (int, int, error) {
	groupIdx, valueIdx := 0, 1
	if groupColumn != "" {
		if groupIdx = findColumn(header, groupColumn); groupIdx < 0 {
			return 0, 0, errors.ValidationErrorf("Missing required field: %s", groupColumn)
		}
	}
	if valueColumn != "" {
		if valueIdx = findColumn(header, valueColumn); valueIdx < 0 {
			return 0, 0, errors.ValidationErrorf("Missing required field: %s", valueColumn)
		}
	}
	if groupColumn == "" || valueColumn == "" {
		if len(header) < 2 {
			return 0, 0, errors.ValidationError("Spreadsheet must have at least two columns.")
		}
	}
	return groupIdx, valueIdx, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
