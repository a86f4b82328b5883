package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"hypotest/domain/stats"
	"hypotest/internal/errors"
)

// configKeys are top-level fields that configure a test rather than naming
// a group; the legacy group extraction skips them.
var configKeys = map[string]bool{
	"alternative":      true,
	"confidence_level": true,
	"alpha_value":      true,
	"normality_tests":  true,
	"variance_tests":   true,
	"pooled":           true,
	"welch":            true,
	"include_power":    true,
	"population_mean":  true,
}

// namedSample is one group extracted from a top-level JSON object whose
// keys are the group names.
type namedSample struct {
	Name   string
	Values stats.Sample
}

// orderedSamples decodes a top-level JSON object preserving key order and
// returns the array-valued entries as named samples. Key order matters:
// the legacy two-key shapes treat the first group as group 1 (or "before").
func orderedSamples(body []byte) ([]namedSample, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.ValidationError("Invalid input. Please provide JSON data.")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.ValidationError("Invalid input. Please provide JSON data.")
	}

	var groups []namedSample
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.ValidationError("Invalid input. Please provide JSON data.")
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.ValidationError("Invalid input. Please provide JSON data.")
		}

		if configKeys[key] {
			continue
		}
		values, err := decodeNumericList(key, raw)
		if err != nil {
			return nil, err
		}
		groups = append(groups, namedSample{Name: key, Values: values})
	}
	return groups, nil
}

func decodeNumericList(key string, raw json.RawMessage) (stats.Sample, error) {
	var anyList []json.Number
	if err := json.Unmarshal(raw, &anyList); err != nil {
		return nil, errors.TypeMismatch(fmt.Sprintf("Group %q must be a list of numerical values.", key))
	}
	values := make(stats.Sample, len(anyList))
	for i, num := range anyList {
		v, err := num.Float64()
		if err != nil {
			return nil, errors.TypeMismatch(fmt.Sprintf("Group %q must be a list of numerical values.", key))
		}
		values[i] = v
	}
	return values, nil
}

// longFormatRow is one record of a long-format table.
type longFormatRow map[string]json.RawMessage

// pivotLongFormat splits long-format rows into two groups keyed by the
// grouping column, preserving first-seen group order. Exactly two distinct
// group labels must be present.
func pivotLongFormat(rows []longFormatRow, groupColumn, valueColumn string) (stats.Group, stats.Group, error) {
	var order []string
	samples := map[string]stats.Sample{}

	for _, row := range rows {
		labelRaw, ok := row[groupColumn]
		if !ok {
			return stats.Group{}, stats.Group{}, errors.ValidationErrorf("Missing required field: %s", groupColumn)
		}
		valueRaw, ok := row[valueColumn]
		if !ok {
			return stats.Group{}, stats.Group{}, errors.ValidationErrorf("Missing required field: %s", valueColumn)
		}

		label, err := decodeLabel(labelRaw)
		if err != nil {
			return stats.Group{}, stats.Group{}, err
		}
		var value float64
		if err := json.Unmarshal(valueRaw, &value); err != nil {
			return stats.Group{}, stats.Group{}, errors.TypeMismatch(
				fmt.Sprintf("Column %q must contain numerical values.", valueColumn))
		}

		if _, seen := samples[label]; !seen {
			order = append(order, label)
		}
		samples[label] = append(samples[label], value)
	}

	if len(order) != 2 {
		return stats.Group{}, stats.Group{}, errors.ValidationError("Ensure exactly two groups.")
	}
	g1 := stats.Group{Name: order[0], Sample: samples[order[0]]}
	g2 := stats.Group{Name: order[1], Sample: samples[order[1]]}
	return g1, g2, nil
}

// pivotPaired turns subject/treatment/value rows into aligned before and
// after sequences. Every subject must appear under exactly two treatment
// labels; the first-seen label is "before".
func pivotPaired(rows []longFormatRow, subjectColumn, treatmentColumn, valueColumn string) (stats.Sample, stats.Sample, error) {
	var treatmentOrder []string
	var subjectOrder []string
	bySubject := map[string]map[string]float64{}

	for _, row := range rows {
		subjectRaw, ok := row[subjectColumn]
		if !ok {
			return nil, nil, errors.ValidationErrorf("Missing required field: %s", subjectColumn)
		}
		treatmentRaw, ok := row[treatmentColumn]
		if !ok {
			return nil, nil, errors.ValidationErrorf("Missing required field: %s", treatmentColumn)
		}
		valueRaw, ok := row[valueColumn]
		if !ok {
			return nil, nil, errors.ValidationErrorf("Missing required field: %s", valueColumn)
		}

		subject, err := decodeLabel(subjectRaw)
		if err != nil {
			return nil, nil, err
		}
		treatment, err := decodeLabel(treatmentRaw)
		if err != nil {
			return nil, nil, err
		}
		var value float64
		if err := json.Unmarshal(valueRaw, &value); err != nil {
			return nil, nil, errors.TypeMismatch(
				fmt.Sprintf("Column %q must contain numerical values.", valueColumn))
		}

		if _, seen := bySubject[subject]; !seen {
			subjectOrder = append(subjectOrder, subject)
			bySubject[subject] = map[string]float64{}
		}
		if !contains(treatmentOrder, treatment) {
			treatmentOrder = append(treatmentOrder, treatment)
		}
		if _, dup := bySubject[subject][treatment]; dup {
			return nil, nil, errors.ValidationErrorf("Subject %s has duplicate %s observations.", subject, treatment)
		}
		bySubject[subject][treatment] = value
	}

	if len(treatmentOrder) != 2 {
		return nil, nil, errors.ValidationError("Ensure exactly two treatment labels.")
	}

	before := make(stats.Sample, 0, len(subjectOrder))
	after := make(stats.Sample, 0, len(subjectOrder))
	for _, subject := range subjectOrder {
		obs := bySubject[subject]
		b, okB := obs[treatmentOrder[0]]
		a, okA := obs[treatmentOrder[1]]
		if !okB || !okA {
			return nil, nil, errors.ValidationErrorf("Subject %s is missing one of the two treatments.", subject)
		}
		before = append(before, b)
		after = append(after, a)
	}
	return before, after, nil
}

// decodeLabel accepts string or numeric labels and renders them as strings.
func decodeLabel(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.TypeMismatch("Group labels must be strings or numbers.")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
