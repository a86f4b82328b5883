package stats

import "math"

// Round rounds to the given number of decimal places. Each result field has
// a fixed precision so serialized output is deterministic.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func round3(v float64) float64 { return Round(v, 3) }
func round5(v float64) float64 { return Round(v, 5) }
func round8(v float64) float64 { return Round(v, 8) }
