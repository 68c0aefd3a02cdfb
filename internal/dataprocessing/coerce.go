package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"tabula/pkg/contracts/domain"
)

// missingSentinel is the literal text treated as a missing value alongside
// nil cells and the empty string.
const missingSentinel = "NaN"

// leadingNumber matches the leading numeric portion of a string, including
// an optional sign, decimal fraction and exponent.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// IsMissing reports whether a cell is missing: explicitly absent, the empty
// string, or the literal sentinel "NaN". The three forms are semantically
// equivalent everywhere in the pipeline.
func IsMissing(cell domain.Cell) bool {
	if cell == nil {
		return true
	}
	if s, ok := cell.(string); ok {
		return s == "" || s == missingSentinel
	}
	return false
}

// Coerce decides whether a cell represents a number and, if so, yields its
// value. A cell already of numeric type is numeric. A text cell is numeric
// if parsing its leading numeric portion succeeds and yields a finite value.
// Missing cells are never numeric.
//
// Every other component (classification, imputation, outlier detection,
// statistics) must use this predicate and no other.
func Coerce(cell domain.Cell) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if IsMissing(v) {
			return 0, false
		}
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
		// Fall back to the leading numeric portion, e.g. "42abc" -> 42.
		if m := leadingNumber.FindString(s); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return finite(f)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// finite rejects infinities and not-a-number values.
func finite(f float64) (float64, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// columnValues collects the coerced numeric values of a column in row order.
func columnValues(rows []domain.Row, column string) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := Coerce(row[column]); ok {
			values = append(values, v)
		}
	}
	return values
}

// missingCount counts cells of a column meeting the literal missing
// predicate (absent, empty string, or "NaN").
func missingCount(rows []domain.Row, column string) int {
	count := 0
	for _, row := range rows {
		if IsMissing(row[column]) {
			count++
		}
	}
	return count
}
