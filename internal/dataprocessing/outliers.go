package dataprocessing

import (
	"sort"

	"tabula/pkg/contracts/domain"
)

const (
	// minOutlierObservations is the minimum number of numeric values a
	// column needs before quartiles are considered reliable enough to flag
	// outliers.
	minOutlierObservations = 4

	// iqrMultiplier is the classic Tukey fence multiplier.
	iqrMultiplier = 1.5
)

// quartileBounds computes the IQR fence for an ascending-sorted value list.
// Q1 and Q3 are taken by simple rank indexing (sorted[floor(n*0.25)] and
// sorted[floor(n*0.75)]) with no interpolation between ranks, so the bounds
// are reproducible regardless of value distribution. Returns ok=false when
// there are too few observations.
func quartileBounds(sorted []float64) (lower, upper float64, ok bool) {
	n := len(sorted)
	if n < minOutlierObservations {
		return 0, 0, false
	}

	q1 := sorted[int(float64(n)*0.25)]
	q3 := sorted[int(float64(n)*0.75)]
	iqr := q3 - q1

	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr, true
}

// isOutlier reports whether a value lies strictly outside the fence.
func isOutlier(v, lower, upper float64) bool {
	return v < lower || v > upper
}

// sortedColumnValues returns the column's coerced values ascending-sorted.
func sortedColumnValues(rows []domain.Row, column string) []float64 {
	values := columnValues(rows, column)
	sort.Float64s(values)
	return values
}

// outlierValues returns, in row order, the original numeric values of a
// column that fall outside the fence computed from that same original
// column. Columns with fewer than minOutlierObservations numeric values are
// never flagged.
func outlierValues(rows []domain.Row, column string) []float64 {
	outliers := []float64{}

	lower, upper, ok := quartileBounds(sortedColumnValues(rows, column))
	if !ok {
		return outliers
	}

	for _, v := range columnValues(rows, column) {
		if isOutlier(v, lower, upper) {
			outliers = append(outliers, v)
		}
	}
	return outliers
}
