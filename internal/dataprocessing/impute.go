package dataprocessing

import (
	"sort"

	"tabula/pkg/contracts/domain"
)

// imputeValue derives the replacement value used for a column's missing
// cells. If the column has at least one numeric-coercible value the result
// is the rank median of the coerced values; otherwise it is the mode of the
// literal cell representations. Returns ok=false when the column has no
// non-missing observations at all, in which case missing cells are left
// untouched.
func imputeValue(rows []domain.Row, column string) (domain.Cell, bool) {
	var numeric []float64
	var observed []domain.Cell

	for _, row := range rows {
		cell := row[column]
		if IsMissing(cell) {
			continue
		}
		observed = append(observed, cell)
		if v, ok := Coerce(cell); ok {
			numeric = append(numeric, v)
		}
	}

	if len(observed) == 0 {
		return nil, false
	}

	if len(numeric) > 0 {
		sort.Float64s(numeric)
		return rankMedian(numeric), true
	}

	return modeValue(observed), true
}

// rankMedian returns sorted[floor(n/2)]. For even counts this picks a single
// rank rather than interpolating between the two middle values.
func rankMedian(sorted []float64) float64 {
	return sorted[len(sorted)/2]
}

// modeValue returns the most frequent value among the given cells. Ties are
// broken deterministically by the first value to reach the winning count in
// row order, so repeated runs over the same table impute identically.
func modeValue(values []domain.Cell) domain.Cell {
	counts := make(map[domain.Cell]int, len(values))

	var best domain.Cell
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
