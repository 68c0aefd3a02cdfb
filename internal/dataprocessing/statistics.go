package dataprocessing

import (
	"math"
	"sort"

	"tabula/pkg/contracts/domain"
)

// ComputeStatistics computes descriptive statistics for every column from
// the original (pre-cleaning) table. Statistics characterize the input
// distribution, never the cleaned one.
func ComputeStatistics(table *domain.Table) map[string]domain.ColumnStatistics {
	stats := make(map[string]domain.ColumnStatistics, len(table.Columns))
	for _, column := range table.Columns {
		stats[column] = columnStatistics(table.Rows, column)
	}
	return stats
}

// columnStatistics computes one column's statistics.
//
// With zero numeric observations only MissingCount is emitted, counting
// cells that meet the literal missing predicate. With at least one numeric
// observation, MissingCount instead counts every cell that fails numeric
// coercion, which also covers unparsable text. The two definitions
// intentionally diverge from Summary.MissingValues and must stay that way.
func columnStatistics(rows []domain.Row, column string) domain.ColumnStatistics {
	values := columnValues(rows, column)

	if len(values) == 0 {
		return domain.ColumnStatistics{MissingCount: missingCount(rows, column)}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / n

	// Population standard deviation: divide by N, not N-1.
	var sumSq float64
	for _, v := range sorted {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / n)

	return domain.ColumnStatistics{
		Mean:         ptr(round4(mean)),
		Median:       ptr(round4(rankMedian(sorted))),
		Std:          ptr(round4(std)),
		Min:          ptr(sorted[0]),
		Max:          ptr(sorted[len(sorted)-1]),
		MissingCount: len(rows) - len(values),
	}
}

// round4 rounds to 4 decimal places.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func ptr(v float64) *float64 {
	return &v
}
