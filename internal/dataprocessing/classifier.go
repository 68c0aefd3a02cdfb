package dataprocessing

import (
	"tabula/pkg/contracts/domain"
)

// numericThreshold is the fraction of coercible cells a column must strictly
// exceed to classify as numeric. Fixed, not configurable.
const numericThreshold = 0.8

// ClassifyColumns classifies every column of the table as numeric or
// categorical. Pure function of the table contents.
func ClassifyColumns(table *domain.Table) map[string]domain.ColumnType {
	types := make(map[string]domain.ColumnType, len(table.Columns))
	for _, column := range table.Columns {
		types[column] = classifyColumn(table.Rows, column)
	}
	return types
}

// classifyColumn computes the fraction of cells passing Coerce; missing
// cells count as non-numeric. Strictly more than numericThreshold means
// numeric, anything else (including an empty row set) means categorical.
func classifyColumn(rows []domain.Row, column string) domain.ColumnType {
	if len(rows) == 0 {
		return domain.ColumnTypeCategorical
	}

	numeric := 0
	for _, row := range rows {
		if _, ok := Coerce(row[column]); ok {
			numeric++
		}
	}

	if float64(numeric)/float64(len(rows)) > numericThreshold {
		return domain.ColumnTypeNumeric
	}
	return domain.ColumnTypeCategorical
}
