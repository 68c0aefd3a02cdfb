package dataprocessing

import (
	"tabula/pkg/contracts/domain"
)

// columnPlan caches the per-column decisions needed while cleaning: the
// classified type, the imputation value, and the outlier fence computed from
// the original column. The table is immutable within a run, so computing
// each once per column does not change observable behavior.
type columnPlan struct {
	dataType   domain.ColumnType
	imputed    domain.Cell
	hasImputed bool
	lower      float64
	upper      float64
	hasBounds  bool
}

// buildColumnPlans precomputes cleaning decisions for every column from the
// original table. Bounds are always derived from pre-cleaning values, so
// cleaning one column can never influence the fence used for another.
func buildColumnPlans(table *domain.Table, types map[string]domain.ColumnType) map[string]columnPlan {
	plans := make(map[string]columnPlan, len(table.Columns))
	for _, column := range table.Columns {
		plan := columnPlan{dataType: types[column]}
		plan.imputed, plan.hasImputed = imputeValue(table.Rows, column)
		plan.lower, plan.upper, plan.hasBounds = quartileBounds(sortedColumnValues(table.Rows, column))
		plans[column] = plan
	}
	return plans
}

// CleanTable produces a cleaned copy of the table's rows plus the log of
// cleaning actions taken. The original table is untouched; no shared
// mutable accumulator survives past the call.
//
// Cells are processed row by row and, within each row, in column order:
//
//  1. Missing cells are replaced by the column's imputation value. If the
//     column has no observations to impute from, the cell stays missing.
//  2. For numeric columns, cells whose (possibly just-imputed) value coerces
//     to a number are clamped to the nearest IQR bound when they fall
//     outside the fence computed from the original column.
func CleanTable(table *domain.Table, types map[string]domain.ColumnType) ([]domain.Row, []domain.CleaningAction) {
	plans := buildColumnPlans(table, types)

	cleaned := make([]domain.Row, len(table.Rows))
	actions := []domain.CleaningAction{}

	for i, row := range table.Rows {
		out := make(domain.Row, len(table.Columns))
		for _, column := range table.Columns {
			cell := row[column]
			plan := plans[column]

			if IsMissing(cell) && plan.hasImputed {
				cell = plan.imputed
				actions = append(actions, domain.CleaningAction{
					Action: domain.ActionImputedMissing,
					Column: column,
				})
			}

			if plan.dataType == domain.ColumnTypeNumeric && plan.hasBounds {
				if v, ok := Coerce(cell); ok && isOutlier(v, plan.lower, plan.upper) {
					if v < plan.lower {
						cell = plan.lower
					} else {
						cell = plan.upper
					}
					actions = append(actions, domain.CleaningAction{
						Action: domain.ActionHandledOutlier,
						Column: column,
					})
				}
			}

			out[column] = cell
		}
		cleaned[i] = out
	}

	return cleaned, actions
}
