package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"tabula/internal/errors"
	"tabula/pkg/contracts/domain"
)

// Analyzer runs the full cleaning-and-analysis pipeline over one table per
// invocation. It holds no state between calls: every Analysis is computed
// fresh from the table it is given, and two runs over the same table yield
// identical summaries and statistics.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze produces the complete Analysis for a table. It fails only when
// the table is structurally invalid (UnsupportedInput); an empty row set is
// fine and yields zero/empty summary and statistics fields. The returned
// Analysis holds independent snapshots of the original and cleaned rows, so
// later mutation of the caller's table never leaks into the result.
func (a *Analyzer) Analyze(ctx context.Context, table *domain.Table) (*domain.Analysis, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "analyzing table",
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()))

	types := ClassifyColumns(table)
	cleanedRows, actions := CleanTable(table, types)
	statistics := ComputeStatistics(table)
	summary := BuildSummary(table, types, actions)

	a.logger.InfoContext(ctx, "analysis complete",
		slog.Int("cleaning_actions", len(actions)))

	return &domain.Analysis{
		OriginalData: domain.CloneRows(table.Rows),
		CleanedData:  cleanedRows,
		Summary:      summary,
		Statistics:   statistics,
	}, nil
}

// BuildSummary derives the per-column profile from the original table.
// Outliers are reported per numeric column in row order; categorical
// columns get an empty, non-nil slice.
func BuildSummary(table *domain.Table, types map[string]domain.ColumnType, actions []domain.CleaningAction) domain.Summary {
	summary := domain.Summary{
		TotalRows:     table.NumRows(),
		TotalColumns:  table.NumColumns(),
		MissingValues: make(map[string]int, len(table.Columns)),
		DataTypes:     types,
		Outliers:      make(map[string][]float64, len(table.Columns)),
		CleaningLog:   actions,
	}

	for _, column := range table.Columns {
		summary.MissingValues[column] = missingCount(table.Rows, column)
		if types[column] == domain.ColumnTypeNumeric {
			summary.Outliers[column] = outlierValues(table.Rows, column)
		} else {
			summary.Outliers[column] = []float64{}
		}
	}
	return summary
}

// ValidateTable rejects structurally invalid tables. Messy cell contents
// are never a structural problem; only the table shape is checked here.
func ValidateTable(table *domain.Table) error {
	if table == nil {
		return errors.NewUnsupportedInputError("table is nil")
	}
	if len(table.Columns) == 0 {
		return errors.NewUnsupportedInputError("table has no columns")
	}

	seen := make(map[string]bool, len(table.Columns))
	for _, column := range table.Columns {
		if column == "" {
			return errors.NewUnsupportedInputError("table has an empty column name")
		}
		if seen[column] {
			return errors.NewUnsupportedInputError(fmt.Sprintf("duplicate column name: %s", column))
		}
		seen[column] = true
	}
	return nil
}
