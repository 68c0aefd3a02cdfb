package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/internal/errors"
	"tabula/pkg/contracts/domain"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(slog.Default())
}

func TestAnalyzeAgeExample(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(context.Background(), ageTable())
	require.NoError(t, err)

	assert.Equal(t, 5, analysis.Summary.TotalRows)
	assert.Equal(t, 1, analysis.Summary.TotalColumns)
	assert.Equal(t, domain.ColumnTypeNumeric, analysis.Summary.DataTypes["age"])
	assert.Equal(t, []float64{1000}, analysis.Summary.Outliers["age"])
	assert.Equal(t, 0, analysis.Summary.MissingValues["age"])

	assert.Equal(t, 16.0, analysis.CleanedData[4]["age"])
	assert.Equal(t, 1000.0, analysis.OriginalData[4]["age"])

	assert.Equal(t, 209.2, *analysis.Statistics["age"].Mean)
}

func TestAnalyzeCityExample(t *testing.T) {
	analyzer := newTestAnalyzer()
	table := &domain.Table{
		Columns: []string{"city"},
		Rows: []domain.Row{
			{"city": "NY"},
			{"city": "NY"},
			{"city": "LA"},
			{"city": ""},
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.Summary.MissingValues["city"])
	assert.Equal(t, domain.ColumnTypeCategorical, analysis.Summary.DataTypes["city"])
	assert.Equal(t, []float64{}, analysis.Summary.Outliers["city"])
	assert.Equal(t, "NY", analysis.CleanedData[3]["city"])
}

func TestAnalyzeEmptyTable(t *testing.T) {
	analyzer := newTestAnalyzer()
	table := &domain.Table{Columns: []string{"x"}, Rows: []domain.Row{}}

	analysis, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.Summary.TotalRows)
	assert.Equal(t, 1, analysis.Summary.TotalColumns)
	assert.Equal(t, 0, analysis.Statistics["x"].MissingCount)
	assert.Nil(t, analysis.Statistics["x"].Mean)
	assert.Empty(t, analysis.CleanedData)
}

func TestAnalyzeUnsupportedInput(t *testing.T) {
	analyzer := newTestAnalyzer()

	tests := []struct {
		name  string
		table *domain.Table
	}{
		{name: "nil table", table: nil},
		{name: "zero columns", table: &domain.Table{}},
		{name: "empty column name", table: &domain.Table{Columns: []string{""}}},
		{name: "duplicate column", table: &domain.Table{Columns: []string{"a", "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := analyzer.Analyze(context.Background(), tt.table)
			require.Error(t, err)
			assert.True(t, errors.IsUnsupportedInput(err))
			assert.Nil(t, analysis)
		})
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	analyzer := newTestAnalyzer()
	table := &domain.Table{
		Columns: []string{"age", "city"},
		Rows: []domain.Row{
			{"age": 10.0, "city": "NY"},
			{"age": "12", "city": ""},
			{"age": 11.0, "city": "LA"},
			{"age": nil, "city": "NY"},
			{"age": 13.0, "city": "NY"},
			{"age": 1000.0, "city": "LA"},
		},
	}

	first, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, first.Summary.MissingValues, second.Summary.MissingValues)
	assert.Equal(t, first.Summary.DataTypes, second.Summary.DataTypes)
	assert.Equal(t, first.Summary.Outliers, second.Summary.Outliers)
	assert.Equal(t, first.Statistics, second.Statistics)
	assert.Equal(t, first.CleanedData, second.CleanedData)
}

func TestAnalyzeSnapshotIndependence(t *testing.T) {
	analyzer := newTestAnalyzer()
	table := ageTable()

	analysis, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	// Mutating the caller's table after the fact must not change the
	// returned snapshots.
	table.Rows[0]["age"] = -999.0
	assert.Equal(t, 10.0, analysis.OriginalData[0]["age"])

	// And the two snapshots are independent of each other.
	analysis.CleanedData[0]["age"] = -1.0
	assert.Equal(t, 10.0, analysis.OriginalData[0]["age"])
}

func TestAnalyzeCleanedWithinBounds(t *testing.T) {
	analyzer := newTestAnalyzer()
	table := &domain.Table{
		Columns: []string{"n"},
		Rows: []domain.Row{
			{"n": -500.0}, {"n": 10.0}, {"n": 11.0},
			{"n": 12.0}, {"n": 13.0}, {"n": 500.0},
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	// Every cleaned value of a numeric column lies inside the fence
	// computed from the original column ([5.5, 17.5] here).
	for _, row := range analysis.CleanedData {
		v, ok := Coerce(row["n"])
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 5.5)
		assert.LessOrEqual(t, v, 17.5)
	}
}

func TestAnalyzeMissingCountAsymmetry(t *testing.T) {
	// summary.MissingValues uses the literal missing predicate while
	// statistics.MissingCount counts coercion failures; for columns with
	// unparsable text the two must differ.
	analyzer := newTestAnalyzer()
	table := &domain.Table{
		Columns: []string{"v"},
		Rows: []domain.Row{
			{"v": 1.0}, {"v": 2.0}, {"v": 3.0}, {"v": 4.0},
			{"v": 5.0}, {"v": 6.0}, {"v": 7.0}, {"v": 8.0},
			{"v": 9.0}, {"v": "oops"}, {"v": ""}, {"v": nil},
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.Summary.MissingValues["v"])
	assert.Equal(t, 3, analysis.Statistics["v"].MissingCount)
}
