package domain

// ColumnType classifies a column as numeric or categorical.
type ColumnType string

const (
	ColumnTypeNumeric     ColumnType = "numeric"
	ColumnTypeCategorical ColumnType = "categorical"
)

// Cleaning action kinds recorded while producing the cleaned table.
const (
	ActionImputedMissing = "imputed missing value"
	ActionHandledOutlier = "handled outlier"
)

// CleaningAction records a single cleaning decision, tagged with the column
// it applied to. The log is an audit trail; its ordering is not part of the
// contract with consumers.
type CleaningAction struct {
	Action string `json:"action"`
	Column string `json:"column"`
}

// Summary aggregates per-column profile information derived from the
// original (pre-cleaning) table.
type Summary struct {
	TotalRows     int                     `json:"total_rows"`
	TotalColumns  int                     `json:"total_columns"`
	MissingValues map[string]int          `json:"missing_values"`
	DataTypes     map[string]ColumnType   `json:"data_types"`
	Outliers      map[string][]float64    `json:"outliers"`
	CleaningLog   []CleaningAction        `json:"cleaning_log"`
}

// ColumnStatistics holds descriptive statistics for one column, computed
// from the original table. Mean, median and std are rounded to 4 decimal
// places; min and max are reported at native precision. For columns with no
// numeric observations only MissingCount is populated.
//
// MissingCount here counts cells that fail numeric coercion, which is a
// broader predicate than Summary.MissingValues' literal-missing count. The
// two are expected to differ for columns containing unparsable text.
type ColumnStatistics struct {
	Mean         *float64 `json:"mean,omitempty"`
	Median       *float64 `json:"median,omitempty"`
	Std          *float64 `json:"std,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	MissingCount int      `json:"missing_count"`
}

// Analysis is the complete, immutable output bundle handed to the report
// layer. OriginalData and CleanedData are independent snapshots: mutating
// one never affects the other.
type Analysis struct {
	OriginalData []Row                       `json:"original_data"`
	CleanedData  []Row                       `json:"cleaned_data"`
	Summary      Summary                     `json:"summary"`
	Statistics   map[string]ColumnStatistics `json:"statistics"`
}
