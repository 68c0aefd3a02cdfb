// Package dataprocessing implements the cleaning-and-analysis engine for
// tabular datasets. It takes an in-memory table of heterogeneous cell values
// and produces a cleaned copy plus a structured analysis: per-column type
// classification, missing-value counts, IQR outlier detection and descriptive
// statistics.
//
// # Architecture
//
// The pipeline runs four stages over one shared immutable table:
//
//  1. Type classifier: decides numeric vs categorical per column
//  2. Cleaner: imputes missing cells and caps numeric outliers
//  3. Statistics engine: descriptive statistics from the original values
//  4. Assembler: packages everything into one immutable Analysis
//
// # Usage
//
//	analyzer := dataprocessing.NewAnalyzer(logger)
//	analysis, err := analyzer.Analyze(ctx, table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Coercion contract
//
// Coerce is the single source of truth for deciding whether a cell is
// numeric. Classification, imputation, outlier detection and statistics all
// use it identically; using any other predicate would make counts
// inconsistent across sections of the output.
//
// # Error Handling
//
// Analyze fails only on structurally invalid tables (UnsupportedInput). All
// other inputs, however messy, are handled by policy: missing values are
// imputed, outliers are capped, nothing is rejected.
package dataprocessing
