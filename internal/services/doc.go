// Package services holds the application service layer between the
// HTTP transport and the analysis engine.
//
// AnalysisService owns the full request lifecycle: load an uploaded
// dataset, run the operation pipeline, and retain the completed
// Analysis in an in-memory store keyed by a generated ID. The store is
// the only state the service carries; analyses are immutable once
// stored.
package services
