// Package exporter writes completed analyses to files and streams.
//
// Two surfaces are provided: JSON documents carrying the full Analysis
// inside a metadata envelope, and CSV exports of the cleaned rows that
// preserve the dataset's original column order. All exports are plain
// functions over io.Writer with thin file-path wrappers, so transport
// handlers and the CLI share the same code path.
package exporter
