// Package loader reads tabular datasets from external formats into the
// domain.Table representation consumed by the analysis engine.
//
// Two formats are supported:
//
//   - CSV: the first record is the header row, every later record is a
//     data row. A UTF-8 byte order mark is stripped before parsing and
//     ragged records are padded or truncated to the header width.
//   - XLSX: read through excelize; the first sheet is used unless a
//     sheet name is given, and the first row is the header.
//
// Cells are loaded as trimmed strings; type interpretation is left to
// the analysis engine so that every consumer sees the same coercion
// behavior. Loaders return *errors.AppError values so that transport
// layers can map parse failures to the right status codes.
package loader
