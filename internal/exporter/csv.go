package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tabula/pkg/contracts/domain"
)

// WriteCleanedCSV writes rows to w as CSV. The header and every record
// follow the given column order.
func WriteCleanedCSV(w io.Writer, columns []string, rows []domain.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for i, row := range rows {
		for j, col := range columns {
			record[j] = formatCell(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCleanedCSVFile writes the cleaned rows to path, creating parent
// directories as needed.
func WriteCleanedCSVFile(path string, columns []string, rows []domain.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	slog.Info("writing cleaned CSV",
		slog.String("path", path),
		slog.Int("record_count", len(rows)))
	return WriteCleanedCSV(file, columns, rows)
}
