package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"

	"tabula/internal/errors"
	"tabula/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV reads a CSV dataset from r. The first record is the header
// row; its trimmed cells become the table's column names.
func LoadCSV(r io.Reader) (*domain.Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to read csv input", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // ragged rows are padded below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse csv input", err)
	}
	if len(records) == 0 {
		return nil, errors.NewUnsupportedInputError("csv input has no header row")
	}

	table, err := tableFromRecords(records)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded csv dataset",
		slog.Int("columns", table.NumColumns()),
		slog.Int("rows", table.NumRows()))
	return table, nil
}

// tableFromRecords converts header+data string records into a table.
// Shared by the CSV and XLSX loaders.
func tableFromRecords(records [][]string) (*domain.Table, error) {
	header := records[0]
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.NewParsingError("header row contains an empty column name", nil)
		}
		if seen[name] {
			return nil, errors.NewParsingError("header row contains duplicate column "+name, nil)
		}
		seen[name] = true
		columns[i] = name
	}

	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &domain.Table{Columns: columns, Rows: rows}, nil
}
