package loader

import (
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"tabula/internal/errors"
	"tabula/pkg/contracts/domain"
)

// LoadXLSX reads an Excel workbook from r and converts one sheet into a
// table. An empty sheet name selects the first sheet in the workbook.
func LoadXLSX(r io.Reader, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("failed to open xlsx input", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewUnsupportedInputError("xlsx workbook has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError("failed to read xlsx sheet "+sheet, err)
	}
	if len(records) == 0 {
		return nil, errors.NewUnsupportedInputError("xlsx sheet has no header row")
	}

	table, err := tableFromRecords(records)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded xlsx dataset",
		slog.String("sheet", sheet),
		slog.Int("columns", table.NumColumns()),
		slog.Int("rows", table.NumRows()))
	return table, nil
}
