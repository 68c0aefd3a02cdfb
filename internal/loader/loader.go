package loader

import (
	"io"
	"path/filepath"
	"strings"

	"tabula/internal/errors"
	"tabula/pkg/contracts/domain"
)

// Format identifies a supported input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.NewUnsupportedInputError("unsupported file format: "+filename)
	}
}

// Load parses r according to the format detected from filename.
func Load(r io.Reader, filename string) (*domain.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return LoadXLSX(r, "")
	default:
		return LoadCSV(r)
	}
}
