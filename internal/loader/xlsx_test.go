package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabula/internal/errors"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestLoadXLSX(t *testing.T) {
	buf := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"age", "city"},
		{10, "NY"},
		{12, "LA"},
	})

	table, err := LoadXLSX(buf, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "city"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "10", table.Rows[0]["age"])
	assert.Equal(t, "LA", table.Rows[1]["city"])
}

func TestLoadXLSXNamedSheet(t *testing.T) {
	buf := writeWorkbook(t, "data", [][]interface{}{
		{"v"},
		{1},
	})

	table, err := LoadXLSX(buf, "data")
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, table.Columns)
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	buf := writeWorkbook(t, "Sheet1", [][]interface{}{{"v"}})

	table, err := LoadXLSX(buf, "nope")
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadXLSXNotAWorkbook(t *testing.T) {
	table, err := LoadXLSX(strings.NewReader("not a zip"), "")
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadDispatchesByExtension(t *testing.T) {
	table, err := Load(strings.NewReader("a\n1\n"), "input.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, table.Columns)

	buf := writeWorkbook(t, "Sheet1", [][]interface{}{{"a"}, {1}})
	table, err = Load(buf, "input.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, table.Columns)

	_, err = Load(strings.NewReader(""), "input.pdf")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedInput(err))
}
