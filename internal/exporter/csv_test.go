package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/pkg/contracts/domain"
)

func TestWriteCleanedCSV(t *testing.T) {
	columns := []string{"age", "city"}
	rows := []domain.Row{
		{"age": 16.0, "city": "NY"},
		{"age": 5.5, "city": ""},
		{"age": nil, "city": "LA"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCleanedCSV(&buf, columns, rows))

	assert.Equal(t, "age,city\n16,NY\n5.5,\n,LA\n", buf.String())
}

func TestWriteCleanedCSVEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCleanedCSV(&buf, []string{"a", "b"}, nil))

	assert.Equal(t, "a,b\n", buf.String())
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		cell domain.Cell
		want string
	}{
		{name: "nil", cell: nil, want: ""},
		{name: "string", cell: "NY", want: "NY"},
		{name: "whole float", cell: 16.0, want: "16"},
		{name: "fractional float", cell: 5.5, want: "5.5"},
		{name: "int", cell: 42, want: "42"},
		{name: "bool", cell: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.cell))
		})
	}
}
