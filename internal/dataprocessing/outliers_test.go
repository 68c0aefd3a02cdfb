package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabula/pkg/contracts/domain"
)

func TestQuartileBounds(t *testing.T) {
	tests := []struct {
		name      string
		sorted    []float64
		wantLower float64
		wantUpper float64
		wantOK    bool
	}{
		{
			name:      "five values rank indexed",
			sorted:    []float64{10, 11, 12, 13, 1000},
			wantLower: 8,  // Q1=sorted[1]=11, Q3=sorted[3]=13, IQR=2
			wantUpper: 16,
			wantOK:    true,
		},
		{
			name:      "four values minimum",
			sorted:    []float64{1, 2, 3, 4},
			wantLower: 2 - 1.5*2, // Q1=sorted[1]=2, Q3=sorted[3]=4
			wantUpper: 4 + 1.5*2,
			wantOK:    true,
		},
		{
			name:   "three values too few",
			sorted: []float64{1, 2, 3},
			wantOK: false,
		},
		{
			name:   "empty",
			sorted: []float64{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, upper, ok := quartileBounds(tt.sorted)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantLower, lower)
				assert.Equal(t, tt.wantUpper, upper)
			}
		})
	}
}

func TestIsOutlier(t *testing.T) {
	// Membership is strict: values on the bound are not outliers.
	assert.False(t, isOutlier(8, 8, 16))
	assert.False(t, isOutlier(16, 8, 16))
	assert.False(t, isOutlier(12, 8, 16))
	assert.True(t, isOutlier(7.999, 8, 16))
	assert.True(t, isOutlier(16.001, 8, 16))
}

func TestOutlierValues(t *testing.T) {
	rows := []domain.Row{
		{"age": 10.0},
		{"age": "12"},
		{"age": 11.0},
		{"age": 13.0},
		{"age": 1000.0},
	}

	got := outlierValues(rows, "age")
	assert.Equal(t, []float64{1000}, got)
}

func TestOutlierValuesTooFewObservations(t *testing.T) {
	rows := []domain.Row{
		{"n": 1.0},
		{"n": 2.0},
		{"n": 9999.0},
	}

	got := outlierValues(rows, "n")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOutlierValuesRowOrder(t *testing.T) {
	rows := []domain.Row{
		{"n": 500.0},
		{"n": 10.0},
		{"n": 11.0},
		{"n": 12.0},
		{"n": 13.0},
		{"n": -500.0},
	}

	// Outliers are reported in row order, not sorted order.
	got := outlierValues(rows, "n")
	assert.Equal(t, []float64{500, -500}, got)
}
