package exporter

import (
	"fmt"
	"strconv"

	"tabula/pkg/contracts/domain"
)

// formatCell renders a cell for CSV output. Floats use the shortest
// representation that round-trips, so 16 stays "16" and 5.5 stays "5.5".
func formatCell(cell domain.Cell) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
