package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// FormatValue renders a cell value for text output. Empty cells render as "".
func FormatValue(v any) string {
	if models.IsEmpty(v) {
		return ""
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format("2006-01-02")
	case string:
		return x
	}
	return fmt.Sprint(v)
}
