package parser

import (
	"strings"
	"time"

	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// Primitive type names reported by DetectType.
const (
	TypeEmpty = "empty"
	TypeBool  = "bool"
	TypeInt   = "int"
	TypeFloat = "float"
	TypeDate  = "date"
	TypeStr   = "str"
)

var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// DetectType returns the primitive type name of a cell value.
func DetectType(v any) string {
	if models.IsEmpty(v) {
		return TypeEmpty
	}
	switch x := v.(type) {
	case bool:
		return TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case time.Time:
		return TypeDate
	case string:
		if isDate(x) {
			return TypeDate
		}
	}
	return TypeStr
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
