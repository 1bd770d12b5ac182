package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vvka-141/porekit/internal/checksum"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// ColumnType is the storage class inferred for a table column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeReal
	TypeBoolean
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeBoolean:
		return "boolean"
	default:
		return "text"
	}
}

func typeOf(v any) (ColumnType, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return TypeInteger, true
	case float32, float64:
		return TypeReal, true
	case bool:
		return TypeBoolean, true
	case string:
		return TypeText, true
	default:
		return TypeText, false
	}
}

// InferTypes picks one type per column from the non-missing values.
// Integers and reals mix to real; any other mix, an unknown value type, or
// an all-missing column is text.
func InferTypes(table *porekit.Table) []ColumnType {
	types := make([]ColumnType, table.Schema.Len())
	for i := range types {
		seen := false
		for _, row := range table.Rows {
			v := row[i]
			if porekit.IsMissing(v) {
				continue
			}
			t, known := typeOf(v)
			if !known {
				types[i] = TypeText
				break
			}
			if !seen {
				types[i], seen = t, true
				continue
			}
			types[i] = merge(types[i], t)
			if types[i] == TypeText {
				break
			}
		}
	}
	return types
}

func merge(a, b ColumnType) ColumnType {
	switch {
	case a == b:
		return a
	case (a == TypeInteger && b == TypeReal) || (a == TypeReal && b == TypeInteger):
		return TypeReal
	default:
		return TypeText
	}
}

// Fingerprint identifies a column layout; equal layouts share a fingerprint.
func Fingerprint(columns []string, types []ColumnType) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " " + types[i].String()
	}
	return checksum.New().Fingerprint(parts...)
}

// sqlValue converts v for storage in a column of type t. Missing is nil.
func sqlValue(v any, t ColumnType) any {
	if porekit.IsMissing(v) || v == nil {
		return nil
	}
	switch t {
	case TypeInteger:
		if n, ok := toInt64(v); ok {
			return n
		}
	case TypeReal:
		if f, ok := toFloat64(v); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil
			}
			return f
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return textValue(v)
}

// textValue renders v for delimited text. Missing renders as "NA".
func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return porekit.Missing.(fmt.Stringer).String()
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		n, ok := toInt64(v)
		return float64(n), ok
	}
}
