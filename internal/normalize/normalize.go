// Package normalize converts raw spreadsheet cells into null-safe scalars.
// Every function here is total: malformed input yields an empty or absent
// value, never an error or a panic.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one source-table row addressed by column position.
type Row []any

// At returns the cell at column i, or nil when the row is shorter.
func (r Row) At(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// String returns the trimmed text of v, or "" for nil, NaN and blank cells.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Int returns the integer value of v. Floats and float-like strings
// ("3.0", "3.7") truncate toward zero. ok is false for nil, NaN, blank
// or unparsable cells.
func Int(v any) (n int, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	}
	s := String(v)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

// CodePrefix returns the integer before the first '.' of a dotted code,
// so "12.3" yields 12.
func CodePrefix(v any) (int, bool) {
	s := String(v)
	if s == "" {
		return 0, false
	}
	head, _, _ := strings.Cut(s, ".")
	return Int(head)
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
